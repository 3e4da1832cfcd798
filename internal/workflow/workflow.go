// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow manages audited analysis sessions. Every session owns a
// directory with a metadata.json and four numbered markdown files; each
// logging call appends a numbered section to its file and rewrites the
// full metadata so a crash at any point leaves a consistent trail.
package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status values recorded by Finalize.
const (
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
	StatusPartial    = "partial"
	StatusError      = "error"
)

// Session artifact file names.
const (
	MetadataFile       = "metadata.json"
	SnowflakeQueryFile = "01_snowflake_queries.md"
	APIResultsFile     = "02_api_results.md"
	AnalysisFile       = "03_analysis.md"
	ReportFile         = "04_report.md"
)

// DefaultBaseDir is where session directories are created when the
// configuration names none.
const DefaultBaseDir = "analysis"

const slugMaxLen = 50

// previewItems caps how many records a log call embeds as JSON.
const previewItems = 5

// Metadata is the session record persisted to metadata.json.
type Metadata struct {
	SessionID        string `json:"session_id"`
	Request          string `json:"request"`
	JiraTicket       string `json:"jira_ticket,omitempty"`
	JiraURL          string `json:"jira_url,omitempty"`
	StartedAt        string `json:"started_at"`
	CompletedAt      string `json:"completed_at,omitempty"`
	Status           string `json:"status"`
	SnowflakeQueries int    `json:"snowflake_queries"`
	APICalls         int    `json:"api_calls"`
	AnalysisSteps    int    `json:"analysis_steps"`
}

// Options tune session creation.
type Options struct {
	JiraTicket string
	JiraURL    string
	BaseDir    string
}

// Session is one audited analysis run rooted at a directory on disk.
type Session struct {
	dir  string
	meta Metadata
}

var slugStrip = regexp.MustCompile(`[^\w\s-]`)
var slugCollapse = regexp.MustCompile(`[\s_-]+`)

// slugify converts a free-text request into a filesystem-safe directory
// component: lowercase, punctuation stripped, runs of whitespace and
// separators collapsed to single hyphens, capped at 50 characters.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return strings.Trim(s, "-")
}

// New creates a session directory named by the Jira ticket (or today's
// date) plus a slug of the request, writes the initial metadata, and
// seeds the four markdown files with title headers.
func New(request string, opts Options) (*Session, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}

	prefix := opts.JiraTicket
	if prefix == "" {
		prefix = time.Now().UTC().Format("2006-01-02")
	}
	dir := filepath.Join(baseDir, prefix+"_"+slugify(request))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	s := &Session{
		dir: dir,
		meta: Metadata{
			SessionID:  uuid.NewString(),
			Request:    request,
			JiraTicket: opts.JiraTicket,
			JiraURL:    opts.JiraURL,
			StartedAt:  time.Now().UTC().Format(time.RFC3339),
			Status:     StatusInProgress,
		},
	}
	if err := s.writeMetadata(); err != nil {
		return nil, err
	}

	headers := map[string]string{
		SnowflakeQueryFile: "# Snowflake Queries\n\nRequest: " + request + "\n",
		APIResultsFile:     "# API Results\n\nRequest: " + request + "\n",
		AnalysisFile:       "# Analysis\n\nRequest: " + request + "\n",
		ReportFile:         "",
	}
	for name, header := range headers {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(header), 0o644); err != nil {
			return nil, fmt.Errorf("seeding %s: %w", name, err)
		}
	}
	return s, nil
}

// Dir returns the session directory path.
func (s *Session) Dir() string { return s.dir }

// ID returns the session identifier.
func (s *Session) ID() string { return s.meta.SessionID }

func (s *Session) writeMetadata() error {
	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	path := filepath.Join(s.dir, MetadataFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

func appendSection(path, section string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if _, err := f.WriteString(section); err != nil {
		return fmt.Errorf("appending to %s: %w", filepath.Base(path), err)
	}
	return nil
}

// jsonPreview renders up to previewItems entries of results as an
// indented JSON block inside a collapsible details element.
func jsonPreview(results []any) string {
	if len(results) == 0 {
		return ""
	}
	preview := results
	if len(preview) > previewItems {
		preview = preview[:previewItems]
	}
	data, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("%v", preview))
	}

	var b strings.Builder
	b.WriteString("<details>\n<summary>First ")
	fmt.Fprintf(&b, "%d of %d results</summary>\n\n```json\n%s\n```\n\n</details>\n", len(preview), len(results), data)
	return b.String()
}

// Items converts a typed slice into the []any shape the log calls take.
func Items[T any](list []T) []any {
	out := make([]any, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}

// LogSnowflakeQuery records one executed (or generated) SQL statement with
// its purpose, row count, and a preview of the results.
func (s *Session) LogSnowflakeQuery(purpose, query string, results []any) error {
	s.meta.SnowflakeQueries++

	var b strings.Builder
	fmt.Fprintf(&b, "\n## Query %d: %s\n\n", s.meta.SnowflakeQueries, purpose)
	fmt.Fprintf(&b, "Logged: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "```sql\n%s\n```\n\n", query)
	fmt.Fprintf(&b, "Rows returned: %d\n\n", len(results))
	b.WriteString(jsonPreview(results))

	if err := appendSection(filepath.Join(s.dir, SnowflakeQueryFile), b.String()); err != nil {
		return err
	}
	return s.writeMetadata()
}

// LogAPICall records one external lookup (source, query text) and a
// preview of the normalized records it returned.
func (s *Session) LogAPICall(source, query string, results []any) error {
	s.meta.APICalls++

	var b strings.Builder
	fmt.Fprintf(&b, "\n## Call %d: %s\n\n", s.meta.APICalls, source)
	fmt.Fprintf(&b, "Logged: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Query: `%s`\n\n", query)
	fmt.Fprintf(&b, "Results: %d\n\n", len(results))
	b.WriteString(jsonPreview(results))

	if err := appendSection(filepath.Join(s.dir, APIResultsFile), b.String()); err != nil {
		return err
	}
	return s.writeMetadata()
}

// LogAnalysis records one analysis step. A map of scalar values renders as
// a two-column markdown table with keys sorted; any other payload renders
// as indented JSON.
func (s *Session) LogAnalysis(step string, findings any) error {
	s.meta.AnalysisSteps++

	var b strings.Builder
	fmt.Fprintf(&b, "\n## Step %d: %s\n\n", s.meta.AnalysisSteps, step)
	fmt.Fprintf(&b, "Logged: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	b.WriteString(renderFindings(findings))

	if err := appendSection(filepath.Join(s.dir, AnalysisFile), b.String()); err != nil {
		return err
	}
	return s.writeMetadata()
}

func renderFindings(findings any) string {
	if m, ok := scalarMap(findings); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %v |\n", k, m[k])
		}
		b.WriteString("\n")
		return b.String()
	}

	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("%v", findings))
	}
	return fmt.Sprintf("```json\n%s\n```\n\n", data)
}

// scalarMap reports whether findings is a map of plain scalar values
// suitable for table rendering.
func scalarMap(findings any) (map[string]any, bool) {
	m, ok := findings.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, v := range m {
		switch v.(type) {
		case string, bool, int, int64, float64, nil:
		default:
			return nil, false
		}
	}
	return m, true
}

// WriteReport writes (or overwrites) the final report file.
func (s *Session) WriteReport(content string) error {
	path := filepath.Join(s.dir, ReportFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Finalize stamps the completion time and status and returns the session
// directory. Unknown status values are recorded as given.
func (s *Session) Finalize(status string) (string, error) {
	s.meta.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	s.meta.Status = status
	if err := s.writeMetadata(); err != nil {
		return "", err
	}
	return s.dir, nil
}
