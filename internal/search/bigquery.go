// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/patent-intel/internal/toolexec"
	"github.com/pdiddy/patent-intel/pkg/types"
)

// defaultBigQueryTimeout bounds a single bq invocation.
const defaultBigQueryTimeout = 60 * time.Second

// CPCOptions narrow a CPC classification search.
type CPCOptions struct {
	// Limit bounds the number of returned rows (default 50).
	Limit int

	// Country restricts results to one country code; empty means the
	// configured default ("US").
	Country string

	// MinGrantDate restricts to patents granted on or after this date,
	// given as YYYYMMDD (e.g. "20240101").
	MinGrantDate string

	// AssigneeFilter restricts to assignees whose harmonized name contains
	// this substring, case-insensitively.
	AssigneeFilter string
}

// CPCSearcher queries the public Google Patents BigQuery dataset through
// the bq CLI. This is the precision path for technology-specific searches:
// CPC codes eliminate keyword ambiguity entirely, so it bypasses the tiered
// fallback. Every failure mode (missing binary, timeout, non-zero exit,
// malformed output) degrades to an empty result set.
type CPCSearcher struct {
	country string
	timeout time.Duration
	exec    toolexec.Executor
	w       io.Writer
}

// NewCPCSearcher builds a searcher from configuration, writing diagnostics to w.
func NewCPCSearcher(cfg types.BigQueryConfig, w io.Writer) *CPCSearcher {
	country := cfg.Country
	if country == "" {
		country = "US"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBigQueryTimeout
	}
	if w == nil {
		w = io.Discard
	}
	return &CPCSearcher{country: country, timeout: timeout, exec: toolexec.OS{}, w: w}
}

// SearchByCPC returns patents matching a CPC code prefix (e.g. "E05B47"
// for electronic locks), mapped into the canonical record shape.
func (s *CPCSearcher) SearchByCPC(ctx context.Context, cpcCode string, opts CPCOptions) []types.Patent {
	query := buildCPCQuery(cpcCode, s.country, opts)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.exec.RunOutput(ctx, "bq", "query", "--use_legacy_sql=false", "--format=json", query)
	if err != nil {
		fmt.Fprintf(s.w, "[BigQuery error: %v]\n", err)
		return nil
	}

	var rows []cpcRow
	if err := json.Unmarshal(out, &rows); err != nil {
		fmt.Fprintf(s.w, "[BigQuery JSON parse error: %v]\n", err)
		return nil
	}

	patents := make([]types.Patent, 0, len(rows))
	for _, row := range rows {
		patents = append(patents, row.patent())
	}
	fmt.Fprintf(s.w, "[BigQuery CPC search (%s): found %d patents]\n", cpcCode, len(patents))
	return patents
}

// buildCPCQuery assembles the aggregation query against the public
// patents-public-data.patents.publications table. Dates in that table are
// stored as YYYYMMDD integers and reformatted to ISO strings in the SELECT.
func buildCPCQuery(cpcCode, country string, opts CPCOptions) string {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if opts.Country != "" {
		country = opts.Country
	}

	where := []string{
		fmt.Sprintf(`country_code = "%s"`, country),
		fmt.Sprintf(`EXISTS (SELECT 1 FROM UNNEST(cpc) c WHERE c.code LIKE "%s%%")`, cpcCode),
	}
	if opts.MinGrantDate != "" {
		where = append(where, fmt.Sprintf("grant_date >= %s", opts.MinGrantDate))
	}
	if opts.AssigneeFilter != "" {
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM UNNEST(assignee_harmonized) a WHERE LOWER(a.name) LIKE "%%%s%%")`,
			strings.ToLower(opts.AssigneeFilter)))
	}

	return fmt.Sprintf(`
SELECT
    publication_number,
    title_localized[SAFE_OFFSET(0)].text as title,
    abstract_localized[SAFE_OFFSET(0)].text as abstract,
    assignee_harmonized[SAFE_OFFSET(0)].name as assignee,
    ARRAY_TO_STRING(ARRAY(SELECT name FROM UNNEST(inventor_harmonized)), ", ") as inventors,
    CAST(FLOOR(filing_date / 10000) AS STRING) || "-" ||
        LPAD(CAST(MOD(CAST(FLOOR(filing_date / 100) AS INT64), 100) AS STRING), 2, "0") || "-" ||
        LPAD(CAST(MOD(filing_date, 100) AS STRING), 2, "0") as filing_date,
    CAST(FLOOR(grant_date / 10000) AS STRING) || "-" ||
        LPAD(CAST(MOD(CAST(FLOOR(grant_date / 100) AS INT64), 100) AS STRING), 2, "0") || "-" ||
        LPAD(CAST(MOD(grant_date, 100) AS STRING), 2, "0") as grant_date,
    ARRAY_TO_STRING(ARRAY(SELECT code FROM UNNEST(cpc) WHERE code LIKE "%s%%"), ", ") as cpc_codes
FROM `+"`patents-public-data.patents.publications`"+`
WHERE %s
ORDER BY grant_date DESC
LIMIT %d
`, cpcCode, strings.Join(where, " AND "), limit)
}

// cpcRow is one JSON row from bq. List-valued columns arrive as
// comma-joined strings and are split back out.
type cpcRow struct {
	PublicationNumber string `json:"publication_number"`
	Title             string `json:"title"`
	Abstract          string `json:"abstract"`
	Assignee          string `json:"assignee"`
	Inventors         string `json:"inventors"`
	FilingDate        string `json:"filing_date"`
	GrantDate         string `json:"grant_date"`
	CPCCodes          string `json:"cpc_codes"`
}

func (r cpcRow) patent() types.Patent {
	return types.Patent{
		PatentNumber: r.PublicationNumber,
		Title:        r.Title,
		Abstract:     r.Abstract,
		Assignee:     r.Assignee,
		Inventors:    splitList(r.Inventors),
		FilingDate:   r.FilingDate,
		GrantDate:    r.GrantDate,
		CPCCodes:     splitList(r.CPCCodes),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
