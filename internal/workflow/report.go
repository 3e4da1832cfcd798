// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/patent-intel/pkg/types"
)

const (
	reportMaxPatents  = 20
	abstractTruncLen  = 300
	topAssigneesCount = 5
)

// GenerateReport renders a markdown summary of a patent result set:
// headline counts, the most frequent assignees, the filing date range, an
// optional free-text analysis section, and per-patent sections for the
// first twenty records.
func GenerateReport(title string, patents []types.Patent, analysis string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Total patents: %d\n\n", len(patents))

	if len(patents) == 0 {
		b.WriteString("No patents found.\n")
		return b.String()
	}

	writeAssigneeSummary(&b, patents)
	writeDateRange(&b, patents)

	if analysis != "" {
		fmt.Fprintf(&b, "## Analysis\n\n%s\n\n", strings.TrimSpace(analysis))
	}

	b.WriteString("## Patents\n\n")
	shown := patents
	if len(shown) > reportMaxPatents {
		shown = shown[:reportMaxPatents]
	}
	for _, p := range shown {
		writePatentSection(&b, p)
	}
	if len(patents) > reportMaxPatents {
		fmt.Fprintf(&b, "... and %d more patents.\n", len(patents)-reportMaxPatents)
	}
	return b.String()
}

func writeAssigneeSummary(b *strings.Builder, patents []types.Patent) {
	counts := map[string]int{}
	for _, p := range patents {
		if p.Assignee != "" {
			counts[p.Assignee]++
		}
	}
	if len(counts) == 0 {
		return
	}

	type assigneeCount struct {
		name  string
		count int
	}
	ranked := make([]assigneeCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, assigneeCount{name, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topAssigneesCount {
		ranked = ranked[:topAssigneesCount]
	}

	b.WriteString("## Top Assignees\n\n")
	for _, a := range ranked {
		fmt.Fprintf(b, "- %s: %d patents\n", a.name, a.count)
	}
	b.WriteString("\n")
}

func writeDateRange(b *strings.Builder, patents []types.Patent) {
	var earliest, latest string
	for _, p := range patents {
		if p.FilingDate == "" {
			continue
		}
		if earliest == "" || p.FilingDate < earliest {
			earliest = p.FilingDate
		}
		if p.FilingDate > latest {
			latest = p.FilingDate
		}
	}
	if earliest != "" {
		fmt.Fprintf(b, "Filing date range: %s to %s\n\n", earliest, latest)
	}
}

func writePatentSection(b *strings.Builder, p types.Patent) {
	fmt.Fprintf(b, "### %s\n\n", p.PatentNumber)
	if p.Title != "" {
		fmt.Fprintf(b, "**%s**\n\n", p.Title)
	}
	if p.Assignee != "" {
		fmt.Fprintf(b, "- Assignee: %s\n", p.Assignee)
	}
	if len(p.Inventors) > 0 {
		fmt.Fprintf(b, "- Inventors: %s\n", strings.Join(p.Inventors, ", "))
	}
	if p.FilingDate != "" {
		fmt.Fprintf(b, "- Filed: %s\n", p.FilingDate)
	}
	if p.GrantDate != "" {
		fmt.Fprintf(b, "- Granted: %s\n", p.GrantDate)
	}
	if len(p.CPCCodes) > 0 {
		fmt.Fprintf(b, "- CPC: %s\n", strings.Join(p.CPCCodes, ", "))
	}

	abstract := p.Abstract
	if abstract == "" {
		abstract = "No abstract available"
	} else if len(abstract) > abstractTruncLen {
		abstract = abstract[:abstractTruncLen] + "..."
	}
	fmt.Fprintf(b, "\n%s\n\n", abstract)
}
