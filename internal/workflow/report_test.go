// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/patent-intel/pkg/types"
)

func TestGenerateReportEmpty(t *testing.T) {
	report := GenerateReport("Smart Lock Landscape", nil, "")

	assert.Contains(t, report, "# Smart Lock Landscape")
	assert.Contains(t, report, "Total patents: 0")
	assert.Contains(t, report, "No patents found.")
	assert.NotContains(t, report, "## Patents")
}

func TestGenerateReport(t *testing.T) {
	patents := []types.Patent{
		{
			PatentNumber: "US9792747B2",
			Title:        "Electronic access control",
			Assignee:     "Allegion",
			Inventors:    []string{"Pat Lee"},
			FilingDate:   "2015-06-22",
			GrantDate:    "2017-10-17",
			CPCCodes:     []string{"G07C9/00"},
			Abstract:     "A credential-based access system.",
		},
		{
			PatentNumber: "US10878656B2",
			Title:        "Wireless lockset",
			Assignee:     "Dormakaba",
			FilingDate:   "2018-03-01",
		},
		{
			PatentNumber: "US10789800B2",
			Title:        "Mobile credential service",
			Assignee:     "Allegion",
			FilingDate:   "2019-01-15",
		},
	}

	report := GenerateReport("Competitor Review", patents, "Allegion leads recent filings.")

	assert.Contains(t, report, "Total patents: 3")
	assert.Contains(t, report, "- Allegion: 2 patents")
	assert.Contains(t, report, "- Dormakaba: 1 patents")
	assert.Contains(t, report, "Filing date range: 2015-06-22 to 2019-01-15")
	assert.Contains(t, report, "### US9792747B2")
	assert.Contains(t, report, "- Inventors: Pat Lee")
	assert.Contains(t, report, "- Granted: 2017-10-17")
	assert.Contains(t, report, "A credential-based access system.")
	assert.Contains(t, report, "## Analysis\n\nAllegion leads recent filings.")
	// Allegion leads the assignee ranking.
	assert.Less(t, strings.Index(report, "- Allegion:"), strings.Index(report, "- Dormakaba:"))
}

func TestGenerateReportMissingAbstract(t *testing.T) {
	report := GenerateReport("Review", []types.Patent{{PatentNumber: "US1"}}, "")
	assert.Contains(t, report, "No abstract available")
}

func TestGenerateReportTruncatesAbstract(t *testing.T) {
	long := strings.Repeat("x", 400)
	report := GenerateReport("Review", []types.Patent{{PatentNumber: "US1", Abstract: long}}, "")

	assert.Contains(t, report, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, report, strings.Repeat("x", 301))
}

func TestGenerateReportCapsAtTwenty(t *testing.T) {
	var patents []types.Patent
	for i := 0; i < 25; i++ {
		patents = append(patents, types.Patent{PatentNumber: fmt.Sprintf("US%02d", i)})
	}

	report := GenerateReport("Bulk", patents, "")

	assert.Contains(t, report, "### US19")
	assert.NotContains(t, report, "### US20")
	assert.Contains(t, report, "... and 5 more patents.")
}
