// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snowflake

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-intel/pkg/types"
)

func TestSearchQueryAssignee(t *testing.T) {
	q := SearchQuery("assignee", "Acme", 10)

	assert.Contains(t, q, "ILIKE '%Acme%'")
	assert.Contains(t, q, "LIMIT 10")
	assert.Contains(t, q, "ORDER BY filing_date DESC")
	assert.Contains(t, q, patentsTable)
	assert.Contains(t, q, "assignee ILIKE")
	assert.NotContains(t, q, "title ILIKE")
}

func TestSearchQueryKeyword(t *testing.T) {
	q := SearchQuery("keyword", "smart lock", 25)

	assert.Contains(t, q, "title ILIKE '%smart lock%'")
	assert.Contains(t, q, "abstract ILIKE '%smart lock%'")
	assert.Contains(t, q, "LIMIT 25")
	assert.Contains(t, q, "ORDER BY filing_date DESC")
}

func TestUpsertQuery(t *testing.T) {
	p := types.Patent{
		PatentNumber: "US9792747B2",
		Title:        "O'Brien's lock mechanism",
		Abstract:     "An assembly for the user's door.",
		Assignee:     "Allegion",
		Inventors:    []string{"Pat O'Brien", "Sam Lee"},
		FilingDate:   "2015-06-22",
		GrantDate:    "2017-10-17",
		CPCCodes:     []string{"G07C9/00", "E05B47/00"},
	}

	q, err := UpsertQuery(p, "assignee=Allegion", "competitor")
	require.NoError(t, err)

	assert.Contains(t, q, "MERGE INTO "+patentsTable)
	assert.Contains(t, q, "'US9792747B2' AS patent_number")
	// Embedded single quotes doubled, not stripped.
	assert.Contains(t, q, "O''Brien''s lock mechanism")
	assert.Contains(t, q, "the user''s door")
	assert.Contains(t, q, `PARSE_JSON('["Pat O'Brien","Sam Lee"]')`)
	assert.Contains(t, q, `PARSE_JSON('["G07C9/00","E05B47/00"]')`)
	assert.Contains(t, q, "'2017-10-17' AS grant_date")
	assert.Contains(t, q, "'assignee=Allegion' AS search_query")
	assert.Contains(t, q, "'competitor' AS category")
	assert.Contains(t, q, "WHEN MATCHED THEN UPDATE SET")
	assert.Contains(t, q, "WHEN NOT MATCHED THEN INSERT")
	assert.Contains(t, q, "updated_at = CURRENT_TIMESTAMP()")
}

func TestUpsertQueryEmptyFields(t *testing.T) {
	p := types.Patent{PatentNumber: "US10878656B2"}

	q, err := UpsertQuery(p, "", "")
	require.NoError(t, err)

	// Pending applications carry no grant date.
	assert.Contains(t, q, "NULL AS grant_date")
	// Nil slices render as empty JSON arrays, never null.
	assert.Contains(t, q, `PARSE_JSON('[]') AS inventors`)
	assert.Contains(t, q, `PARSE_JSON('[]') AS cpc_codes`)
	assert.NotContains(t, q, "PARSE_JSON('null')")
}

func TestUpsertQueryNoPatentNumber(t *testing.T) {
	_, err := UpsertQuery(types.Patent{Title: "Untracked"}, "q", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patent number")
}

func TestTrendsQuery(t *testing.T) {
	q := TrendsQuery(5, "")

	assert.Contains(t, q, "DATEADD(year, -5, CURRENT_DATE())")
	assert.Contains(t, q, "GROUP BY assignee, YEAR(filing_date)")
	assert.Contains(t, q, "ORDER BY year DESC, patent_count DESC")
	assert.NotContains(t, q, "title ILIKE")
}

func TestTrendsQueryWithTechnology(t *testing.T) {
	q := TrendsQuery(3, "biometric")

	assert.Contains(t, q, "DATEADD(year, -3, CURRENT_DATE())")
	assert.Contains(t, q, "title ILIKE '%biometric%'")
	assert.Contains(t, q, "abstract ILIKE '%biometric%'")
}

func TestIsCacheStale(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		updatedAt *time.Time
		days      int
		want      bool
	}{
		{name: "nil timestamp", updatedAt: nil, days: 7, want: true},
		{name: "fresh", updatedAt: timePtr(now.Add(-time.Hour)), days: 7, want: false},
		{name: "older than threshold", updatedAt: timePtr(now.AddDate(0, 0, -8)), days: 7, want: true},
		{name: "just inside threshold", updatedAt: timePtr(now.AddDate(0, 0, -7).Add(time.Minute)), days: 7, want: false},
		{name: "default threshold", updatedAt: timePtr(now.AddDate(0, 0, -10)), days: 0, want: true},
		{name: "custom threshold", updatedAt: timePtr(now.AddDate(0, 0, -10)), days: 30, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCacheStale(tt.updatedAt, tt.days))
		})
	}
}

func TestCreateTableSQL(t *testing.T) {
	ddl := CreateTableSQL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+patentsTable)
	for _, col := range []string{
		"patent_number VARCHAR PRIMARY KEY",
		"inventors VARIANT",
		"cpc_codes VARIANT",
		"created_at TIMESTAMP",
		"updated_at TIMESTAMP",
	} {
		assert.Contains(t, ddl, col)
	}
}

func TestEscapeQuotesRoundTrip(t *testing.T) {
	escaped := escapeQuotes("O'Brien")
	assert.Equal(t, "O''Brien", escaped)
	// Doubling is what Snowflake undoes at parse time.
	assert.Equal(t, "O'Brien", strings.ReplaceAll(escaped, "''", "'"))
}

func timePtr(t time.Time) *time.Time { return &t }
