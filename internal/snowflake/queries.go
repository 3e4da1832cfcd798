// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snowflake generates Snowflake SQL text for the patent cache.
//
// The builders are pure functions over already-normalized records. The
// output is fully interpolated text with no bind placeholders; apart from
// quote doubling on free-text columns in the upsert, no sanitization is
// performed. Executing the text (or binding parameters instead) is the
// embedding application's concern.
package snowflake

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// patentsTable is the fully qualified cache table.
const patentsTable = "SNOWFLAKE_LEARNING_DB.PATENT_INTELLIGENCE.PATENTS"

// DefaultStaleDays is the cache staleness threshold.
const DefaultStaleDays = 7

// IsCacheStale reports whether cached data must be re-fetched from the
// resolver: true when updatedAt is nil or strictly older than now minus the
// threshold. A timestamp exactly at the threshold is not stale. days <= 0
// selects the default.
func IsCacheStale(updatedAt *time.Time, days int) bool {
	if updatedAt == nil {
		return true
	}
	if days <= 0 {
		days = DefaultStaleDays
	}
	threshold := time.Now().AddDate(0, 0, -days)
	return updatedAt.Before(threshold)
}

// SearchQuery returns a SELECT over the cache table. kind "assignee"
// filters the assignee column; any other kind is a keyword search over
// title and abstract. The term is interpolated as-is.
func SearchQuery(kind, term string, limit int) string {
	if kind == "assignee" {
		return fmt.Sprintf(`SELECT * FROM %s
WHERE assignee ILIKE '%%%s%%'
ORDER BY filing_date DESC
LIMIT %d;`, patentsTable, term, limit)
	}
	return fmt.Sprintf(`SELECT * FROM %s
WHERE title ILIKE '%%%s%%' OR abstract ILIKE '%%%s%%'
ORDER BY filing_date DESC
LIMIT %d;`, patentsTable, term, term, limit)
}

// UpsertQuery returns a MERGE statement that inserts or updates one record
// keyed on patent_number, stamping updated_at on match and both timestamps
// on insert. searchQuery and category label how the record was found.
// Single quotes in title and abstract are doubled; a record without a
// patent number is a caller-contract violation and returns an error.
func UpsertQuery(p types.Patent, searchQuery, category string) (string, error) {
	if p.PatentNumber == "" {
		return "", fmt.Errorf("building upsert: patent record has no patent number")
	}

	inventorsJSON := jsonList(p.Inventors)
	cpcJSON := jsonList(p.CPCCodes)

	grantDate := "NULL"
	if p.GrantDate != "" {
		grantDate = "'" + p.GrantDate + "'"
	}

	return fmt.Sprintf(`MERGE INTO %s AS target
USING (SELECT
    '%s' AS patent_number,
    '%s' AS title,
    '%s' AS abstract,
    '%s' AS assignee,
    PARSE_JSON('%s') AS inventors,
    '%s' AS filing_date,
    %s AS grant_date,
    PARSE_JSON('%s') AS cpc_codes,
    '%s' AS search_query,
    '%s' AS category
) AS source
ON target.patent_number = source.patent_number
WHEN MATCHED THEN UPDATE SET
    title = source.title,
    abstract = source.abstract,
    assignee = source.assignee,
    inventors = source.inventors,
    filing_date = source.filing_date,
    grant_date = source.grant_date,
    cpc_codes = source.cpc_codes,
    search_query = source.search_query,
    category = source.category,
    updated_at = CURRENT_TIMESTAMP()
WHEN NOT MATCHED THEN INSERT (
    patent_number, title, abstract, assignee, inventors,
    filing_date, grant_date, cpc_codes, search_query, category,
    created_at, updated_at
) VALUES (
    source.patent_number, source.title, source.abstract, source.assignee,
    source.inventors, source.filing_date, source.grant_date, source.cpc_codes,
    source.search_query, source.category, CURRENT_TIMESTAMP(), CURRENT_TIMESTAMP()
);`,
		patentsTable,
		p.PatentNumber,
		escapeQuotes(p.Title),
		escapeQuotes(p.Abstract),
		p.Assignee,
		inventorsJSON,
		p.FilingDate,
		grantDate,
		cpcJSON,
		searchQuery,
		category,
	), nil
}

// TrendsQuery returns an aggregation of patent counts by assignee and
// filing year over a rolling window of the given number of years,
// optionally restricted by a technology keyword.
func TrendsQuery(years int, technologyFilter string) string {
	techClause := ""
	if technologyFilter != "" {
		techClause = fmt.Sprintf("\nAND (title ILIKE '%%%s%%' OR abstract ILIKE '%%%s%%')",
			technologyFilter, technologyFilter)
	}

	return fmt.Sprintf(`SELECT
    assignee,
    YEAR(filing_date) as year,
    COUNT(*) as patent_count
FROM %s
WHERE filing_date >= DATEADD(year, -%d, CURRENT_DATE())%s
GROUP BY assignee, YEAR(filing_date)
ORDER BY year DESC, patent_count DESC;`, patentsTable, years, techClause)
}

// CreateTableSQL returns the DDL for the cache table.
func CreateTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    patent_number VARCHAR PRIMARY KEY,
    title VARCHAR,
    abstract TEXT,
    assignee VARCHAR,
    inventors VARIANT,
    filing_date DATE,
    grant_date DATE,
    cpc_codes VARIANT,
    search_query VARCHAR,
    category VARCHAR,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP(),
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP()
);`, patentsTable)
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// jsonList marshals a string slice as a JSON array literal, with nil
// rendering as [] rather than null.
func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}
