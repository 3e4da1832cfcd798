// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader bulk-populates the Snowflake cache: it resolves patent
// records for tracked competitors and technology areas and turns each
// record into an upsert statement.
package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/patent-intel/internal/search"
	"github.com/pdiddy/patent-intel/internal/snowflake"
	"github.com/pdiddy/patent-intel/pkg/types"
)

// Competitors are the assignees tracked by default.
var Competitors = []string{
	"Allegion",
	"Dormakaba",
	"Spectrum Brands",
	"Stanley Black & Decker",
}

// Technologies are the technology areas tracked by default.
var Technologies = []string{
	"smart lock",
	"electronic lock",
	"biometric access",
	"RFID access",
	"NFC access",
	"keyless entry",
	"mobile credential",
	"door hardware",
	"access control",
}

// Loader resolves patent records and generates cache upserts. Runner is
// optional; when set, each generated statement is also executed.
type Loader struct {
	Resolver *search.Resolver
	Runner   *snowflake.Runner
	Out      io.Writer
}

// LoadCompetitorPatents resolves patents assigned to one company and
// returns the upsert statements for them. Records without a patent number
// are skipped with a diagnostic.
func (l *Loader) LoadCompetitorPatents(ctx context.Context, company string, limit int) []string {
	patents := l.Resolver.SearchByAssignee(ctx, company, limit)
	return l.upserts(ctx, company, patents, "assignee="+company, "competitor")
}

// LoadTechnologyPatents resolves patents matching one technology keyword
// and returns the upsert statements for them.
func (l *Loader) LoadTechnologyPatents(ctx context.Context, technology string, limit int) []string {
	patents := l.Resolver.SearchByTitle(ctx, technology, limit)
	return l.upserts(ctx, technology, patents, technology, "technology")
}

// LoadAllCompetitors runs LoadCompetitorPatents for every tracked
// competitor and returns the statements grouped by company.
func (l *Loader) LoadAllCompetitors(ctx context.Context, limit int) map[string][]string {
	out := make(map[string][]string, len(Competitors))
	for _, company := range Competitors {
		out[company] = l.LoadCompetitorPatents(ctx, company, limit)
	}
	return out
}

// LoadAllTechnologies runs LoadTechnologyPatents for every tracked
// technology area and returns the statements grouped by keyword.
func (l *Loader) LoadAllTechnologies(ctx context.Context, limit int) map[string][]string {
	out := make(map[string][]string, len(Technologies))
	for _, tech := range Technologies {
		out[tech] = l.LoadTechnologyPatents(ctx, tech, limit)
	}
	return out
}

func (l *Loader) upserts(ctx context.Context, label string, patents []types.Patent, searchQuery, category string) []string {
	var statements []string
	for _, p := range patents {
		stmt, err := snowflake.UpsertQuery(p, searchQuery, category)
		if err != nil {
			fmt.Fprintf(l.Out, "[%s: skipping record: %v]\n", label, err)
			continue
		}
		statements = append(statements, stmt)
		if l.Runner != nil {
			l.Runner.Execute(ctx, stmt)
		}
	}
	fmt.Fprintf(l.Out, "[%s]: generated %d upsert statements\n", label, len(statements))
	return statements
}
