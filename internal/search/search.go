// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search retrieves patent records from tiered data sources and
// normalizes them into the canonical record shape. Tiers are attempted in
// priority order: USPTO Open Data Portal (authoritative, keyed), Google
// Patents (public, rate-limited), then a built-in sample table. The first
// tier that yields results wins; every failure degrades to "zero results".
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// remoteMaxRows caps the row count sent to a remote provider regardless of
// the caller's limit, respecting provider-side maxima.
const remoteMaxRows = 100

// Kind selects which field a query matches against.
type Kind int

const (
	KindAssignee Kind = iota
	KindTitle
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindAssignee:
		return "assignee"
	case KindTitle:
		return "title"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Query holds one resolver lookup.
type Query struct {
	Kind  Kind
	Term  string
	Limit int
}

// Tier attempts one data source. Implementations return their results in
// provider order; an error means the tier is unavailable and the resolver
// moves on to the next one.
type Tier interface {
	Name() string
	Search(ctx context.Context, q Query) ([]types.Patent, error)
}

// Resolver walks an ordered list of tiers, short-circuiting on the first
// non-empty result set. It never returns an error: exhausting every tier
// yields an empty slice, and each tier failure is reported only as a
// diagnostic line on the writer.
type Resolver struct {
	tiers []Tier
	w     io.Writer
}

// NewResolver builds a resolver over the given tiers, in priority order.
// Diagnostics for fallback transitions are written to w.
func NewResolver(w io.Writer, tiers ...Tier) *Resolver {
	if w == nil {
		w = io.Discard
	}
	return &Resolver{tiers: tiers, w: w}
}

// NewDefaultTiers assembles the standard tier chain from configuration:
// USPTO (when enabled), Google Patents (when enabled), sample table.
func NewDefaultTiers(cfg types.SearchConfig, client *http.Client) []Tier {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	var tiers []Tier
	if cfg.EnableUSPTO {
		tiers = append(tiers, &USPTOTier{Client: client, APIKey: cfg.USPTOAPIKey})
	}
	if cfg.EnableGooglePatents {
		tiers = append(tiers, &GooglePatentsTier{Client: client})
	}
	tiers = append(tiers, SampleTier{})
	return tiers
}

// SearchByAssignee returns patents assigned to a company, at most limit.
func (r *Resolver) SearchByAssignee(ctx context.Context, company string, limit int) []types.Patent {
	return r.resolve(ctx, Query{Kind: KindAssignee, Term: company, Limit: limit})
}

// SearchByTitle returns patents whose title matches the keywords, at most limit.
func (r *Resolver) SearchByTitle(ctx context.Context, keywords string, limit int) []types.Patent {
	return r.resolve(ctx, Query{Kind: KindTitle, Term: keywords, Limit: limit})
}

// GetPatent looks up a single patent by publication number. Returns nil
// when no tier knows it.
func (r *Resolver) GetPatent(ctx context.Context, patentNumber string) *types.Patent {
	results := r.resolve(ctx, Query{Kind: KindNumber, Term: patentNumber, Limit: 1})
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// resolve runs the query through the tier chain. Only one tier ever
// contributes results, so no cross-tier deduplication is needed.
func (r *Resolver) resolve(ctx context.Context, q Query) []types.Patent {
	for i, tier := range r.tiers {
		results, err := tier.Search(ctx, q)
		if err != nil {
			fmt.Fprintf(r.w, "[%s: %v]\n", tier.Name(), err)
			continue
		}
		if len(results) == 0 {
			if next := i + 1; next < len(r.tiers) {
				fmt.Fprintf(r.w, "[%s returned no results, trying %s for %q]\n",
					tier.Name(), r.tiers[next].Name(), q.Term)
			}
			continue
		}
		if q.Limit > 0 && len(results) > q.Limit {
			results = results[:q.Limit]
		}
		if i > 0 {
			fmt.Fprintf(r.w, "[%s: returning %d results for %q]\n", tier.Name(), len(results), q.Term)
		}
		return results
	}
	return nil
}
