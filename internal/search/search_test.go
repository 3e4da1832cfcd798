// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// fakeTier records calls and returns canned results or an error.
type fakeTier struct {
	name    string
	results []types.Patent
	err     error
	calls   int
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) Search(_ context.Context, q Query) ([]types.Patent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	results := f.results
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

func patents(numbers ...string) []types.Patent {
	var out []types.Patent
	for _, n := range numbers {
		out = append(out, types.Patent{PatentNumber: n})
	}
	return out
}

func TestResolverShortCircuitsOnFirstNonEmptyTier(t *testing.T) {
	first := &fakeTier{name: "first", results: patents("US1")}
	second := &fakeTier{name: "second", results: patents("US2")}
	r := NewResolver(nil, first, second)

	got := r.SearchByAssignee(context.Background(), "acme", 10)

	if len(got) != 1 || got[0].PatentNumber != "US1" {
		t.Fatalf("got %+v, want the first tier's result", got)
	}
	if second.calls != 0 {
		t.Errorf("second tier was called %d times, want 0", second.calls)
	}
}

func TestResolverFallsThroughOnErrorAndEmpty(t *testing.T) {
	tests := []struct {
		name  string
		first *fakeTier
	}{
		{"tier error", &fakeTier{name: "first", err: fmt.Errorf("HTTP 503")}},
		{"tier empty", &fakeTier{name: "first"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := &fakeTier{name: "second", results: patents("US2")}
			var diag bytes.Buffer
			r := NewResolver(&diag, tt.first, second)

			got := r.SearchByTitle(context.Background(), "smart lock", 5)

			if len(got) != 1 || got[0].PatentNumber != "US2" {
				t.Fatalf("got %+v, want the second tier's result", got)
			}
			if !strings.Contains(diag.String(), "first") {
				t.Errorf("diagnostics %q do not mention the failing tier", diag.String())
			}
		})
	}
}

func TestResolverExhaustedTiersReturnsEmpty(t *testing.T) {
	first := &fakeTier{name: "first", err: fmt.Errorf("timeout")}
	second := &fakeTier{name: "second"}
	r := NewResolver(nil, first, second)

	got := r.SearchByAssignee(context.Background(), "nobody", 10)
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestResolverAppliesLimit(t *testing.T) {
	tier := &fakeTier{name: "only", results: patents("US1", "US2", "US3")}
	r := NewResolver(nil, tier)

	got := r.SearchByAssignee(context.Background(), "acme", 2)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
}

func TestGetPatent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		tier := &fakeTier{name: "only", results: patents("US9792747B2")}
		r := NewResolver(nil, tier)

		p := r.GetPatent(context.Background(), "US9792747B2")
		if p == nil || p.PatentNumber != "US9792747B2" {
			t.Fatalf("got %+v, want US9792747B2", p)
		}
	})
	t.Run("not found anywhere", func(t *testing.T) {
		r := NewResolver(nil, &fakeTier{name: "only"})
		if p := r.GetPatent(context.Background(), "US0000000"); p != nil {
			t.Fatalf("got %+v, want nil", p)
		}
	})
}

func TestNewDefaultTiersOrder(t *testing.T) {
	cfg := types.SearchConfig{EnableUSPTO: true, EnableGooglePatents: true}
	tiers := NewDefaultTiers(cfg, nil)

	var names []string
	for _, tier := range tiers {
		names = append(names, tier.Name())
	}
	want := []string{"uspto", "google_patents", "sample"}
	if len(names) != len(want) {
		t.Fatalf("got tiers %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got tiers %v, want %v", names, want)
		}
	}
}

func TestNewDefaultTiersSampleOnly(t *testing.T) {
	tiers := NewDefaultTiers(types.SearchConfig{}, nil)
	if len(tiers) != 1 || tiers[0].Name() != "sample" {
		t.Fatalf("got %d tiers, want just the sample tier", len(tiers))
	}
}
