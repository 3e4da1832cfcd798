// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/patent-intel/pkg/types"
)

//go:embed samples.yaml
var sampleYAML []byte

// samplePatents is the built-in demo table, keyed by lower-case search
// term. Decoded once at startup and read-only afterwards, so lookups need
// no synchronization.
var samplePatents map[string][]types.Patent

func init() {
	if err := yaml.Unmarshal(sampleYAML, &samplePatents); err != nil {
		panic(fmt.Sprintf("search: decoding embedded sample table: %v", err))
	}
}

// SampleTier serves built-in demo records when no live source is available.
// It is always the last tier in the chain.
type SampleTier struct{}

// Name returns the tier identifier.
func (SampleTier) Name() string { return "sample" }

// Search matches the query term against table keys by case-insensitive
// substring in either direction ("assa abloy patents" finds the
// "assa abloy" key and vice versa). Publication-number lookups are not
// served from sample data.
func (SampleTier) Search(_ context.Context, q Query) ([]types.Patent, error) {
	if q.Kind == KindNumber {
		return nil, nil
	}

	term := strings.ToLower(q.Term)
	if term == "" {
		return nil, nil
	}

	for key, patents := range samplePatents {
		if strings.Contains(term, key) || strings.Contains(key, term) {
			if q.Limit > 0 && len(patents) > q.Limit {
				patents = patents[:q.Limit]
			}
			return patents, nil
		}
	}
	return nil, nil
}
