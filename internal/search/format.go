// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// FormatTable writes patents as a human-readable table to w.
func FormatTable(patents []types.Patent, w io.Writer) {
	if len(patents) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-56s  %-30s  %s\n", "Number", "Title", "Assignee", "Filed")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, p := range patents {
		fmt.Fprintf(w, "%-16s  %-56s  %-30s  %s\n",
			truncate(p.PatentNumber, 16),
			truncate(p.Title, 56),
			truncate(p.Assignee, 30),
			p.FilingDate)
	}

	fmt.Fprintf(w, "\n%d results\n", len(patents))
}

// FormatJSON writes patents as indented JSON to w.
func FormatJSON(patents []types.Patent, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(patents)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
