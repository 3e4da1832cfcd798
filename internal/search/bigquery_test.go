// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// fakeExecutor returns canned output or an error without running anything.
type fakeExecutor struct {
	output  []byte
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeExecutor) RunOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func newTestCPCSearcher(exec *fakeExecutor, w *bytes.Buffer) *CPCSearcher {
	s := NewCPCSearcher(types.BigQueryConfig{Timeout: time.Second}, w)
	s.exec = exec
	return s
}

const sampleBQJSON = `[
  {
    "publication_number": "US11111111B2",
    "title": "Electronic lock",
    "abstract": "An electronic lock.",
    "assignee": "ASSA ABLOY AB",
    "inventors": "Erik Lindqvist, Anna Svensson",
    "filing_date": "2022-01-15",
    "grant_date": "2024-06-01",
    "cpc_codes": "E05B47/00, E05B47/06"
  },
  {
    "publication_number": "US22222222B2",
    "title": "Another lock",
    "abstract": "",
    "assignee": "",
    "inventors": "",
    "filing_date": "2021-03-02",
    "grant_date": "2023-11-20",
    "cpc_codes": ""
  }
]`

func TestSearchByCPC(t *testing.T) {
	fx := &fakeExecutor{output: []byte(sampleBQJSON)}
	var diag bytes.Buffer
	s := newTestCPCSearcher(fx, &diag)

	got := s.SearchByCPC(context.Background(), "E05B47", CPCOptions{Limit: 10})
	if len(got) != 2 {
		t.Fatalf("got %d patents, want 2", len(got))
	}

	p := got[0]
	if p.PatentNumber != "US11111111B2" || p.Assignee != "ASSA ABLOY AB" {
		t.Errorf("first patent = %+v", p)
	}
	if len(p.Inventors) != 2 || p.Inventors[1] != "Anna Svensson" {
		t.Errorf("Inventors = %v, want comma-joined list split", p.Inventors)
	}
	if len(p.CPCCodes) != 2 {
		t.Errorf("CPCCodes = %v", p.CPCCodes)
	}
	if len(got[1].Inventors) != 0 || len(got[1].CPCCodes) != 0 {
		t.Errorf("empty list columns should map to empty slices, got %+v", got[1])
	}

	if fx.gotName != "bq" {
		t.Errorf("invoked %q, want bq", fx.gotName)
	}
	if !strings.Contains(diag.String(), "found 2 patents") {
		t.Errorf("diagnostics = %q", diag.String())
	}
}

func TestSearchByCPCFailSoft(t *testing.T) {
	tests := []struct {
		name string
		fx   *fakeExecutor
		want string
	}{
		{"tool not found", &fakeExecutor{err: exec.ErrNotFound}, "BigQuery error"},
		{"non-zero exit", &fakeExecutor{err: fmt.Errorf("bq: exit status 1: quota exceeded")}, "BigQuery error"},
		{"malformed JSON", &fakeExecutor{output: []byte("Welcome to BigQuery!")}, "JSON parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diag bytes.Buffer
			s := newTestCPCSearcher(tt.fx, &diag)

			got := s.SearchByCPC(context.Background(), "E05B47", CPCOptions{})
			if len(got) != 0 {
				t.Fatalf("got %d patents, want empty on failure", len(got))
			}
			if !strings.Contains(diag.String(), tt.want) {
				t.Errorf("diagnostics = %q, want substring %q", diag.String(), tt.want)
			}
		})
	}
}

func TestBuildCPCQuery(t *testing.T) {
	q := buildCPCQuery("E05B47", "US", CPCOptions{
		Limit:          25,
		MinGrantDate:   "20240101",
		AssigneeFilter: "ASSA ABLOY",
	})

	for _, want := range []string{
		`country_code = "US"`,
		`c.code LIKE "E05B47%"`,
		`grant_date >= 20240101`,
		`LOWER(a.name) LIKE "%assa abloy%"`,
		"`patents-public-data.patents.publications`",
		"ORDER BY grant_date DESC",
		"LIMIT 25",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q:\n%s", want, q)
		}
	}
}

func TestBuildCPCQueryDefaults(t *testing.T) {
	q := buildCPCQuery("G07C9", "US", CPCOptions{})

	if !strings.Contains(q, "LIMIT 50") {
		t.Errorf("query missing default limit:\n%s", q)
	}
	if strings.Contains(q, "grant_date >=") {
		t.Errorf("query has a grant-date floor without one requested:\n%s", q)
	}
	if strings.Contains(q, "assignee_harmonized) a") {
		t.Errorf("query has an assignee filter without one requested:\n%s", q)
	}
}
