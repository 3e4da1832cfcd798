// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the patent-intel pipeline.
package types

// Patent is the canonical, provider-agnostic patent record all downstream
// logic consumes. Every field defaults to the empty value of its type;
// normalizers fill what the provider carries and leave the rest empty rather
// than omitting anything. Dates are ISO strings ("2020-03-15") with ""
// standing in for null.
type Patent struct {
	// PatentNumber is the publication number (e.g. "US9792747B2"). May be
	// empty when a provider withholds it; the record is still usable for
	// display, only cache upserts require it.
	PatentNumber string `json:"patent_number" yaml:"patent_number"`

	// Title is the invention title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract or search snippet. Empty is a legitimate
	// value: the USPTO search endpoint does not carry abstracts at all.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Assignee is the first-listed assignee or applicant.
	Assignee string `json:"assignee" yaml:"assignee"`

	// Inventors lists inventor names in source order.
	Inventors []string `json:"inventors" yaml:"inventors"`

	// FilingDate is the application filing date.
	FilingDate string `json:"filing_date" yaml:"filing_date"`

	// GrantDate is the grant date. Empty for pending applications and for
	// sources that do not report it.
	GrantDate string `json:"grant_date" yaml:"grant_date"`

	// CPCCodes lists CPC classification codes.
	CPCCodes []string `json:"cpc_codes" yaml:"cpc_codes"`

	// StatusCode is the USPTO application status code, carried through
	// unchanged when the source provides it.
	StatusCode *int `json:"status_code,omitempty" yaml:"status_code,omitempty"`
}
