// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/patent-intel/pkg/types"
)

// googlePatentsBase is the Google Patents XHR query endpoint. Declared as a
// var so tests can substitute an httptest server.
var googlePatentsBase = "https://patents.google.com/xhr/query"

// The endpoint only answers requests that look like they come from the
// patents.google.com frontend.
const (
	googleUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	googleReferer   = "https://patents.google.com/"
)

// GooglePatentsTier queries the public, unauthenticated Google Patents
// search endpoint. It is rate-limited and serves as the fallback tier.
type GooglePatentsTier struct {
	Client *http.Client
}

// Name returns the tier identifier.
func (t *GooglePatentsTier) Name() string { return "google_patents" }

// Search queries the XHR endpoint. Query syntax differs by kind: assignee
// searches are wrapped as "assignee=<term>", title searches as "(<term>)",
// number lookups pass the publication number as-is.
func (t *GooglePatentsTier) Search(ctx context.Context, q Query) ([]types.Patent, error) {
	num := q.Limit
	if num <= 0 {
		num = 20
	}
	if num > remoteMaxRows {
		num = remoteMaxRows
	}

	params := url.Values{
		"url":    {wrapGoogleQuery(q)},
		"num":    {strconv.Itoa(num)},
		"exp":    {""},
		"output": {"json"},
	}
	reqURL := googlePatentsBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", googleUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", googleReferer)

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Google Patents request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("Google Patents rate limited (HTTP %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Patents returned HTTP %d", resp.StatusCode)
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing Google Patents response: %w", err)
	}

	var results []types.Patent
	for _, cluster := range gr.Results.Cluster {
		for _, item := range cluster.Result {
			results = append(results, normalizeGoogle(item.Patent))
			if q.Limit > 0 && len(results) >= q.Limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// wrapGoogleQuery builds the url= parameter value for the query kind.
func wrapGoogleQuery(q Query) string {
	switch q.Kind {
	case KindAssignee:
		return "assignee=" + q.Term
	case KindTitle:
		return "(" + q.Term + ")"
	default:
		return q.Term
	}
}

// normalizeGoogle converts one Google Patents hit into a canonical record.
// Assignee text arrives with search-highlight markup (<b> tags) and the
// snippet carries the &hellip; entity; both are normalized away.
func normalizeGoogle(p googlePatent) types.Patent {
	var inventors []string
	if p.Inventor != "" {
		inventors = []string{p.Inventor}
	}
	return types.Patent{
		PatentNumber: p.PublicationNumber,
		Title:        strings.TrimSpace(p.Title),
		Abstract:     strings.ReplaceAll(p.Snippet, "&hellip;", "..."),
		Assignee:     stripHTML(p.Assignee),
		Inventors:    inventors,
		FilingDate:   p.FilingDate,
		GrantDate:    p.GrantDate,
		CPCCodes:     nil,
	}
}

// stripHTML returns the text content of an HTML fragment. Plain strings
// pass through untouched; unparseable input is returned as-is.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// Google Patents XHR JSON structures.
type googleResponse struct {
	Results googleResults `json:"results"`
}

type googleResults struct {
	Cluster []googleCluster `json:"cluster"`
}

type googleCluster struct {
	Result []googleItem `json:"result"`
}

type googleItem struct {
	Patent googlePatent `json:"patent"`
}

type googlePatent struct {
	PublicationNumber string `json:"publication_number"`
	Title             string `json:"title"`
	Snippet           string `json:"snippet"`
	Assignee          string `json:"assignee"`
	Inventor          string `json:"inventor"`
	FilingDate        string `json:"filing_date"`
	GrantDate         string `json:"grant_date"`
}
