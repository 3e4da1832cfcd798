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

	"github.com/pdiddy/patent-intel/pkg/types"
)

// usptoSearchBase is the USPTO Open Data Portal application search endpoint.
// Declared as a var so tests can substitute an httptest server.
var usptoSearchBase = "https://api.uspto.gov/api/v1/patent/applications/search"

// USPTOTier queries the USPTO Open Data Portal, the authoritative source.
// It requires an API key; when none is configured the tier reports itself
// unavailable without making a request.
type USPTOTier struct {
	Client *http.Client
	APIKey string
}

// Name returns the tier identifier.
func (t *USPTOTier) Name() string { return "uspto" }

// Search queries the ODP application search endpoint. The same endpoint
// serves assignee, title, and publication-number queries; the term is
// passed through as-is.
func (t *USPTOTier) Search(ctx context.Context, q Query) ([]types.Patent, error) {
	if t.APIKey == "" {
		return nil, fmt.Errorf("no USPTO API key configured: set USPTO_API_KEY in the environment or .env file")
	}

	rows := q.Limit
	if rows <= 0 {
		rows = 20
	}
	if rows > remoteMaxRows {
		rows = remoteMaxRows
	}

	params := url.Values{
		"q":    {q.Term},
		"rows": {strconv.Itoa(rows)},
	}
	reqURL := usptoSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", t.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("USPTO API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("USPTO authentication failed (HTTP %d): check API key", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("USPTO API returned HTTP %d", resp.StatusCode)
	}

	var ur usptoResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("parsing USPTO response: %w", err)
	}

	var results []types.Patent
	for _, app := range ur.PatentFileWrapperDataBag {
		p := normalizeUSPTO(app)
		if p == nil {
			continue
		}
		results = append(results, *p)
		if q.Limit > 0 && len(results) >= q.Limit {
			break
		}
	}
	return results, nil
}

// normalizeUSPTO converts one ODP application wrapper into a canonical
// record. Returns nil when the mandatory applicationMetaData sub-object is
// absent, which marks the entry as structurally invalid. All other fields
// are optional and default to empty values.
func normalizeUSPTO(app usptoApplication) *types.Patent {
	meta := app.ApplicationMetaData
	if meta == nil {
		return nil
	}

	assignee := ""
	if len(meta.ApplicantBag) > 0 {
		assignee = meta.ApplicantBag[0].ApplicantNameText
	}

	var inventors []string
	for _, inv := range meta.InventorBag {
		if inv.InventorNameText != "" {
			inventors = append(inventors, inv.InventorNameText)
		}
	}

	// The ODP reports filing dates with a time component; keep the date.
	filingDate := meta.FilingDate
	if i := strings.IndexByte(filingDate, 'T'); i >= 0 {
		filingDate = filingDate[:i]
	}

	var cpcCodes []string
	for _, cpc := range meta.CPCClassificationBag {
		if cpc.Code != "" {
			cpcCodes = append(cpcCodes, cpc.Code)
		}
	}

	return &types.Patent{
		PatentNumber: meta.EarliestPublicationNumber,
		Title:        meta.InventionTitle,
		Abstract:     "", // the search endpoint does not carry it
		Assignee:     assignee,
		Inventors:    inventors,
		FilingDate:   filingDate,
		GrantDate:    "", // would need a separate lookup
		CPCCodes:     cpcCodes,
		StatusCode:   meta.ApplicationStatusCode,
	}
}

// USPTO ODP JSON structures.
type usptoResponse struct {
	PatentFileWrapperDataBag []usptoApplication `json:"patentFileWrapperDataBag"`
	Count                    int                `json:"count"`
}

type usptoApplication struct {
	ApplicationMetaData *usptoMetaData `json:"applicationMetaData"`
}

type usptoMetaData struct {
	InventionTitle            string           `json:"inventionTitle"`
	EarliestPublicationNumber string           `json:"earliestPublicationNumber"`
	FilingDate                string           `json:"filingDate"`
	ApplicationStatusCode     *int             `json:"applicationStatusCode"`
	ApplicantBag              []usptoApplicant `json:"applicantBag"`
	InventorBag               []usptoInventor  `json:"inventorBag"`
	CPCClassificationBag      []usptoCPCEntry  `json:"cpcClassificationBag"`
}

type usptoApplicant struct {
	ApplicantNameText string `json:"applicantNameText"`
}

type usptoInventor struct {
	InventorNameText string `json:"inventorNameText"`
}

// usptoCPCEntry tolerates both shapes the ODP emits for CPC entries: a bare
// string or an object carrying cpcClassificationText. Anything else decodes
// to an empty code rather than failing the whole response.
type usptoCPCEntry struct {
	Code string
}

func (e *usptoCPCEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Code = s
		return nil
	}
	var obj struct {
		CPCClassificationText string `json:"cpcClassificationText"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		e.Code = obj.CPCClassificationText
	}
	return nil
}
