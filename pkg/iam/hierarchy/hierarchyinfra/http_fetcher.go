package hierarchyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/kernel"
)

// HTTPFetcher implements hierarchy.Fetcher against the hierarchy store's
// REST endpoint.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the given hierarchy store base URL
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// hierarchyResponse mirrors the upstream payload. Unknown fields are ignored
// by the decoder; missing ones leave zero values, neither is fatal.
type hierarchyResponse struct {
	Hierarchy []hierarchy.Entry `json:"hierarchy"`
}

// FetchHierarchy loads all rank entries scoped to a company
func (f *HTTPFetcher) FetchHierarchy(ctx context.Context, companyID kernel.CompanyID) (hierarchy.Hierarchy, error) {
	url := fmt.Sprintf("%s/roles/hierarchy?companyId=%s", f.baseURL, companyID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hierarchy for company %s: %w", companyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hierarchy store returned status %d for company %s", resp.StatusCode, companyID)
	}

	var payload hierarchyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode hierarchy response: %w", err)
	}

	return hierarchy.FromEntries(payload.Hierarchy), nil
}
