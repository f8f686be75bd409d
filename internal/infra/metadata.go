package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// metadataTimeout bounds the whole lookup. The sidecar drives a headless
// browser, so a hung page load must not block the caller indefinitely.
const metadataTimeout = 15 * time.Second

// MetadataResult is returned by the scraper sidecar for one ISBN.
type MetadataResult struct {
	Titulo    string          `json:"titulo"`
	Autor     string          `json:"autor"`
	Editorial string          `json:"editorial"`
	Precio    decimal.Decimal `json:"precio"`
	Fuente    string          `json:"fuente"`
	URL       string          `json:"url"`
}

// MetadataClient delegates book-metadata scraping to the sidecar service.
// The sidecar owns the headless browser and the site-fragile selectors; this
// decoupling isolates scraping failures from the core backend.
type MetadataClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewMetadataClient(sidecarURL string) *MetadataClient {
	return &MetadataClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: metadataTimeout},
	}
}

// Fetch asks the sidecar for the metadata of one ISBN.
// Returns (nil, nil) when the retailer has no page for the ISBN — that is a
// normal outcome, not an upstream failure.
func (c *MetadataClient) Fetch(ctx context.Context, isbn string) (*MetadataResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sidecarURL+"/scrape/"+isbn, nil)
	if err != nil {
		return nil, fmt.Errorf("metadata: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata: sidecar returned %d", resp.StatusCode)
	}

	var result MetadataResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("metadata: decode response: %w", err)
	}
	return &result, nil
}
