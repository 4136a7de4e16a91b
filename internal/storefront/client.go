// Package storefront is the read side the storefront pages run on: it fetches
// the product collection from the listing endpoint and keeps the listing page state.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tokoshop/internal/models"
)

// ErrFetchFailed is the single failure kind of a catalog fetch. Network errors,
// non-2xx responses and undecodable bodies all wrap it.
var ErrFetchFailed = errors.New("fetch failure")

// Fetcher retrieves the full product collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// CatalogClient fetches products from the product listing endpoint over HTTP.
type CatalogClient struct {
	URL        string
	HTTPClient *http.Client
}

// NewCatalogClient creates a client for the listing endpoint at url.
func NewCatalogClient(url string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch requests the full product set. The endpoint takes no parameters and
// the returned order is whatever the server chose.
func (c *CatalogClient) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrFetchFailed, resp.StatusCode, c.URL)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", ErrFetchFailed, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
