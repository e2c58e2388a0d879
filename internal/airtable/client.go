package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/teemow/calbridge/internal/upstream"
)

const providerName = "airtable"

// DefaultBaseURL is the public table-store endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Client talks to the table store's record API for a single base.
type Client struct {
	http   *resty.Client
	baseID string
}

// NewClient creates a table-store client. baseURL is usually
// DefaultBaseURL; tests point it at an httptest server.
func NewClient(baseURL, apiKey, baseID string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{http: c, baseID: baseID}
}

// ListRecords fetches records from the named table. filterFormula, if
// non-empty, is passed through verbatim as the store-native
// filterByFormula predicate; it is not parsed or validated locally.
func (c *Client) ListRecords(ctx context.Context, table, filterFormula string) ([]Record, error) {
	req := c.http.R().SetContext(ctx)
	if filterFormula != "" {
		req.SetQueryParam("filterByFormula", filterFormula)
	}

	resp, err := req.Get(fmt.Sprintf("/%s/%s", c.baseID, table))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", upstream.TransportError(providerName, err))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to list records: %w",
			upstream.StatusError(providerName, resp.StatusCode(), fmt.Errorf("table %q: %s", table, resp.Status())))
	}

	var list recordList
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to decode record list: %w", upstream.TransportError(providerName, err))
	}
	return list.Records, nil
}

// CreateRecord creates one record in the named table. The field map is
// wrapped in the store's {"fields": ...} envelope.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&createRequest{Fields: fields}).
		Post(fmt.Sprintf("/%s/%s", c.baseID, table))
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", upstream.TransportError(providerName, err))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to create record: %w",
			upstream.StatusError(providerName, resp.StatusCode(), fmt.Errorf("table %q: %s", table, resp.Status())))
	}

	var record Record
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("failed to decode created record: %w", upstream.TransportError(providerName, err))
	}
	return &record, nil
}
