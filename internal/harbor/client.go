package harbor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production vendor API root.
	DefaultBaseURL = "https://api.harborwholesale.com/api"

	// itemLookupTop caps how many item-detail records a single lookup
	// requests.
	itemLookupTop = 100

	defaultTimeout = 30 * time.Second
)

// APIError is a non-success response from the vendor API.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: vendor API returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client calls the vendor's order-history and item endpoints for a
// single account. One client is constructed per credential; the bearer
// token is fixed for the client's lifetime. No retries, no pagination.
type Client struct {
	baseURL    string
	accountID  string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the production API root (tests point this at a
// local server).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger used for debug dumps of raw responses.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a vendor API client for one account and token.
func NewClient(accountID, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		accountID: accountID,
		token:     token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDocumentHeader fetches the invoice header for a posted document.
func (c *Client) GetDocumentHeader(ctx context.Context, documentID string) (DocumentHeader, error) {
	var header DocumentHeader
	endpoint := fmt.Sprintf("/v2.0/OrderHistory/%s/GetPostedDocumentHeader", c.accountID)
	params := url.Values{"documentId": {documentID}}
	if err := c.call(ctx, "GetDocumentHeader", http.MethodGet, endpoint, params, nil, &header); err != nil {
		return DocumentHeader{}, err
	}
	return header, nil
}

// GetLineItems fetches the line items for a posted document.
func (c *Client) GetLineItems(ctx context.Context, documentID string) (LineItemsResponse, error) {
	var lines LineItemsResponse
	endpoint := fmt.Sprintf("/v2.0/OrderHistory/%s/GetPostedDocumentLines", c.accountID)
	params := url.Values{"documentId": {documentID}}
	body := map[string]string{"documentId": documentID}
	if err := c.call(ctx, "GetLineItems", http.MethodPost, endpoint, params, body, &lines); err != nil {
		return LineItemsResponse{}, err
	}
	return lines, nil
}

// GetCategories fetches the category summaries for a posted document.
func (c *Client) GetCategories(ctx context.Context, documentID string) (CategoryMap, error) {
	var categories CategoryMap
	endpoint := fmt.Sprintf("/v2.0/Category/%s/GetCategoriesForPostedDocument", c.accountID)
	params := url.Values{"documentId": {documentID}}
	if err := c.call(ctx, "GetCategories", http.MethodGet, endpoint, params, nil, &categories); err != nil {
		return CategoryMap{}, err
	}
	return categories, nil
}

// GetItems looks up item-detail records for the given item ids using a
// disjunctive ItemID filter, ordered by description. An empty id list
// returns an empty result without touching the network.
func (c *Client) GetItems(ctx context.Context, itemIDs []string) (ItemsResponse, error) {
	if len(itemIDs) == 0 {
		return ItemsResponse{}, nil
	}

	clauses := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		clauses = append(clauses, fmt.Sprintf("ItemID eq '%s'", id))
	}
	body := map[string]interface{}{
		"Filter":  "(" + strings.Join(clauses, " or ") + ")",
		"Top":     itemLookupTop,
		"OrderBy": "ItemDescription asc",
	}

	var items ItemsResponse
	endpoint := fmt.Sprintf("/v1.0/Item/%s/items", c.accountID)
	params := url.Values{"includeNonSellableUOMs": {"false"}}
	if err := c.call(ctx, "GetItems", http.MethodPost, endpoint, params, body, &items); err != nil {
		return ItemsResponse{}, err
	}
	return items, nil
}

func (c *Client) call(ctx context.Context, operation, method, endpoint string, params url.Values, body, out interface{}) error {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request body: %w", operation, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(raw), 512),
		}
	}

	c.log.Debug().Str("operation", operation).RawJSON("response", raw).Msg("vendor API response")

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
