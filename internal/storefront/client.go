package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/httpclient"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
)

// ErrUnreachable wraps every failure where no usable answer came back
var ErrUnreachable = errors.New("backend unreachable")

// APIError is an error body returned by the backend
type APIError struct {
	Status     int
	ServerName string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Client talks to the SmartShop backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. timeout <= 0 uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(timeout),
	}
}

// searchValues only sets filters the user actually filled in
func searchValues(form Form) url.Values {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(form.Term))
	if v := strings.TrimSpace(form.MinPrice); v != "" {
		params.Set("minPrice", v)
	}
	if v := strings.TrimSpace(form.MaxPrice); v != "" {
		params.Set("maxPrice", v)
	}
	if v := strings.TrimSpace(form.MinRating); v != "" {
		params.Set("minRating", v)
	}
	if form.Sort != "" {
		params.Set("sort", string(form.Sort))
	}
	return params
}

// Search runs one product search
func (c *Client) Search(ctx context.Context, form Form) (*types.SearchResult, error) {
	var result types.SearchResult
	if err := c.get(ctx, "/api/products?"+searchValues(form).Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health fetches the backend health document
func (c *Client) Health(ctx context.Context) (*types.Health, error) {
	var health types.Health
	if err := c.get(ctx, "/api/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody response.ErrorBody
		if err := json.Unmarshal(body, &errBody); err != nil {
			return fmt.Errorf("%w: status %d with undecodable body", ErrUnreachable, resp.StatusCode)
		}
		return &APIError{
			Status:     resp.StatusCode,
			ServerName: errBody.ServerName,
			Message:    errBody.Error,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnreachable, err)
	}
	return nil
}

// Close releases idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
