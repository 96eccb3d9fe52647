package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultCountry = "US"
	productsPath   = "data.products"

	// maxBodyBytes caps how much of an upstream body is read
	maxBodyBytes = 8 << 20
)

// AmazonProvider implements the RapidAPI Real-Time Amazon Data search API
type AmazonProvider struct {
	*BaseProvider
}

// NewAmazonProvider creates a new RapidAPI Amazon provider
func NewAmazonProvider(config *types.ProviderConfig, log *logger.Logger) (Provider, error) {
	base := NewBaseProvider(config, log)
	return &AmazonProvider{BaseProvider: base}, nil
}

// upstreamSort maps a local sort key to the upstream sort_by vocabulary.
// The upstream has no rating direction, so both rating keys share one value.
func upstreamSort(k types.SortKey) string {
	switch k {
	case types.SortPriceAsc:
		return "PRICE_LOW_TO_HIGH"
	case types.SortPriceDesc:
		return "PRICE_HIGH_TO_LOW"
	case types.SortRatingAsc, types.SortRatingDesc:
		return "AVERAGE_CUSTOMER_REVIEWS"
	default:
		return "RELEVANCE"
	}
}

func (p *AmazonProvider) buildURL(query *types.SearchQuery) (string, error) {
	u, err := url.Parse(p.config.APIHost)
	if err != nil {
		return "", fmt.Errorf("invalid api host: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	country := p.config.Country
	if country == "" {
		country = defaultCountry
	}

	params := u.Query()
	params.Set("query", query.Term)
	params.Set("page", strconv.Itoa(page))
	params.Set("country", country)
	params.Set("sort_by", upstreamSort(query.Sort))
	params.Set("product_condition", "ALL")
	params.Set("is_prime", "false")
	params.Set("deals_and_discounts", "NONE")
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Search executes a product search against the RapidAPI endpoint
func (p *AmazonProvider) Search(ctx context.Context, query *types.SearchQuery) (*types.RawPage, error) {
	startTime := time.Now()

	apiURL, err := p.buildURL(query)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("x-rapidapi-key", p.GetAPIKey())
	httpReq.Header.Set("x-rapidapi-host", p.config.RapidAPIHost)

	// Execute request
	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		p.logger.Warn("upstream request failed",
			zap.String("query", query.Term),
			zap.Duration("latency", time.Since(startTime)),
			zap.Error(err),
		)
		return nil, &types.UpstreamError{
			Provider: p.GetID(),
			Kind:     types.KindUnreachable,
			Message:  "Failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &types.UpstreamError{
			Provider: p.GetID(),
			Kind:     types.KindUnreachable,
			Message:  "Failed to read response body",
			Err:      err,
		}
	}

	// Check status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("upstream returned error status",
			zap.String("query", query.Term),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(startTime)),
		)
		p.logger.Debug("upstream error body", zap.ByteString("body", body))
		return nil, &types.UpstreamError{
			Provider: p.GetID(),
			Kind:     types.KindStatus,
			Status:   resp.StatusCode,
			Message:  http.StatusText(resp.StatusCode),
		}
	}

	if !gjson.ValidBytes(body) {
		p.logger.Debug("upstream invalid body", zap.ByteString("body", body))
		return nil, &types.UpstreamError{
			Provider: p.GetID(),
			Kind:     types.KindInvalidResponse,
			Status:   resp.StatusCode,
			Message:  "Response is not valid JSON",
		}
	}

	// A missing or non-array products list is an empty page
	var products []gjson.Result
	if list := gjson.GetBytes(body, productsPath); list.IsArray() {
		products = list.Array()
	}

	took := time.Since(startTime)
	p.logger.Info("upstream search completed",
		zap.String("query", query.Term),
		zap.Int("status", resp.StatusCode),
		zap.Int("products", len(products)),
		zap.Duration("latency", took),
	)

	return &types.RawPage{
		Query:    query.Term,
		Page:     query.Page,
		Products: products,
		Took:     took.Milliseconds(),
		Provider: p.GetID(),
	}, nil
}
