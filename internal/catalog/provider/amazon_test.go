package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lk2023060901/smartshop/internal/catalog/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `{
  "status": "OK",
  "data": {
    "total_products": 2,
    "products": [
      {"asin": "B01", "product_title": "Mouse", "product_price": "$19.99", "product_star_rating": "4.5"},
      {"asin": "B02", "product_title": "Keyboard", "product_price": null}
    ]
  }
}`

func newAmazon(t *testing.T, handler http.HandlerFunc) (*AmazonProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAmazonProvider(testConfig(srv.URL+"/search"), nil)
	require.NoError(t, err)
	return p.(*AmazonProvider), srv
}

func TestUpstreamSort(t *testing.T) {
	tests := []struct {
		key  types.SortKey
		want string
	}{
		{types.SortRelevance, "RELEVANCE"},
		{types.SortPriceAsc, "PRICE_LOW_TO_HIGH"},
		{types.SortPriceDesc, "PRICE_HIGH_TO_LOW"},
		{types.SortRatingAsc, "AVERAGE_CUSTOMER_REVIEWS"},
		{types.SortRatingDesc, "AVERAGE_CUSTOMER_REVIEWS"},
		{"", "RELEVANCE"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, upstreamSort(tt.key))
		})
	}
}

func TestAmazonProvider_Search(t *testing.T) {
	p, _ := newAmazon(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "wireless mouse", q.Get("query"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "US", q.Get("country"))
		assert.Equal(t, "PRICE_HIGH_TO_LOW", q.Get("sort_by"))
		assert.Equal(t, "ALL", q.Get("product_condition"))
		assert.Equal(t, "false", q.Get("is_prime"))
		assert.Equal(t, "NONE", q.Get("deals_and_discounts"))
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "real-time-amazon-data.p.rapidapi.com", r.Header.Get("x-rapidapi-host"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePage))
	})

	page, err := p.Search(context.Background(), &types.SearchQuery{
		Term: "wireless mouse",
		Sort: types.SortPriceDesc,
		Page: 2,
	})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "B01", page.Products[0].Get("asin").String())
	assert.Equal(t, "wireless mouse", page.Query)
	assert.Equal(t, types.ProviderRapidAPIAmazon, page.Provider)
}

func TestAmazonProvider_Search_DefaultsPage(t *testing.T) {
	p, _ := newAmazon(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "RELEVANCE", r.URL.Query().Get("sort_by"))
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	page, err := p.Search(context.Background(), &types.SearchQuery{Term: "lamp"})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestAmazonProvider_Search_StatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			p, _ := newAmazon(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				http.Error(w, `{"message":"nope"}`, status)
			})

			_, err := p.Search(context.Background(), &types.SearchQuery{Term: "x"})

			var upErr *types.UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, types.KindStatus, upErr.Kind)
			assert.Equal(t, status, upErr.Status)
			assert.Equal(t, int32(1), calls.Load(), "exactly one attempt")
		})
	}
}

func TestAmazonProvider_Search_InvalidJSON(t *testing.T) {
	p, _ := newAmazon(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := p.Search(context.Background(), &types.SearchQuery{Term: "x"})

	var upErr *types.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, types.KindInvalidResponse, upErr.Kind)
}

func TestAmazonProvider_Search_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	config := testConfig(srv.URL)
	config.Timeout = 50 * time.Millisecond
	p, err := NewAmazonProvider(config, nil)
	require.NoError(t, err)

	_, err = p.Search(context.Background(), &types.SearchQuery{Term: "x"})

	var upErr *types.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, types.KindUnreachable, upErr.Kind)
}

func TestAmazonProvider_Search_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewAmazonProvider(testConfig(url), nil)
	require.NoError(t, err)

	_, err = p.Search(context.Background(), &types.SearchQuery{Term: "x"})

	var upErr *types.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, types.KindUnreachable, upErr.Kind)
}
