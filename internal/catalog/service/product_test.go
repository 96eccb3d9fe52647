package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/smartshop/internal/catalog/biz"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
	"github.com/tidwall/gjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context, q *types.SearchQuery) (*types.RawPage, error)

func (f sourceFunc) Search(ctx context.Context, q *types.SearchQuery) (*types.RawPage, error) {
	return f(ctx, q)
}

func newRouter(source biz.ProductSource) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := NewProductService(biz.NewSearchUseCase(source, "Node-A", nil), "Node-A", logger.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 5_000_000, time.FixedZone("X", 3600)) }

	r := gin.New()
	svc.RegisterRoutes(r.Group("/api"))
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSearchProducts(t *testing.T) {
	var seen *types.SearchQuery
	r := newRouter(sourceFunc(func(_ context.Context, q *types.SearchQuery) (*types.RawPage, error) {
		seen = q
		return &types.RawPage{Products: []gjson.Result{
			gjson.Parse(`{"asin":"A1","product_title":"Desk","product_price":"$120.00","product_star_rating":4.1}`),
			gjson.Parse(`{"asin":"A2","product_title":"Chair","product_price":"","product_star_rating":4.8}`),
		}}, nil
	}))

	w := get(r, "/api/products?q=desk&minPrice=0&sort=price-asc&page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body types.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Node-A", body.ServerName)
	assert.Equal(t, "desk", body.Query)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "A1", body.Products[0].ID)
	assert.Equal(t, 120.0, body.Products[0].Price)

	require.NotNil(t, seen.MinPrice)
	assert.Nil(t, seen.MaxPrice)
	assert.Equal(t, types.SortPriceAsc, seen.Sort)
}

func TestSearchProducts_NonFiniteRating(t *testing.T) {
	for _, rating := range []string{`"NaN"`, `"Infinity"`, `"inf"`} {
		t.Run(rating, func(t *testing.T) {
			r := newRouter(sourceFunc(func(context.Context, *types.SearchQuery) (*types.RawPage, error) {
				return &types.RawPage{Products: []gjson.Result{
					gjson.Parse(`{"asin":"A1","product_title":"Desk","product_price":"$80","product_star_rating":` + rating + `}`),
					gjson.Parse(`{"asin":"A2","product_title":"Lamp","product_price":"$20","product_star_rating":4.2}`),
				}}, nil
			}))

			w := get(r, "/api/products?q=desk")
			require.Equal(t, http.StatusOK, w.Code)

			var body types.SearchResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, 2, body.Count)
			require.Len(t, body.Products, 2)
			assert.Equal(t, 0.0, body.Products[0].Rating)
			assert.Equal(t, 4.2, body.Products[1].Rating)
		})
	}
}

func TestSearchProducts_Errors(t *testing.T) {
	upstream := func(err error) biz.ProductSource {
		return sourceFunc(func(context.Context, *types.SearchQuery) (*types.RawPage, error) { return nil, err })
	}
	ok := upstream(nil)

	tests := []struct {
		name       string
		source     biz.ProductSource
		target     string
		wantStatus int
		wantError  string
	}{
		{"missing q", ok, "/api/products", 400, "Search term (?q=) is required"},
		{"blank q", ok, "/api/products?q=%20%20", 400, "Search term (?q=) is required"},
		{"bad minRating", ok, "/api/products?q=x&minRating=high", 400, "Invalid filter value: minRating"},
		{"nan minPrice", ok, "/api/products?q=x&minPrice=NaN", 400, "Invalid filter value: minPrice"},
		{
			"upstream 429",
			upstream(&types.UpstreamError{Kind: types.KindStatus, Status: 429}),
			"/api/products?q=x", 429, "External API rate limit exceeded. Please try again later.",
		},
		{
			"upstream 500",
			upstream(&types.UpstreamError{Kind: types.KindStatus, Status: 500}),
			"/api/products?q=x", 500, "External product service is currently unavailable.",
		},
		{
			"upstream timeout",
			upstream(&types.UpstreamError{Kind: types.KindUnreachable, Err: context.DeadlineExceeded}),
			"/api/products?q=x", 503, "Could not reach the external product service. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(tt.source), tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body response.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Node-A", body.ServerName)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	w := get(newRouter(nil), "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"serverName":"Node-A","status":"ok","time":"2026-03-01T11:30:00.005Z"}`, w.Body.String())
}
