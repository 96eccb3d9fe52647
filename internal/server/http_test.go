package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/smartshop/internal/catalog/biz"
	"github.com/lk2023060901/smartshop/internal/catalog/service"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/conf"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
	"github.com/lk2023060901/smartshop/internal/server/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptySource struct{}

func (emptySource) Search(context.Context, *types.SearchQuery) (*types.RawPage, error) {
	return &types.RawPage{}, nil
}

// denyAll rejects every request after the first
type denyAll struct{ calls int }

func (d *denyAll) Eval(context.Context, string, []string, ...interface{}) (interface{}, error) {
	d.calls++
	if d.calls > 1 {
		return []interface{}{int64(0), int64(0), int64(0)}, nil
	}
	return []interface{}{int64(1), int64(0), int64(0)}, nil
}

func testRouter(t *testing.T, limiter middleware.Evaler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shop</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	cfg, err := conf.LoadConfig("")
	require.NoError(t, err)
	cfg.Server.Name = "Node-A"
	cfg.Server.StaticDir = dir
	if limiter != nil {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.MaxRequests = 1
	}

	log := logger.NewNop()
	svc := service.NewProductService(biz.NewSearchUseCase(emptySource{}, "Node-A", log), "Node-A", log)

	return NewRouter(cfg, log, svc, limiter)
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestRouter_API(t *testing.T) {
	r := testRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))

	w = serve(r, http.MethodGet, "/api/products?q=lamp")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"serverName":"Node-A","query":"lamp","count":0,"page":1,"products":[]}`, w.Body.String())
}

func TestRouter_SPAFallback(t *testing.T) {
	r := testRouter(t, nil)

	w := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop")

	w = serve(r, http.MethodGet, "/compare/anything")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop")

	w = serve(r, http.MethodGet, "/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = serve(r, http.MethodGet, "/../../etc/passwd")
	assert.NotContains(t, w.Body.String(), "root:")
}

func TestRouter_NonGETNotFound(t *testing.T) {
	r := testRouter(t, nil)

	w := serve(r, http.MethodPost, "/api/products")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Node-A", body.ServerName)
	assert.Equal(t, "Not found", body.Error)
}

func TestRouter_RateLimited(t *testing.T) {
	r := testRouter(t, &denyAll{})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/products?q=x").Code)

	w := serve(r, http.MethodGet, "/api/products?q=x")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Node-A", body.ServerName)

	// Static pages are outside the limited group
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)
}
