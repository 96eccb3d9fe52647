package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/smartshop/internal/catalog/service"
	"github.com/lk2023060901/smartshop/internal/conf"
	apperrors "github.com/lk2023060901/smartshop/internal/pkg/errors"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
	"github.com/lk2023060901/smartshop/internal/server/middleware"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server         *http.Server
	logger         *logger.Logger
	productService *service.ProductService
}

// NewHTTPServer builds the router. limiter may be nil, in which case /api is
// not rate limited.
func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	productService *service.ProductService,
	limiter middleware.Evaler,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := NewRouter(config, log, productService, limiter)

	return &HTTPServer{
		server: &http.Server{
			Addr:    config.Server.Addr(),
			Handler: router,
		},
		logger:         log,
		productService: productService,
	}
}

// NewRouter wires middleware, API routes and the static fallback
func NewRouter(
	config *conf.Config,
	log *logger.Logger,
	productService *service.ProductService,
	limiter middleware.Evaler,
) *gin.Engine {
	serverName := config.Server.Name

	router := gin.New()
	router.Use(logger.GinRecovery(log, serverName))
	router.Use(logger.GinLogger(log, logger.MiddlewareOptions{
		SkipPaths: []string{"/api/health"},
	}))

	api := router.Group("/api")
	if config.RateLimit.Enabled && limiter != nil {
		api.Use(middleware.APIRateLimiter(
			limiter,
			config.RateLimit.MaxRequests,
			config.RateLimit.WindowSeconds,
			serverName,
			log,
		))
	}
	productService.RegisterRoutes(api)

	router.NoRoute(spaFallback(config.Server.StaticDir, serverName))

	return router
}

// spaFallback serves files from dir and falls back to dir/index.html for any
// other GET. Non-GET requests get a 404 body.
func spaFallback(dir, serverName string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.ErrorWithCode(c, serverName, apperrors.ErrNotFound)
			return
		}

		// path.Clean on a rooted path never climbs above dir
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+reqPath)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}

		if _, err := os.Stat(index); err != nil {
			response.ErrorWithCode(c, serverName, apperrors.ErrNotFound)
			return
		}
		c.File(index)
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}
