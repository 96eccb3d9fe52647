package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk2023060901/smartshop/internal/catalog/biz"
	"github.com/lk2023060901/smartshop/internal/catalog/provider"
	"github.com/lk2023060901/smartshop/internal/catalog/service"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/conf"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/redis"
	"github.com/lk2023060901/smartshop/internal/server"
	"github.com/lk2023060901/smartshop/internal/server/middleware"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	logger.SetGlobal(log)

	log.Info("config loaded successfully",
		zap.String("server_name", config.Server.Name),
		zap.String("provider", config.Upstream.Provider),
	)
	if config.Upstream.APIKey == "" {
		log.Warn("upstream api key is empty, upstream calls will likely be rejected")
	}

	// Upstream provider
	providerConfig := &types.ProviderConfig{
		ID:           types.ProviderID(config.Upstream.Provider),
		Name:         config.Upstream.Provider,
		APIHost:      config.Upstream.APIHost,
		APIKey:       config.Upstream.APIKey,
		RapidAPIHost: config.Upstream.RapidAPIHost,
		Country:      config.Upstream.Country,
		Timeout:      config.Upstream.Timeout,
	}
	source, err := provider.NewFactory(log).Create(providerConfig)
	if err != nil {
		log.Fatal("failed to create upstream provider", zap.Error(err))
	}

	// Optional rate limiter store
	var limiter middleware.Evaler
	if config.RateLimit.Enabled {
		redisConfig := redis.DefaultConfig()
		redisConfig.Addrs = config.Redis.Addrs
		redisConfig.Password = config.Redis.Password
		redisConfig.DB = config.Redis.DB
		if config.Redis.PoolSize > 0 {
			redisConfig.PoolSize = config.Redis.PoolSize
		}

		redisClient, err := redis.New(redisConfig, log)
		if err != nil {
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = redisClient
		}
	}

	// Initialize use cases and services
	searchUseCase := biz.NewSearchUseCase(source, config.Server.Name, log)
	productService := service.NewProductService(searchUseCase, config.Server.Name, log)

	httpServer := server.NewHTTPServer(config, log, productService, limiter)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
