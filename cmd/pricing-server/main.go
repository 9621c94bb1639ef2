package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-ru/subscription-pricing-go/internal/cache"
	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/internal/reference"
	"github.com/cloud-ru/subscription-pricing-go/internal/server"
	"github.com/cloud-ru/subscription-pricing-go/internal/tools"
	"github.com/cloud-ru/subscription-pricing-go/internal/tracing"
	"github.com/cloud-ru/subscription-pricing-go/pkg/logger"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Инициализация логгера
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.ServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		log.Fatal("Failed to init tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("Tracing shutdown failed", zap.Error(err))
		}
	}()

	engine, err := cfg.Engine()
	if err != nil {
		log.Fatal("Invalid pricing configuration", zap.Error(err))
	}

	subsidies := reference.NewSubsidyTable(nil)
	if cfg.SubsidyFile != "" {
		subsidies, err = reference.LoadSubsidyXLSX(cfg.SubsidyFile)
		if err != nil {
			log.Fatal("Failed to load subsidy table", zap.Error(err))
		}
		log.Info("Subsidy table loaded", zap.String("file", cfg.SubsidyFile), zap.Int("rows", subsidies.Len()))
	}

	deps := tools.Deps{
		Config:    cfg,
		Engine:    engine,
		Subsidies: subsidies,
		Tracer:    tracer,
	}
	namespace, err := deps.Fingerprint()
	if err != nil {
		log.Fatal("Failed to fingerprint pricing configuration", zap.Error(err))
	}

	opts := server.Options{
		Tools:          tools.Registry(deps),
		AllowedOrigins: cfg.AllowedOrigins,
		CacheTTL:       cfg.RedisTTL,
		CacheNamespace: namespace,
		Logger:         log,
	}
	switch cfg.CacheBackend() {
	case config.CacheRedis:
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 30*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		opts.Cache = redisCache
		log.Info("Result cache enabled",
			zap.String("addr", cfg.RedisAddr),
			zap.Duration("ttl", cfg.RedisTTL),
			zap.String("namespace", namespace))
	case config.CacheMemory:
		opts.Cache = cache.NewMemoryCache()
		log.Info("In-memory result cache enabled", zap.String("namespace", namespace))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Pricing server started", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped with error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Pricing server shutdown gracefully")
}
