package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/config"
	dbMongo "github.com/kailas-cloud/restodex/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/restodex/internal/db/redis"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/metrics"
	"github.com/kailas-cloud/restodex/internal/repository/querycache"
	restaurantrepo "github.com/kailas-cloud/restodex/internal/repository/restaurant"
	chiTransport "github.com/kailas-cloud/restodex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/restodex/internal/usecase/restaurant"
	searchuc "github.com/kailas-cloud/restodex/internal/usecase/search"
	"github.com/kailas-cloud/restodex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting restodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_name", cfg.Database.Name),
		zap.String("db_collection", cfg.Database.Collection),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register store and cache metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	ctx := context.Background()

	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:        cfg.Database.URI,
		Database:   cfg.Database.Name,
		Collection: cfg.Database.Collection,
		AppName:    logpkg.ServiceName,
	})
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("Error closing document store", zap.Error(err))
		}
	}()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	restRepo := restaurantrepo.New(store)
	if cfg.Database.EnsureIndexes {
		if err := restRepo.EnsureIndexes(logpkg.ContextWithLogger(ctx, logger)); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.Error(err))
		}
		logger.Info("Indexes ensured")
	}

	// Pass nil interfaces (not typed nil pointers!) when the cache is disabled.
	// Go gotcha: (*querycache.Cache)(nil) wrapped in an interface != nil.
	var (
		invalidator restaurantuc.Invalidator
		queryCache  searchuc.Cache
		cachePinger healthuc.Pinger
	)
	if cfg.Cache.Enabled {
		cacheStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Cache.Addrs,
			Password:   cfg.Cache.Password,
			ClientName: logpkg.ServiceName,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()

		if err := cacheStore.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		qc := querycache.New(cacheStore, querycache.Config{
			KeyPrefix:  cfg.Cache.KeyPrefix,
			StatsTTL:   time.Duration(cfg.Cache.StatsTTLSec) * time.Second,
			SuggestTTL: time.Duration(cfg.Cache.SuggestTTLSec) * time.Second,
		}, metrics.CacheRequestsTotal, logger)
		invalidator = qc
		queryCache = qc
		cachePinger = cacheStore
	}

	limits := request.Limits{
		DefaultLimit:      cfg.Query.DefaultLimit,
		MaxLimit:          cfg.Query.MaxLimit,
		DefaultRadius:     cfg.Query.DefaultRadiusM,
		MaxCandidates:     cfg.Query.MaxCandidates,
		AutocompleteLimit: cfg.Query.AutocompleteLimit,
	}

	// Create use case services
	restSvc := restaurantuc.New(restRepo, domrest.NewValidator(), invalidator)
	searchSvc := searchuc.New(restRepo, queryCache, limits)
	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(restSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(metrics.ResponseTime())
	r.Use(chiTransport.CORS(cfg.CORS.AllowedOrigins))
	r.Use(chiMiddleware.Compress(5, "application/json"))
	r.Use(chiTransport.BearerAuthMiddleware(chiTransport.AuthOptions{
		APIKeys:     cfg.Auth.APIKeys,
		PublicReads: cfg.Auth.PublicReads,
	}))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
