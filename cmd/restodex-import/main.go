// Bulk import of restaurant records into the directory.
//
// Usage:
//
//	restodex-import -file restaurants.json -workers 8 -ensure-indexes
//
// The input is a JSON array or newline-delimited JSON objects using the
// same field names as POST /api/restaurants. Every record goes through the
// same defaults and validation as the API. Configuration is read the same
// way as the server (ENV selects config/<env>.yaml).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/config"
	dbMongo "github.com/kailas-cloud/restodex/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/restodex/internal/db/redis"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	logpkg "github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/metrics"
	"github.com/kailas-cloud/restodex/internal/repository/querycache"
	restaurantrepo "github.com/kailas-cloud/restodex/internal/repository/restaurant"
	restaurantuc "github.com/kailas-cloud/restodex/internal/usecase/restaurant"
)

type flags struct {
	file          string
	workers       int
	ensureIndexes bool
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.file, "file", "", "JSON or NDJSON file with restaurant records (required)")
	flag.IntVar(&f.workers, "workers", 4, "number of parallel insert workers")
	flag.BoolVar(&f.ensureIndexes, "ensure-indexes", false, "create collection indexes before importing")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if f.file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		flag.Usage()
		os.Exit(2)
	}

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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, f, logger); err != nil {
		logger.Error("Import failed", zap.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic // deferred Sync is best effort
	}
}

func run(ctx context.Context, cfg config.Config, f flags, logger *zap.Logger) error {
	metrics.RegisterStoreMetrics()

	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:        cfg.Database.URI,
		Database:   cfg.Database.Name,
		Collection: cfg.Database.Collection,
		AppName:    logpkg.ServiceName + "-import",
	})
	if err != nil {
		return fmt.Errorf("create document store: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = store.Close(closeCtx)
	}()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	repo := restaurantrepo.New(store)
	if f.ensureIndexes {
		if err := repo.EnsureIndexes(logpkg.ContextWithLogger(ctx, logger)); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		logger.Info("Indexes ensured")
	}

	svc := restaurantuc.New(repo, domrest.NewValidator(), nil)

	file, err := os.Open(filepath.Clean(f.file))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = file.Close() }()

	logger.Info("Importing restaurants", zap.String("file", f.file), zap.Int("workers", f.workers))

	ing := &ingester{svc: svc, workers: f.workers, logger: logger}
	res, err := ing.Run(ctx, file)

	logger.Info("Import finished",
		zap.Int64("imported", res.Imported),
		zap.Int64("invalid", res.Invalid),
		zap.Int64("failed", res.Failed),
		zap.Duration("duration", res.Duration),
	)
	if err != nil {
		return err
	}

	// Cached stats and suggestions are stale after a bulk write.
	if cfg.Cache.Enabled && res.Imported > 0 {
		invalidateCache(ctx, cfg, logger)
	}
	return nil
}

func invalidateCache(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	cacheStore, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Cache.Addrs,
		Password:   cfg.Cache.Password,
		ClientName: logpkg.ServiceName,
	})
	if err != nil {
		logger.Warn("Cache unavailable, cached responses expire by TTL", zap.Error(err))
		return
	}
	defer cacheStore.Close()

	querycache.New(cacheStore, querycache.Config{KeyPrefix: cfg.Cache.KeyPrefix}, nil, logger).
		Invalidate(ctx)
	logger.Info("Query cache invalidated")
}
