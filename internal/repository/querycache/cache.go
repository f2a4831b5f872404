// Package querycache caches aggregate query responses in a key-value store.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

// Cache names used as the metrics label.
const (
	NameStats   = "stats"
	NameSuggest = "suggest"
)

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Config holds key prefix and per-cache TTLs.
type Config struct {
	KeyPrefix  string
	StatsTTL   time.Duration
	SuggestTTL time.Duration
}

// Cache stores JSON-encoded responses. Cache failures are logged and never
// fail the caller: the loader result is returned instead.
type Cache struct {
	store      store
	cfg        Config
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a response cache.
// cacheTotal is a counter vec with labels "cache" and "result" ("hit"/"miss"/"error"), passed explicitly.
func New(s store, cfg Config, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		cfg:        cfg,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Stats returns cached statistics or calls load and caches its result.
func (c *Cache) Stats(
	ctx context.Context, load func(context.Context) (result.Stats, error),
) (result.Stats, error) {
	return cached(ctx, c, NameStats, c.statsKey(), c.cfg.StatsTTL, load)
}

// Suggestions returns cached autocomplete buckets for (q, limit) or calls load.
func (c *Cache) Suggestions(
	ctx context.Context, q string, limit int, load func(context.Context) (result.Suggestions, error),
) (result.Suggestions, error) {
	return cached(ctx, c, NameSuggest, c.suggestKey(q, limit), c.cfg.SuggestTTL, load)
}

// Invalidate drops every cached response. Called after writes.
func (c *Cache) Invalidate(ctx context.Context) {
	keys, err := c.store.Scan(ctx, c.cfg.KeyPrefix+"*")
	if err != nil {
		c.logger.Warn("Failed to scan cached responses", zap.Error(err))
		return
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Warn("Failed to invalidate cached responses", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

func cached[T any](
	ctx context.Context, c *Cache, name, key string, ttl time.Duration,
	load func(context.Context) (T, error),
) (T, error) {
	if v, ok := get[T](ctx, c, name, key); ok {
		c.inc(name, "hit")
		return v, nil
	}
	c.inc(name, "miss")

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	c.put(ctx, key, v, ttl)
	return v, nil
}

func get[T any](ctx context.Context, c *Cache, name, key string) (T, bool) {
	var v T
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.inc(name, "error")
			c.logger.Warn("Failed to get cached response", zap.String("key", key), zap.Error(err))
		}
		return v, false
	}
	if len(data) == 0 {
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("Failed to parse cached response", zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, true
}

func (c *Cache) put(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) inc(name, res string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(name, res).Inc()
	}
}

func (c *Cache) statsKey() string {
	return c.cfg.KeyPrefix + NameStats
}

func (c *Cache) suggestKey(q string, limit int) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(q))))
	return fmt.Sprintf("%s%s:%s:%s", c.cfg.KeyPrefix, NameSuggest, hex.EncodeToString(h[:8]), strconv.Itoa(limit))
}
