package db

import (
	"context"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore is the document database facade. Filters, sorts, projections
// and pipelines are backend-native values built by the repository layer.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type DocumentStore interface {
	Pinger
	DocumentWriter
	DocumentReader
	Aggregator
	IndexManager
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// DocumentWriter mutates single documents by id.
type DocumentWriter interface {
	InsertOne(ctx context.Context, doc any) (string, error)
	ReplaceByID(ctx context.Context, id string, doc any) error
	DeleteByID(ctx context.Context, id string, out any) error
}

// DocumentReader reads documents by id or predicate.
type DocumentReader interface {
	FindByID(ctx context.Context, id string, out any) error
	Find(ctx context.Context, q *FindQuery, out any) error
	Count(ctx context.Context, filter any) (int64, error)
}

// Aggregator runs aggregation pipelines.
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline any, out any) error
}

// IndexManager creates collection indexes.
type IndexManager interface {
	EnsureIndexes(ctx context.Context, defs []*IndexDefinition) error
}

// FindQuery is the input for a predicate find with sort, skip, limit and projection.
type FindQuery struct {
	Filter     any
	Sort       any
	Projection any
	Skip       int64
	Limit      int64
}

// Cache is the key-value facade used for response caching.
type Cache interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}
