package search

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

// Repository defines the storage contract for query operations.
type Repository interface {
	// Search returns one window of hits and the total match count.
	Search(ctx context.Context, p plan.Plan) (result.Page, error)
	// Query returns hits without counting.
	Query(ctx context.Context, p plan.Plan) ([]result.Hit, error)
	Stats(ctx context.Context) (result.Stats, error)
}

// Cache memoizes aggregate responses. Implementations never fail the
// request because of the cache itself.
type Cache interface {
	Stats(ctx context.Context, load func(context.Context) (result.Stats, error)) (result.Stats, error)
	Suggestions(
		ctx context.Context, q string, limit int,
		load func(context.Context) (result.Suggestions, error),
	) (result.Suggestions, error)
}
