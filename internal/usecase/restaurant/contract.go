package restaurant

import (
	"context"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Repository defines the storage contract for restaurants.
type Repository interface {
	Create(ctx context.Context, r domrest.Restaurant) (domrest.Restaurant, error)
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
	Replace(ctx context.Context, r domrest.Restaurant) error
	Delete(ctx context.Context, id string) (domrest.Restaurant, error)
}

// Validator checks a full record before it reaches the store.
type Validator interface {
	Validate(r *domrest.Restaurant) error
}

// Invalidator drops cached aggregate responses after a write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}
