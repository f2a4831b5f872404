package restaurant

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/logger"
)

// Service handles restaurant CRUD.
type Service struct {
	repo      Repository
	validator Validator
	cache     Invalidator
	now       func() time.Time
}

// New creates a restaurant service. cache can be nil.
func New(repo Repository, v Validator, cache Invalidator) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		cache:     cache,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates a new record built from p and stores it.
func (s *Service) Create(ctx context.Context, p *domrest.Payload) (domrest.Restaurant, error) {
	r := p.NewRestaurant(s.now())
	if err := s.validator.Validate(&r); err != nil {
		return domrest.Restaurant{}, err
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("restaurant created",
		zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Get returns a restaurant by id.
func (s *Service) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return r, nil
}

// Update merges p onto the stored record, revalidates the whole record and
// replaces it.
func (s *Service) Update(ctx context.Context, id string, p *domrest.Payload) (domrest.Restaurant, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}

	p.ApplyTo(&r)
	r.Touch(s.now())
	if err := s.validator.Validate(&r); err != nil {
		return domrest.Restaurant{}, err
	}

	if err := s.repo.Replace(ctx, r); err != nil {
		return domrest.Restaurant{}, fmt.Errorf("replace restaurant: %w", err)
	}

	s.invalidate(ctx)
	return r, nil
}

// Delete removes a restaurant and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (domrest.Restaurant, error) {
	r, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("delete restaurant: %w", err)
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("restaurant deleted", zap.String("id", r.ID))
	return r, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
