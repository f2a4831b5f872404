package restaurant

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	insertFn    func(ctx context.Context, doc any) (string, error)
	findByIDFn  func(ctx context.Context, id string, out any) error
	replaceFn   func(ctx context.Context, id string, doc any) error
	deleteFn    func(ctx context.Context, id string, out any) error
	findFn      func(ctx context.Context, q *db.FindQuery, out any) error
	countFn     func(ctx context.Context, filter any) (int64, error)
	aggregateFn func(ctx context.Context, pipeline any, out any) error
	ensureFn    func(ctx context.Context, defs []*db.IndexDefinition) error
}

func (m *mockStore) InsertOne(ctx context.Context, doc any) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, doc)
	}
	return "65f0a1b2c3d4e5f6a7b8c9d0", nil
}

func (m *mockStore) FindByID(ctx context.Context, id string, out any) error {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id, out)
	}
	return db.ErrNotFound
}

func (m *mockStore) ReplaceByID(ctx context.Context, id string, doc any) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, id, doc)
	}
	return nil
}

func (m *mockStore) DeleteByID(ctx context.Context, id string, out any) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, out)
	}
	return db.ErrNotFound
}

func (m *mockStore) Find(ctx context.Context, q *db.FindQuery, out any) error {
	if m.findFn != nil {
		return m.findFn(ctx, q, out)
	}
	return nil
}

func (m *mockStore) Count(ctx context.Context, filter any) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockStore) Aggregate(ctx context.Context, pipeline any, out any) error {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, pipeline, out)
	}
	return nil
}

func (m *mockStore) EnsureIndexes(ctx context.Context, defs []*db.IndexDefinition) error {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, defs)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
