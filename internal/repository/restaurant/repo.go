package restaurant

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
	"github.com/kailas-cloud/restodex/internal/logger"
)

// store is the consumer interface for the restaurant collection (ISP).
type store interface {
	InsertOne(ctx context.Context, doc any) (string, error)
	FindByID(ctx context.Context, id string, out any) error
	ReplaceByID(ctx context.Context, id string, doc any) error
	DeleteByID(ctx context.Context, id string, out any) error
	Find(ctx context.Context, q *db.FindQuery, out any) error
	Count(ctx context.Context, filter any) (int64, error)
	Aggregate(ctx context.Context, pipeline any, out any) error
	EnsureIndexes(ctx context.Context, defs []*db.IndexDefinition) error
}

// Repo implements usecase/restaurant.Repository and usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a restaurant repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores r and returns it with its assigned id.
func (r *Repo) Create(ctx context.Context, rest domrest.Restaurant) (domrest.Restaurant, error) {
	rest.ID = ""
	doc, err := fromDomain(&rest)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("encode restaurant: %w", err)
	}

	id, err := r.store.InsertOne(ctx, doc)
	if err != nil {
		return domrest.Restaurant{}, mapErr(err, "")
	}
	rest.ID = id
	return rest, nil
}

// Get returns a restaurant by id.
func (r *Repo) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	var doc document
	if err := r.store.FindByID(ctx, id, &doc); err != nil {
		return domrest.Restaurant{}, mapErr(err, id)
	}
	return doc.toDomain(), nil
}

// Replace overwrites the stored restaurant with the same id.
func (r *Repo) Replace(ctx context.Context, rest domrest.Restaurant) error {
	doc, err := fromDomain(&rest)
	if err != nil {
		return mapErr(db.ErrInvalidID, rest.ID)
	}
	if err := r.store.ReplaceByID(ctx, rest.ID, doc); err != nil {
		return mapErr(err, rest.ID)
	}
	return nil
}

// Delete removes a restaurant and returns what was removed.
func (r *Repo) Delete(ctx context.Context, id string) (domrest.Restaurant, error) {
	var doc document
	if err := r.store.DeleteByID(ctx, id, &doc); err != nil {
		return domrest.Restaurant{}, mapErr(err, id)
	}
	return doc.toDomain(), nil
}

// Search executes p and returns one window of hits plus the total match count.
// The data and count queries run concurrently.
func (r *Repo) Search(ctx context.Context, p plan.Plan) (result.Page, error) {
	var (
		hits  []result.Hit
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hits, err = r.Query(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = r.count(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Page{}, err
	}

	return result.Page{Hits: hits, Total: total}, nil
}

// Query executes p without counting. Scored plans are ranked and windowed here.
func (r *Repo) Query(ctx context.Context, p plan.Plan) ([]result.Hit, error) {
	var docs []document
	switch p.Kind() {
	case plan.GeoProximity:
		pipeline := geoPipeline(p)
		logger.FromContext(ctx).Debug("restaurant geo query", zap.Any("pipeline", pipeline))
		if err := r.store.Aggregate(ctx, pipeline, &docs); err != nil {
			return nil, mapErr(err, "")
		}
	default:
		q := r.findQuery(p)
		logger.FromContext(ctx).Debug("restaurant query", zap.Any("filter", q.Filter), zap.Any("sort", q.Sort))
		if err := r.store.Find(ctx, q, &docs); err != nil {
			return nil, mapErr(err, "")
		}
	}

	hits := make([]result.Hit, 0, len(docs))
	for i := range docs {
		hits = append(hits, docs[i].toHit())
	}
	return p.Finalize(hits), nil
}

func (r *Repo) findQuery(p plan.Plan) *db.FindQuery {
	w := p.StoreWindow()
	return &db.FindQuery{
		Filter:     filterDoc(p),
		Sort:       sortDoc(p.StoreSort()),
		Projection: projectionDoc(p),
		Skip:       w.Skip(),
		Limit:      int64(w.Limit()),
	}
}

func (r *Repo) count(ctx context.Context, p plan.Plan) (int64, error) {
	if p.Kind() == plan.GeoProximity {
		var out []struct {
			Total int64 `bson:"total"`
		}
		if err := r.store.Aggregate(ctx, geoCountPipeline(p), &out); err != nil {
			return 0, mapErr(err, "")
		}
		if len(out) == 0 {
			return 0, nil
		}
		return out[0].Total, nil
	}

	n, err := r.store.Count(ctx, filterDoc(p))
	if err != nil {
		return 0, mapErr(err, "")
	}
	return n, nil
}

type generalRow struct {
	TotalRestaurants int64   `bson:"total_restaurants"`
	AvgRating        float64 `bson:"avg_rating"`
	AvgPrice         float64 `bson:"avg_price"`
	MinPrice         float64 `bson:"min_price"`
	MaxPrice         float64 `bson:"max_price"`
}

type cuisineRow struct {
	Cuisine   string  `bson:"_id"`
	Count     int64   `bson:"count"`
	AvgRating float64 `bson:"avg_rating"`
}

type cityRow struct {
	City  string `bson:"_id"`
	Count int64  `bson:"count"`
}

// Stats aggregates collection-wide, per-cuisine and per-city statistics.
func (r *Repo) Stats(ctx context.Context) (result.Stats, error) {
	var (
		general  []generalRow
		cuisines []cuisineRow
		cities   []cityRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.store.Aggregate(gctx, generalStatsPipeline(), &general) })
	g.Go(func() error { return r.store.Aggregate(gctx, cuisineStatsPipeline(), &cuisines) })
	g.Go(func() error { return r.store.Aggregate(gctx, cityStatsPipeline(), &cities) })
	if err := g.Wait(); err != nil {
		return result.Stats{}, mapErr(err, "")
	}

	out := result.Stats{
		ByCuisine: make([]result.CuisineStat, 0, len(cuisines)),
		ByCity:    make([]result.CityStat, 0, len(cities)),
	}
	if len(general) > 0 {
		out.General = result.General(general[0])
	}
	for _, c := range cuisines {
		out.ByCuisine = append(out.ByCuisine, result.CuisineStat(c))
	}
	for _, c := range cities {
		out.ByCity = append(out.ByCity, result.CityStat(c))
	}
	return out, nil
}

// EnsureIndexes creates the collection indexes the query engine relies on.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	if err := r.store.EnsureIndexes(ctx, Indexes()); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}

// mapErr translates store errors into domain errors.
func mapErr(err error, id string) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return domain.NewNotFound(id)
	case errors.Is(err, db.ErrInvalidID):
		return fmt.Errorf("%w: %s", domain.ErrInvalidID, id)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}
