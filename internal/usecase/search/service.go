package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain/geo"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/request"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
	"github.com/kailas-cloud/restodex/internal/domain/search/text"
	"github.com/kailas-cloud/restodex/internal/logger"
)

// Listing is a paginated result set with the filters that produced it.
type Listing struct {
	Hits       []result.Hit
	Pagination page.Meta
	Applied    map[string]any
	Plan       map[string]any
}

// AdvancedResult is a listing plus search metadata and optional suggestions.
type AdvancedResult struct {
	Listing
	Query       string
	Strategy    text.Mode
	Suggestions result.Suggestions
}

// NearbyResult is a distance-ordered result set around a center.
type NearbyResult struct {
	Hits   []result.Hit
	Center geo.Point
	Radius float64
	Limit  int
}

// RecommendResult is a ranked result set with the criteria echo.
type RecommendResult struct {
	Hits     []result.Hit
	Criteria request.Criteria
	Plan     map[string]any
}

// AutocompleteResult groups suggestions for a query.
type AutocompleteResult struct {
	Query       string
	Suggestions result.Suggestions
}

// Service executes directory queries.
type Service struct {
	repo   Repository
	cache  Cache
	limits request.Limits
}

// New creates a search service. cache can be nil.
func New(repo Repository, cache Cache, limits request.Limits) *Service {
	return &Service{repo: repo, cache: cache, limits: limits}
}

// List runs the filterable restaurant listing.
func (s *Service) List(ctx context.Context, v params.Values) (Listing, error) {
	d, err := request.List(v, s.limits)
	if err != nil {
		return Listing{}, err
	}
	return s.list(ctx, d)
}

// ByCategories lists restaurants in any of the given categories.
func (s *Service) ByCategories(ctx context.Context, categories []string, v params.Values) (Listing, error) {
	d, err := request.Categories(categories, v, s.limits)
	if err != nil {
		return Listing{}, err
	}
	return s.list(ctx, d)
}

// Advanced runs a text search with ranking and optional suggestions.
// A failing suggestion source leaves the suggestions empty.
func (s *Service) Advanced(ctx context.Context, v params.Values) (AdvancedResult, error) {
	a, err := request.ParseAdvanced(v, s.limits)
	if err != nil {
		return AdvancedResult{}, err
	}

	listing, err := s.list(ctx, a.Descriptor)
	if err != nil {
		return AdvancedResult{}, err
	}

	out := AdvancedResult{
		Listing:     listing,
		Query:       a.Query,
		Strategy:    a.Descriptor.Text().Mode(),
		Suggestions: result.EmptySuggestions(),
	}

	if !a.IncludeSuggestions {
		return out, nil
	}
	q, err := text.ParseAutocomplete("q", strings.Trim(a.Query, `"`))
	if err != nil {
		return out, nil
	}
	sug, err := s.suggest(ctx, q, s.limits.AutocompleteLimit)
	if err != nil {
		logger.FromContext(ctx).Warn("suggestions unavailable", zap.String("query", q), zap.Error(err))
		return out, nil
	}
	out.Suggestions = sug
	return out, nil
}

// Nearby returns restaurants within a radius, closest first.
func (s *Service) Nearby(ctx context.Context, v params.Values) (NearbyResult, error) {
	n, err := request.ParseNearby(v, s.limits)
	if err != nil {
		return NearbyResult{}, err
	}

	hits, err := s.repo.Query(ctx, plan.Assemble(n.Descriptor))
	if err != nil {
		return NearbyResult{}, fmt.Errorf("query nearby: %w", err)
	}

	return NearbyResult{Hits: hits, Center: n.Center, Radius: n.Radius, Limit: n.Limit}, nil
}

// Recommend ranks candidates by the composite recommendation score.
func (s *Service) Recommend(ctx context.Context, v params.Values) (RecommendResult, error) {
	r, err := request.ParseRecommend(v, s.limits)
	if err != nil {
		return RecommendResult{}, err
	}

	p := plan.Assemble(r.Descriptor)
	hits, err := s.repo.Query(ctx, p)
	if err != nil {
		return RecommendResult{}, fmt.Errorf("query recommendations: %w", err)
	}

	return RecommendResult{Hits: hits, Criteria: r.Criteria, Plan: p.Describe()}, nil
}

// Autocomplete suggests names, cuisines, locations and categories for a prefix.
func (s *Service) Autocomplete(ctx context.Context, v params.Values) (AutocompleteResult, error) {
	a, err := request.ParseAutocomplete(v, s.limits)
	if err != nil {
		return AutocompleteResult{}, err
	}

	sug, err := s.suggest(ctx, a.Query, a.Limit)
	if err != nil {
		return AutocompleteResult{}, err
	}
	return AutocompleteResult{Query: a.Query, Suggestions: sug}, nil
}

// Stats returns collection-wide statistics.
func (s *Service) Stats(ctx context.Context) (result.Stats, error) {
	load := func(ctx context.Context) (result.Stats, error) {
		st, err := s.repo.Stats(ctx)
		if err != nil {
			return result.Stats{}, fmt.Errorf("aggregate stats: %w", err)
		}
		return st, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.Stats(ctx, load)
}

func (s *Service) list(ctx context.Context, d plan.Descriptor) (Listing, error) {
	p := plan.Assemble(d)
	pg, err := s.repo.Search(ctx, p)
	if err != nil {
		return Listing{}, fmt.Errorf("search restaurants: %w", err)
	}

	return Listing{
		Hits:       pg.Hits,
		Pagination: page.NewMeta(d.Window(), pg.Total),
		Applied:    d.Applied(),
		Plan:       p.Describe(),
	}, nil
}

func (s *Service) suggest(ctx context.Context, q string, limit int) (result.Suggestions, error) {
	load := func(ctx context.Context) (result.Suggestions, error) {
		a := request.NewAutocomplete(q, limit, s.limits.MaxCandidates)
		hits, err := s.repo.Query(ctx, plan.Assemble(a.Descriptor))
		if err != nil {
			return result.Suggestions{}, fmt.Errorf("query suggestions: %w", err)
		}
		candidates := make([]domrest.Restaurant, len(hits))
		for i := range hits {
			candidates[i] = hits[i].Restaurant
		}
		return text.Group(q, candidates, limit), nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.Suggestions(ctx, q, limit, load)
}
