// Package plan assembles the request-scoped query descriptor and resolves it
// into a tagged query plan.
package plan

import (
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/proximity"
	"github.com/kailas-cloud/restodex/internal/domain/search/score"
	"github.com/kailas-cloud/restodex/internal/domain/search/text"
)

// Kind tags how the store executes a plan.
type Kind int

// Plan kinds.
const (
	// Plain is a predicate find with sort, skip and limit.
	Plain Kind = iota
	// GeoProximity is a nearest-neighbor pipeline annotated with distance.
	GeoProximity
)

func (k Kind) String() string {
	if k == GeoProximity {
		return "geo_proximity"
	}
	return "plain"
}

// Stage names one step of the assembled pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageGeoNear Stage = "geo_near"
	StageText    Stage = "text"
	StageFilter  Stage = "filter"
	StageScore   Stage = "score"
	StageSort    Stage = "sort"
	StageSkip    Stage = "skip"
	StageLimit   Stage = "limit"
	StageProject Stage = "project"
)

// excluded fields never leave the store.
var excluded = []string{restaurant.FieldVersion}

// Excluded returns the fields always projected out of results.
func Excluded() []string {
	out := make([]string, len(excluded))
	copy(out, excluded)
	return out
}

// Descriptor is the immutable, request-scoped query description.
type Descriptor struct {
	filters    filter.Set
	text       text.Search
	proximity  proximity.Stage
	geo        bool
	scorer     *score.Scorer
	candidates int
	sort       order.Spec
	window     page.Window
}

// Option sets one aspect of a descriptor under construction.
type Option func(*Descriptor)

// WithFilters sets the compiled predicate set.
func WithFilters(s filter.Set) Option {
	return func(d *Descriptor) { d.filters = s }
}

// WithText sets the free-text strategy.
func WithText(t text.Search) Option {
	return func(d *Descriptor) { d.text = t }
}

// WithProximity activates the nearest-neighbor stage.
func WithProximity(s proximity.Stage) Option {
	return func(d *Descriptor) {
		d.proximity = s
		d.geo = true
	}
}

// WithScoring enables recommendation scoring over at most maxCandidates records.
func WithScoring(s score.Scorer, maxCandidates int) Option {
	return func(d *Descriptor) {
		d.scorer = &s
		d.candidates = maxCandidates
	}
}

// WithSort sets the sort spec.
func WithSort(s order.Spec) Option {
	return func(d *Descriptor) {
		d.sort = make(order.Spec, len(s))
		copy(d.sort, s)
	}
}

// WithWindow sets the pagination window.
func WithWindow(w page.Window) Option {
	return func(d *Descriptor) { d.window = w }
}

// NewDescriptor folds opts over defaults (name ascending, first page).
func NewDescriptor(opts ...Option) Descriptor {
	d := Descriptor{
		sort:   order.By(restaurant.FieldName, order.Asc),
		window: page.First(page.DefaultLimit),
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.scorer != nil && d.candidates < d.window.Limit() {
		d.candidates = d.window.Limit()
	}
	return d
}

// Filters returns the compiled predicate set.
func (d Descriptor) Filters() filter.Set { return d.filters }

// Text returns the free-text strategy.
func (d Descriptor) Text() text.Search { return d.text }

// Proximity returns the nearest-neighbor stage when active.
func (d Descriptor) Proximity() (proximity.Stage, bool) { return d.proximity, d.geo }

// Scorer returns the recommendation scorer when scoring is enabled.
func (d Descriptor) Scorer() (score.Scorer, bool) {
	if d.scorer == nil {
		return score.Scorer{}, false
	}
	return *d.scorer, true
}

// Sort returns a copy of the requested sort spec.
func (d Descriptor) Sort() order.Spec {
	out := make(order.Spec, len(d.sort))
	copy(out, d.sort)
	return out
}

// Window returns the pagination window.
func (d Descriptor) Window() page.Window { return d.window }

// Applied reports the post-compilation criteria for response metadata.
func (d Descriptor) Applied() map[string]any {
	out := d.filters.Applied()
	if d.text.IsActive() {
		out["search"] = map[string]any{"query": d.text.Raw(), "strategy": string(d.text.Mode())}
	}
	if d.geo {
		out["near"] = map[string]any{
			"center":        d.proximity.Center().Coordinates(),
			"radius_meters": d.proximity.Radius(),
		}
	}
	return out
}

// SortAvailability reports which computed sort fields a query with t and
// an optional proximity stage can provide. The text score exists only when
// the text index is used, which a proximity pipeline rules out.
func SortAvailability(t text.Search, geo bool) order.Availability {
	return order.Availability{
		Distance:  geo,
		Relevance: t.UsesIndex() && !geo,
	}
}
