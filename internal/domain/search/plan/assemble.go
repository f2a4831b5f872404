package plan

import (
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/proximity"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

// Plan is a descriptor resolved into an executable shape. The store switches
// on Kind once; everything else is read through accessors.
type Plan struct {
	kind Kind
	d    Descriptor
}

// Assemble resolves the plan kind from the descriptor.
func Assemble(d Descriptor) Plan {
	kind := Plain
	if d.geo {
		kind = GeoProximity
	}
	return Plan{kind: kind, d: d}
}

// Kind returns the plan variant.
func (p Plan) Kind() Kind { return p.kind }

// Descriptor returns the descriptor the plan was assembled from.
func (p Plan) Descriptor() Descriptor { return p.d }

// Proximity returns the nearest-neighbor stage of a GeoProximity plan.
func (p Plan) Proximity() (proximity.Stage, bool) {
	return p.d.proximity, p.kind == GeoProximity
}

// TextIndexQuery returns the store text-index query, if the plan uses one.
// Proximity pipelines cannot use the text index.
func (p Plan) TextIndexQuery() (string, bool) {
	if p.kind != Plain || !p.d.text.UsesIndex() {
		return "", false
	}
	return p.d.text.IndexQuery(), true
}

// Predicates returns the text predicates that run as substring matches,
// followed by the compiled filters. All are joined by AND.
func (p Plan) Predicates() []filter.Predicate {
	var out []filter.Predicate
	if _, indexed := p.TextIndexQuery(); p.d.text.IsActive() && !indexed {
		out = append(out, p.d.text.Predicates()...)
	}
	return append(out, p.d.filters.Predicates()...)
}

// Scored reports whether results are ranked by recommendation score.
func (p Plan) Scored() bool { return p.d.scorer != nil }

// StoreSort is the sort the store applies. Scored plans fetch the
// strongest candidates by rating and rank them afterwards.
func (p Plan) StoreSort() order.Spec {
	if p.Scored() {
		return order.By(restaurant.FieldRating, order.Desc)
	}
	return p.d.Sort()
}

// StoreWindow is the window the store applies.
func (p Plan) StoreWindow() page.Window {
	if p.Scored() {
		return page.First(p.d.candidates)
	}
	return p.d.window
}

// Excluded returns the fields projected out.
func (p Plan) Excluded() []string { return Excluded() }

// Stages lists the pipeline in execution order.
func (p Plan) Stages() []Stage {
	var out []Stage
	if p.kind == GeoProximity {
		out = append(out, StageGeoNear)
	}
	if p.d.text.IsActive() {
		out = append(out, StageText)
	}
	if !p.d.filters.IsEmpty() {
		out = append(out, StageFilter)
	}
	if p.Scored() {
		out = append(out, StageScore)
	}
	return append(out, StageSort, StageSkip, StageLimit, StageProject)
}

// Finalize applies the in-process part of the plan to the store's rows:
// scored plans are ranked and cut to the requested window.
func (p Plan) Finalize(hits []result.Hit) []result.Hit {
	scorer, ok := p.d.Scorer()
	if !ok {
		return hits
	}
	ranked := scorer.Rank(hits)

	skip := p.d.window.Skip()
	if skip >= int64(len(ranked)) {
		return []result.Hit{}
	}
	end := skip + int64(p.d.window.Limit())
	if end > int64(len(ranked)) {
		end = int64(len(ranked))
	}
	return ranked[skip:end]
}

// Describe summarizes the plan for response metadata.
func (p Plan) Describe() map[string]any {
	stages := p.Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	out := map[string]any{
		"kind":   p.kind.String(),
		"stages": names,
		"sort":   p.StoreSort().Describe(),
	}
	if p.d.text.IsActive() {
		out["text_strategy"] = string(p.d.text.Mode())
		_, indexed := p.TextIndexQuery()
		out["text_index"] = indexed
	}
	if scorer, ok := p.d.Scorer(); ok {
		out["score_terms"] = scorer.Names()
	}
	return out
}
