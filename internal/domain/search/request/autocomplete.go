package request

import (
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/text"
)

// candidatesPerSuggestion sizes the candidate fetch so that every bucket
// has a chance to fill up.
const candidatesPerSuggestion = 8

// Autocomplete is a parsed autocomplete lookup.
type Autocomplete struct {
	Query      string
	Limit      int
	Descriptor plan.Descriptor
}

// ParseAutocomplete parses GET /api/restaurants/search/autocomplete.
func ParseAutocomplete(v params.Values, l Limits) (Autocomplete, error) {
	q, err := text.ParseAutocomplete("q", v.Get("q"))
	if err != nil {
		return Autocomplete{}, err
	}
	limit, err := v.IntOr("limit", l.AutocompleteLimit)
	if err != nil {
		return Autocomplete{}, err
	}
	w, err := page.NewWindow(1, limit, l.MaxLimit)
	if err != nil {
		return Autocomplete{}, err
	}
	return NewAutocomplete(q, w.Limit(), l.MaxCandidates), nil
}

// NewAutocomplete builds the candidate lookup for an already validated query.
func NewAutocomplete(q string, limit, maxCandidates int) Autocomplete {
	candidates := limit * candidatesPerSuggestion
	if maxCandidates > 0 && candidates > maxCandidates {
		candidates = maxCandidates
	}
	return Autocomplete{
		Query: q,
		Limit: limit,
		Descriptor: plan.NewDescriptor(
			plan.WithFilters(filter.NewSet(text.AutocompletePredicate(q))),
			plan.WithSort(order.By(restaurant.FieldRating, order.Desc)),
			plan.WithWindow(page.First(candidates)),
		),
	}
}
