package text

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

// MinAutocompleteLength is the shortest accepted autocomplete query, in characters.
const MinAutocompleteLength = 2

// AutocompleteFields are matched by substring when looking up candidates.
var AutocompleteFields = []string{
	restaurant.FieldName,
	restaurant.FieldCuisineType,
	restaurant.FieldCategory,
	restaurant.FieldCity,
	restaurant.FieldNeighborhood,
}

// Tag names the suggestion bucket a candidate lands in. Lower values win.
type Tag int

// Tags in priority order.
const (
	TagRestaurant Tag = iota
	TagCuisine
	TagLocation
	TagCategory
)

// ParseAutocomplete trims q and rejects queries shorter than MinAutocompleteLength.
func ParseAutocomplete(param, q string) (string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinAutocompleteLength {
		return "", domain.NewValidationError(param, "must be at least 2 characters")
	}
	return q, nil
}

// AutocompletePredicate matches q against any autocomplete field.
func AutocompletePredicate(q string) filter.Predicate {
	return filter.AnyContains(q, AutocompleteFields...)
}

// Classify tags a candidate with its single highest-priority match: name,
// then cuisine, then city or neighborhood, then the first matching category.
func Classify(q string, r *restaurant.Restaurant) (Tag, string, bool) {
	needle := strings.ToLower(q)
	has := func(s string) bool { return s != "" && strings.Contains(strings.ToLower(s), needle) }

	switch {
	case has(r.Name):
		return TagRestaurant, r.Name, true
	case has(string(r.CuisineType)):
		return TagCuisine, string(r.CuisineType), true
	case has(r.City):
		return TagLocation, r.City, true
	case has(r.Neighborhood):
		return TagLocation, r.Neighborhood, true
	}
	for _, c := range r.Category {
		if has(c) {
			return TagCategory, c, true
		}
	}
	return 0, "", false
}

// Group tags every candidate once and buckets the values, deduplicated
// case-insensitively and capped at limit per bucket.
func Group(q string, candidates []restaurant.Restaurant, limit int) result.Suggestions {
	out := result.EmptySuggestions()
	buckets := map[Tag]*[]string{
		TagRestaurant: &out.Restaurants,
		TagCuisine:    &out.Cuisines,
		TagLocation:   &out.Locations,
		TagCategory:   &out.Categories,
	}
	seen := map[Tag]map[string]bool{
		TagRestaurant: {},
		TagCuisine:    {},
		TagLocation:   {},
		TagCategory:   {},
	}

	for i := range candidates {
		tag, value, ok := Classify(q, &candidates[i])
		if !ok {
			continue
		}
		key := strings.ToLower(value)
		bucket := buckets[tag]
		if seen[tag][key] || (limit > 0 && len(*bucket) >= limit) {
			continue
		}
		seen[tag][key] = true
		*bucket = append(*bucket, value)
	}
	return out
}
