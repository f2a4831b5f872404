// Package order resolves requested sort fields into a stable sort spec.
package order

import (
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Direction is ascending or descending.
type Direction int

// Directions.
const (
	Asc  Direction = 1
	Desc Direction = -1
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Key is one sort field with its direction.
type Key struct {
	Field string
	Dir   Direction
}

// Spec is an ordered list of sort keys, primary first.
type Spec []Key

// Primary returns the first key.
func (s Spec) Primary() Key {
	if len(s) == 0 {
		return Key{Field: restaurant.FieldName, Dir: Asc}
	}
	return s[0]
}

// Describe renders the spec as "field:dir" pairs.
func (s Spec) Describe() []string {
	out := make([]string, len(s))
	for i, k := range s {
		out[i] = k.Field + ":" + k.Dir.String()
	}
	return out
}

// Availability tells Resolve which computed fields exist for this query.
type Availability struct {
	Distance  bool
	Relevance bool
}

type field struct {
	name       string
	defaultDir Direction
	needs      func(Availability) bool
}

var fields = map[string]field{
	"name":                    {name: restaurant.FieldName, defaultDir: Asc},
	"rating":                  {name: restaurant.FieldRating, defaultDir: Desc},
	"avg_cost_per_person":     {name: restaurant.FieldAvgCost, defaultDir: Asc},
	"price":                   {name: restaurant.FieldAvgCost, defaultDir: Asc},
	"price_level":             {name: restaurant.FieldPriceLevel, defaultDir: Asc},
	"total_reviews":           {name: restaurant.FieldTotalReviews, defaultDir: Desc},
	"reviews":                 {name: restaurant.FieldTotalReviews, defaultDir: Desc},
	"created_at":              {name: restaurant.FieldCreatedAt, defaultDir: Desc},
	"updated_at":              {name: restaurant.FieldUpdatedAt, defaultDir: Desc},
	"distance":                {name: restaurant.FieldDistance, defaultDir: Asc, needs: func(a Availability) bool { return a.Distance }},
	"relevance":               {name: restaurant.FieldTextScore, defaultDir: Desc, needs: func(a Availability) bool { return a.Relevance }},
	restaurant.FieldTextScore: {name: restaurant.FieldTextScore, defaultDir: Desc, needs: func(a Availability) bool { return a.Relevance }},
}

// Resolve maps sortBy and sortOrder to a spec. Unknown fields, and computed
// fields the query cannot provide, fall back to name ascending. Any primary
// other than name gets name ascending as a tie-break.
func Resolve(sortBy, sortOrder string, avail Availability) Spec {
	f, ok := fields[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok || (f.needs != nil && !f.needs(avail)) {
		return Spec{{Field: restaurant.FieldName, Dir: Asc}}
	}

	dir := f.defaultDir
	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "asc":
		dir = Asc
	case "desc":
		dir = Desc
	}

	spec := Spec{{Field: f.name, Dir: dir}}
	if f.name != restaurant.FieldName {
		spec = append(spec, Key{Field: restaurant.FieldName, Dir: Asc})
	}
	return spec
}

// By builds a spec directly, adding the name tie-break.
func By(field string, dir Direction) Spec {
	spec := Spec{{Field: field, Dir: dir}}
	if field != restaurant.FieldName {
		spec = append(spec, Key{Field: restaurant.FieldName, Dir: Asc})
	}
	return spec
}
