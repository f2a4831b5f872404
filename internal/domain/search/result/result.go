// Package result holds what the query engine hands back to callers.
package result

import "github.com/kailas-cloud/restodex/internal/domain/restaurant"

// Hit is a restaurant annotated with per-query values.
type Hit struct {
	restaurant.Restaurant
	Distance            *float64 `json:"distance,omitempty"`
	TextScore           *float64 `json:"text_score,omitempty"`
	RecommendationScore *float64 `json:"recommendation_score,omitempty"`
}

// Page is one window of hits plus the total number of matches.
type Page struct {
	Hits  []Hit
	Total int64
}

// Suggestions groups autocomplete matches by the field that matched.
type Suggestions struct {
	Restaurants []string `json:"restaurants"`
	Cuisines    []string `json:"cuisines"`
	Locations   []string `json:"locations"`
	Categories  []string `json:"categories"`
}

// EmptySuggestions returns buckets that serialize as [] rather than null.
func EmptySuggestions() Suggestions {
	return Suggestions{
		Restaurants: []string{},
		Cuisines:    []string{},
		Locations:   []string{},
		Categories:  []string{},
	}
}

// IsEmpty reports whether every bucket is empty.
func (s Suggestions) IsEmpty() bool {
	return len(s.Restaurants) == 0 && len(s.Cuisines) == 0 &&
		len(s.Locations) == 0 && len(s.Categories) == 0
}

// Stats is the collection-wide summary.
type Stats struct {
	General   General       `json:"general"`
	ByCuisine []CuisineStat `json:"by_cuisine"`
	ByCity    []CityStat    `json:"by_city"`
}

// General aggregates rating and price over every restaurant.
type General struct {
	TotalRestaurants int64   `json:"total_restaurants"`
	AvgRating        float64 `json:"avg_rating"`
	AvgPrice         float64 `json:"avg_price"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
}

// CuisineStat is one per-cuisine bucket.
type CuisineStat struct {
	Cuisine   string  `json:"cuisine_type"`
	Count     int64   `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// CityStat is one per-city bucket.
type CityStat struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}
