// Package score computes the recommendation ranking as a sum of
// independently optional terms.
package score

import (
	"math"
	"sort"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

// Term weights.
const (
	RatingWeight         = 2.0
	CuisineMatchBonus    = 10.0
	WithinBudgetBonus    = 5.0
	OverBudgetPenalty    = -10.0
	ReviewsPerPoint      = 10.0
	MaxPopularity        = 5.0
	ProximityBase        = 10.0
	ProximityMetersPerPt = 1000.0
)

// Term is one pure scoring component.
type Term struct {
	Name string
	Fn   func(h *result.Hit) float64
}

// Rating contributes rating x 2.
func Rating() Term {
	return Term{Name: "rating", Fn: func(h *result.Hit) float64 {
		return h.Rating * RatingWeight
	}}
}

// CuisineMatch adds a bonus when the cuisine is among preferred.
func CuisineMatch(preferred []restaurant.Cuisine) Term {
	set := make(map[restaurant.Cuisine]struct{}, len(preferred))
	for _, c := range preferred {
		set[c] = struct{}{}
	}
	return Term{Name: "cuisine_match", Fn: func(h *result.Hit) float64 {
		if _, ok := set[h.CuisineType]; ok {
			return CuisineMatchBonus
		}
		return 0
	}}
}

// BudgetFit rewards records within budget and penalizes those over it.
func BudgetFit(budget float64) Term {
	return Term{Name: "budget_fit", Fn: func(h *result.Hit) float64 {
		if h.AvgCostPerPerson <= budget {
			return WithinBudgetBonus
		}
		return OverBudgetPenalty
	}}
}

// Popularity contributes min(total_reviews/10, 5).
func Popularity() Term {
	return Term{Name: "popularity", Fn: func(h *result.Hit) float64 {
		return math.Min(float64(h.TotalReviews)/ReviewsPerPoint, MaxPopularity)
	}}
}

// Proximity contributes 10 - distance/1000, unclamped. Hits without a
// distance contribute nothing.
func Proximity() Term {
	return Term{Name: "proximity", Fn: func(h *result.Hit) float64 {
		if h.Distance == nil {
			return 0
		}
		return ProximityBase - *h.Distance/ProximityMetersPerPt
	}}
}

// Criteria selects which optional terms apply.
type Criteria struct {
	PreferredCuisines []restaurant.Cuisine
	BudgetMax         *float64
	Geo               bool
}

// Scorer is an ordered list of terms.
type Scorer struct {
	terms []Term
}

// New orders terms as rating, cuisine, budget, popularity, proximity,
// omitting the ones the criteria do not enable.
func New(c Criteria) Scorer {
	terms := []Term{Rating()}
	if len(c.PreferredCuisines) > 0 {
		terms = append(terms, CuisineMatch(c.PreferredCuisines))
	}
	if c.BudgetMax != nil {
		terms = append(terms, BudgetFit(*c.BudgetMax))
	}
	terms = append(terms, Popularity())
	if c.Geo {
		terms = append(terms, Proximity())
	}
	return Scorer{terms: terms}
}

// Of builds a scorer from explicit terms.
func Of(terms ...Term) Scorer {
	out := make([]Term, len(terms))
	copy(out, terms)
	return Scorer{terms: out}
}

// Names lists the active terms in evaluation order.
func (s Scorer) Names() []string {
	out := make([]string, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Name
	}
	return out
}

// Score sums every term for h.
func (s Scorer) Score(h *result.Hit) float64 {
	var total float64
	for _, t := range s.terms {
		total += t.Fn(h)
	}
	return total
}

// Rank annotates every hit with its score and sorts descending. Equal
// scores keep their input order.
func (s Scorer) Rank(hits []result.Hit) []result.Hit {
	out := make([]result.Hit, len(hits))
	copy(out, hits)
	for i := range out {
		v := s.Score(&out[i])
		out[i].RecommendationScore = &v
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].RecommendationScore > *out[j].RecommendationScore
	})
	return out
}
