package request

import (
	"fmt"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/proximity"
	"github.com/kailas-cloud/restodex/internal/domain/search/score"
)

var recommendSteps = []filter.Step{
	filter.Amenities("must_have_amenities", false),
	filter.City("location_preference", restaurant.FieldCity),
}

// Criteria echoes what a recommendation was computed from.
type Criteria struct {
	PreferredCuisines []restaurant.Cuisine `json:"preferred_cuisines,omitempty"`
	BudgetMax         *float64             `json:"budget_max,omitempty"`
	MustHaveAmenities []string             `json:"must_have_amenities,omitempty"`
	Location          string               `json:"location_preference,omitempty"`
	Center            *[2]float64          `json:"center,omitempty"`
	RadiusMeters      float64              `json:"radius_meters,omitempty"`
	ScoreTerms        []string             `json:"score_terms"`
}

// Recommend is a parsed recommendation request.
type Recommend struct {
	Descriptor plan.Descriptor
	Criteria   Criteria
}

// ParseRecommend parses GET /api/restaurants/recommendations. Preferred
// cuisines and budget only affect the score; amenities and location filter.
func ParseRecommend(v params.Values, l Limits) (Recommend, error) {
	var errs domain.ValidationError

	var preferred []restaurant.Cuisine
	for _, raw := range v.List("preferred_cuisines") {
		c := restaurant.Cuisine(raw)
		if !c.IsValid() {
			errs.Add("preferred_cuisines", fmt.Sprintf("invalid cuisine type %q", raw))
			continue
		}
		preferred = append(preferred, c)
	}

	budget, err := v.FloatPtr("budget_max")
	errs.Merge(err)
	if budget != nil && *budget < 0 {
		errs.Add("budget_max", "must be greater than or equal to 0")
	}

	set, err := filter.Compile(v, recommendSteps...)
	errs.Merge(err)
	near, geo, err := proximity.Parse(v, proximity.DefaultNames, l.DefaultRadius)
	errs.Merge(err)
	limit, err := v.IntOr("limit", l.DefaultLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return Recommend{}, err
	}

	window, err := page.NewWindow(1, limit, l.MaxLimit)
	if err != nil {
		return Recommend{}, err
	}

	scorer := score.New(score.Criteria{PreferredCuisines: preferred, BudgetMax: budget, Geo: geo})
	opts := []plan.Option{
		plan.WithFilters(set),
		plan.WithScoring(scorer, l.MaxCandidates),
		plan.WithWindow(window),
	}

	crit := Criteria{
		PreferredCuisines: preferred,
		BudgetMax:         budget,
		MustHaveAmenities: v.List("must_have_amenities"),
		Location:          filter.CanonicalCity(v.Get("location_preference")),
		ScoreTerms:        scorer.Names(),
	}
	if geo {
		opts = append(opts, plan.WithProximity(near))
		c := near.Center().Coordinates()
		crit.Center = &c
		crit.RadiusMeters = near.Radius()
	}

	return Recommend{Descriptor: plan.NewDescriptor(opts...), Criteria: crit}, nil
}
