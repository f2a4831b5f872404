package request

import (
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/proximity"
	"github.com/kailas-cloud/restodex/internal/domain/search/text"
)

var advancedSteps = []filter.Step{
	filter.Membership("cuisine_types", restaurant.FieldCuisineType, filter.ParseCuisine),
	filter.LevelRange("price_range", restaurant.FieldPriceLevel),
	filter.Amenities("amenities", false),
	filter.Range("rating_min", "", restaurant.FieldRating),
}

var advancedNames = proximity.Names{Longitude: "longitude", Latitude: "latitude", Radius: "location_radius"}

// Advanced is a parsed advanced search.
type Advanced struct {
	Descriptor         plan.Descriptor
	Query              string
	IncludeSuggestions bool
}

// ParseAdvanced parses GET /api/restaurants/search/advanced. Without an
// explicit sort_by, results rank by relevance, then distance, then rating,
// whichever the query can provide first.
func ParseAdvanced(v params.Values, l Limits) (Advanced, error) {
	var errs domain.ValidationError

	set, err := filter.Compile(v, advancedSteps...)
	errs.Merge(err)
	near, geo, err := proximity.Parse(v, advancedNames, l.DefaultRadius)
	errs.Merge(err)
	window, err := page.Parse(v, l.DefaultLimit, l.MaxLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return Advanced{}, err
	}

	search := text.Parse(v.Get("q"))
	avail := plan.SortAvailability(search, geo)

	sortBy := v.Get("sort_by")
	if sortBy == "" {
		switch {
		case avail.Relevance:
			sortBy = "relevance"
		case avail.Distance:
			sortBy = "distance"
		default:
			sortBy = "rating"
		}
	}

	opts := []plan.Option{
		plan.WithFilters(set),
		plan.WithText(search),
		plan.WithWindow(window),
		plan.WithSort(order.Resolve(sortBy, v.Get("sort_order"), avail)),
	}
	if geo {
		opts = append(opts, plan.WithProximity(near))
	}

	return Advanced{
		Descriptor:         plan.NewDescriptor(opts...),
		Query:              search.Raw(),
		IncludeSuggestions: v.Flag("include_suggestions"),
	}, nil
}
