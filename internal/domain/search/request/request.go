// Package request turns raw endpoint parameters into query descriptors.
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

// Limits are the configured defaults and caps.
type Limits struct {
	DefaultLimit      int
	MaxLimit          int
	DefaultRadius     float64
	MaxCandidates     int
	AutocompleteLimit int
}

// DefaultLimits mirrors the configuration defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultLimit:      page.DefaultLimit,
		MaxLimit:          page.MaxLimit,
		DefaultRadius:     proximity.DefaultRadiusMeters,
		MaxCandidates:     500,
		AutocompleteLimit: 5,
	}
}

// listSteps is the filter vocabulary of the list endpoint.
var listSteps = []filter.Step{
	filter.Membership("cuisine_type", restaurant.FieldCuisineType, filter.ParseCuisine),
	filter.Membership("category", restaurant.FieldCategory, filter.ParseText),
	filter.Membership("price_level", restaurant.FieldPriceLevel, filter.ParsePriceLevel),
	filter.City("city", restaurant.FieldCity),
	filter.Substring("neighborhood", restaurant.FieldNeighborhood),
	filter.Range("min_rating", "max_rating", restaurant.FieldRating),
	filter.Range("min_price", "max_price", restaurant.FieldAvgCost),
	filter.Flag("delivery", restaurant.Delivery),
	filter.Flag("takeout", restaurant.Takeout),
	filter.Flag("wifi", restaurant.Wifi),
	filter.Flag("outdoor_seating", restaurant.OutdoorSeating),
	filter.Flag("outdoor", restaurant.OutdoorSeating),
	filter.Flag("wheelchair", restaurant.Wheelchair),
	filter.Flag("parking", restaurant.Parking),
	filter.Flag("reservations", restaurant.Reservations),
	filter.Amenities("payment_methods", true),
}

// List parses GET /api/restaurants.
func List(v params.Values, l Limits) (plan.Descriptor, error) {
	var errs domain.ValidationError

	set, err := filter.Compile(v, listSteps...)
	errs.Merge(err)
	near, geo, err := proximity.Parse(v, proximity.DefaultNames, l.DefaultRadius)
	errs.Merge(err)
	window, err := page.Parse(v, l.DefaultLimit, l.MaxLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return plan.Descriptor{}, err
	}

	search := text.Parse(v.Get("search"))
	opts := []plan.Option{
		plan.WithFilters(set),
		plan.WithText(search),
		plan.WithWindow(window),
		plan.WithSort(order.Resolve(v.Get("sort_by"), v.Get("sort_order"), plan.SortAvailability(search, geo))),
	}
	if geo {
		opts = append(opts, plan.WithProximity(near))
	}
	return plan.NewDescriptor(opts...), nil
}

// Categories parses GET /api/restaurants/categories/{categories}.
func Categories(categories []string, v params.Values, l Limits) (plan.Descriptor, error) {
	var errs domain.ValidationError
	if len(categories) == 0 {
		errs.Add("categories", "at least one category is required")
	}
	window, err := page.Parse(v, l.DefaultLimit, l.MaxLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return plan.Descriptor{}, err
	}

	vals := make([]any, len(categories))
	for i, c := range categories {
		vals[i] = c
	}
	set, err := filter.Compile(v, filter.Fixed(filter.In(restaurant.FieldCategory, vals...)))
	if err != nil {
		return plan.Descriptor{}, err
	}

	sortBy := v.Get("sort_by")
	if sortBy == "" {
		sortBy = "rating"
	}
	return plan.NewDescriptor(
		plan.WithFilters(set),
		plan.WithWindow(window),
		plan.WithSort(order.Resolve(sortBy, v.Get("sort_order"), order.Availability{})),
	), nil
}
