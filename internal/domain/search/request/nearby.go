package request

import (
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/proximity"
)

// Nearby is a parsed nearest-neighbor lookup.
type Nearby struct {
	Descriptor plan.Descriptor
	Center     geo.Point
	Radius     float64
	Limit      int
}

// ParseNearby parses GET /api/restaurants/nearby. Both coordinates are required.
func ParseNearby(v params.Values, l Limits) (Nearby, error) {
	var errs domain.ValidationError
	for _, name := range []string{proximity.DefaultNames.Longitude, proximity.DefaultNames.Latitude} {
		if !v.Has(name) {
			errs.Add(name, "is required")
		}
	}
	near, _, err := proximity.Parse(v, proximity.DefaultNames, l.DefaultRadius)
	errs.Merge(err)
	limit, err := v.IntOr("limit", l.DefaultLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return Nearby{}, err
	}

	window, err := page.NewWindow(1, limit, l.MaxLimit)
	if err != nil {
		return Nearby{}, err
	}

	return Nearby{
		Descriptor: plan.NewDescriptor(
			plan.WithProximity(near),
			plan.WithSort(order.By(restaurant.FieldDistance, order.Asc)),
			plan.WithWindow(window),
		),
		Center: near.Center(),
		Radius: near.Radius(),
		Limit:  window.Limit(),
	}, nil
}
