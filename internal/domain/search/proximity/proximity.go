// Package proximity builds the nearest-neighbor stage of a query.
package proximity

import (
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
)

// DefaultRadiusMeters applies when the caller does not override the radius.
const DefaultRadiusMeters = 5000

// Stage is an active proximity search: center plus maximum distance in meters.
type Stage struct {
	center geo.Point
	radius float64
}

// New validates center and radius.
func New(center geo.Point, radius float64) (Stage, error) {
	if !geo.ValidateCoordinates(center.Latitude, center.Longitude) {
		return Stage{}, domain.NewValidationError("coordinates", "longitude must be within [-180,180] and latitude within [-90,90]")
	}
	if radius <= 0 {
		return Stage{}, domain.NewValidationError("radius", "must be a positive number")
	}
	return Stage{center: center, radius: radius}, nil
}

// Names are the parameter names a proximity stage is read from.
type Names struct {
	Longitude string
	Latitude  string
	Radius    string
}

// DefaultNames is the list/advanced/nearby vocabulary.
var DefaultNames = Names{Longitude: "longitude", Latitude: "latitude", Radius: "radius"}

// Parse activates the stage only when both coordinates are present. Present
// but non-numeric coordinates or radius are validation errors; a radius
// without coordinates is ignored.
func Parse(v params.Values, n Names, defaultRadius float64) (Stage, bool, error) {
	var errs domain.ValidationError

	lon, hasLon, err := v.Float(n.Longitude)
	errs.Merge(err)
	lat, hasLat, err := v.Float(n.Latitude)
	errs.Merge(err)
	radius, hasRadius, err := v.Float(n.Radius)
	errs.Merge(err)

	if err := errs.OrNil(); err != nil {
		return Stage{}, false, err
	}
	if !hasLon || !hasLat {
		return Stage{}, false, nil
	}
	if !hasRadius {
		radius = defaultRadius
	}
	if radius <= 0 {
		return Stage{}, false, domain.NewValidationError(n.Radius, "must be a positive number")
	}

	center, err := geo.NewPoint(lon, lat)
	if err != nil {
		return Stage{}, false, domain.NewValidationError("coordinates", err.Error())
	}
	return Stage{center: center, radius: radius}, true, nil
}

// Center returns the search origin.
func (s Stage) Center() geo.Point { return s.center }

// Radius returns the maximum distance in meters.
func (s Stage) Radius() float64 { return s.radius }

// Distance returns the great-circle distance from the center to p in meters.
func (s Stage) Distance(p geo.Point) float64 { return s.center.DistanceTo(p) }

// Contains reports whether a distance lies within the radius.
func (s Stage) Contains(distance float64) bool {
	return distance >= 0 && distance <= s.radius
}
