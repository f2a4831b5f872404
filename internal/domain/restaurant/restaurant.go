// Package restaurant defines the directory entity and its write-time rules.
package restaurant

import (
	"time"

	"github.com/kailas-cloud/restodex/internal/domain/geo"
)

// Field names shared by filters, sorting, projection and the store schema.
const (
	FieldID             = "_id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldCuisineType    = "cuisine_type"
	FieldTags           = "tags"
	FieldNeighborhood   = "neighborhood"
	FieldCity           = "city"
	FieldLocation       = "location"
	FieldPriceLevel     = "price_level"
	FieldAvgCost        = "avg_cost_per_person"
	FieldRating         = "rating"
	FieldTotalReviews   = "total_reviews"
	FieldCreatedAt      = "created_at"
	FieldUpdatedAt      = "updated_at"
	FieldVersion        = "__v"
	FieldDistance       = "distance"
	FieldTextScore      = "text_score"
	FieldRecommendScore = "recommendation_score"
	FieldPaymentCash    = "payment_cash"
	FieldPaymentCard    = "payment_card"
	FieldPaymentDigital = "payment_digital"
	FieldWheelchair     = "accessibility_wheelchair"
	FieldParking        = "accessibility_parking"
	FieldDelivery       = "delivery_available"
	FieldTakeout        = "takeout_available"
	FieldReservations   = "reservations_accepted"
	FieldOutdoorSeating = "outdoor_seating"
	FieldWifi           = "wifi_available"
)

// Hours is the opening window of a single weekday, "HH:MM" strings.
type Hours struct {
	Open  string `json:"open,omitempty" validate:"omitempty,datetime=15:04"`
	Close string `json:"close,omitempty" validate:"omitempty,datetime=15:04"`
}

// WeeklyHours holds per-weekday opening hours.
type WeeklyHours struct {
	Monday    Hours `json:"monday"`
	Tuesday   Hours `json:"tuesday"`
	Wednesday Hours `json:"wednesday"`
	Thursday  Hours `json:"thursday"`
	Friday    Hours `json:"friday"`
	Saturday  Hours `json:"saturday"`
	Sunday    Hours `json:"sunday"`
}

// Amenities is the fixed set of boolean features a restaurant advertises.
type Amenities struct {
	Wheelchair     bool `json:"accessibility_wheelchair"`
	Parking        bool `json:"accessibility_parking"`
	Delivery       bool `json:"delivery_available"`
	Takeout        bool `json:"takeout_available"`
	Reservations   bool `json:"reservations_accepted"`
	OutdoorSeating bool `json:"outdoor_seating"`
	Wifi           bool `json:"wifi_available"`
	PaymentCash    bool `json:"payment_cash"`
	PaymentCard    bool `json:"payment_card"`
	PaymentDigital bool `json:"payment_digital"`
}

// Has reports whether am is advertised.
func (a Amenities) Has(am Amenity) bool {
	switch am {
	case Wheelchair:
		return a.Wheelchair
	case Parking:
		return a.Parking
	case Delivery:
		return a.Delivery
	case Takeout:
		return a.Takeout
	case Reservations:
		return a.Reservations
	case OutdoorSeating:
		return a.OutdoorSeating
	case Wifi:
		return a.Wifi
	case PaymentCash:
		return a.PaymentCash
	case PaymentCard:
		return a.PaymentCard
	case PaymentDigital:
		return a.PaymentDigital
	default:
		return false
	}
}

// Restaurant is a directory entry. Owned by the store; the query engine only reads it.
type Restaurant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	Category    []string `json:"category" validate:"required,min=1,dive,required,max=60"`
	CuisineType Cuisine  `json:"cuisine_type" validate:"required,cuisine"`
	Tags        []string `json:"tags,omitempty" validate:"dive,required,max=40"`

	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Website   string `json:"website,omitempty" validate:"omitempty,http_url"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`

	Street       string   `json:"street,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Country      string   `json:"country,omitempty"`
	Zipcode      string   `json:"zipcode,omitempty"`
	FullAddress  string   `json:"full_address,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`

	PriceLevel       int     `json:"price_level,omitempty" validate:"omitempty,gte=1,lte=4"`
	AvgCostPerPerson float64 `json:"avg_cost_per_person" validate:"gte=0"`
	MinCost          float64 `json:"min_cost,omitempty" validate:"gte=0"`
	MaxCost          float64 `json:"max_cost,omitempty" validate:"gte=0"`

	Rating       float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	TotalReviews int     `json:"total_reviews" validate:"gte=0"`

	Amenities
	Hours WeeklyHours `json:"hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Point returns the restaurant location when both coordinates are set.
func (r *Restaurant) Point() (geo.Point, bool) {
	if r.Longitude == nil || r.Latitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Longitude: *r.Longitude, Latitude: *r.Latitude}, true
}

// Touch refreshes updated_at and sets created_at on first write.
func (r *Restaurant) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if now.Before(r.CreatedAt) {
		now = r.CreatedAt
	}
	r.UpdatedAt = now
}
