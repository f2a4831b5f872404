package restaurant

import (
	"strings"
	"time"
)

// HoursPayload is a partial weekday window.
type HoursPayload struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

// WeeklyHoursPayload is a partial weekly schedule.
type WeeklyHoursPayload struct {
	Monday    *HoursPayload `json:"monday"`
	Tuesday   *HoursPayload `json:"tuesday"`
	Wednesday *HoursPayload `json:"wednesday"`
	Thursday  *HoursPayload `json:"thursday"`
	Friday    *HoursPayload `json:"friday"`
	Saturday  *HoursPayload `json:"saturday"`
	Sunday    *HoursPayload `json:"sunday"`
}

// Payload is a full or partial restaurant body. Nil fields are "not supplied".
type Payload struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *[]string `json:"category"`
	CuisineType *string   `json:"cuisine_type"`
	Tags        *[]string `json:"tags"`

	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`

	Street       *string  `json:"street"`
	Neighborhood *string  `json:"neighborhood"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Country      *string  `json:"country"`
	Zipcode      *string  `json:"zipcode"`
	FullAddress  *string  `json:"full_address"`
	Longitude    *float64 `json:"longitude"`
	Latitude     *float64 `json:"latitude"`

	PriceLevel       *int     `json:"price_level"`
	AvgCostPerPerson *float64 `json:"avg_cost_per_person"`
	MinCost          *float64 `json:"min_cost"`
	MaxCost          *float64 `json:"max_cost"`

	Rating       *float64 `json:"rating"`
	TotalReviews *int     `json:"total_reviews"`

	Wheelchair     *bool `json:"accessibility_wheelchair"`
	Parking        *bool `json:"accessibility_parking"`
	Delivery       *bool `json:"delivery_available"`
	Takeout        *bool `json:"takeout_available"`
	Reservations   *bool `json:"reservations_accepted"`
	OutdoorSeating *bool `json:"outdoor_seating"`
	Wifi           *bool `json:"wifi_available"`
	PaymentCash    *bool `json:"payment_cash"`
	PaymentCard    *bool `json:"payment_card"`
	PaymentDigital *bool `json:"payment_digital"`

	Hours *WeeklyHoursPayload `json:"hours"`
}

// NewRestaurant builds a record from a create payload, applying write defaults.
// The result still has to pass Validator.Validate.
func (p *Payload) NewRestaurant(now time.Time) Restaurant {
	r := Restaurant{
		Amenities: Amenities{PaymentCash: true, PaymentCard: true},
	}
	p.ApplyTo(&r)
	r.Touch(now)
	return r
}

// ApplyTo merges supplied fields onto r. Absent fields are left untouched.
func (p *Payload) ApplyTo(r *Restaurant) {
	setString(&r.Name, p.Name)
	setString(&r.Description, p.Description)
	if p.Category != nil {
		r.Category = trimAll(*p.Category)
	}
	if p.CuisineType != nil {
		r.CuisineType = Cuisine(strings.TrimSpace(*p.CuisineType))
	}
	if p.Tags != nil {
		r.Tags = trimAll(*p.Tags)
	}

	setString(&r.Phone, p.Phone)
	setString(&r.Email, p.Email)
	setString(&r.Website, p.Website)
	setString(&r.Facebook, p.Facebook)
	setString(&r.Instagram, p.Instagram)

	setString(&r.Street, p.Street)
	setString(&r.Neighborhood, p.Neighborhood)
	setString(&r.City, p.City)
	setString(&r.State, p.State)
	setString(&r.Country, p.Country)
	setString(&r.Zipcode, p.Zipcode)
	setString(&r.FullAddress, p.FullAddress)
	if p.Longitude != nil {
		v := *p.Longitude
		r.Longitude = &v
	}
	if p.Latitude != nil {
		v := *p.Latitude
		r.Latitude = &v
	}

	setValue(&r.PriceLevel, p.PriceLevel)
	setValue(&r.AvgCostPerPerson, p.AvgCostPerPerson)
	setValue(&r.MinCost, p.MinCost)
	setValue(&r.MaxCost, p.MaxCost)
	setValue(&r.Rating, p.Rating)
	setValue(&r.TotalReviews, p.TotalReviews)

	setValue(&r.Wheelchair, p.Wheelchair)
	setValue(&r.Parking, p.Parking)
	setValue(&r.Delivery, p.Delivery)
	setValue(&r.Takeout, p.Takeout)
	setValue(&r.Reservations, p.Reservations)
	setValue(&r.OutdoorSeating, p.OutdoorSeating)
	setValue(&r.Wifi, p.Wifi)
	setValue(&r.PaymentCash, p.PaymentCash)
	setValue(&r.PaymentCard, p.PaymentCard)
	setValue(&r.PaymentDigital, p.PaymentDigital)

	if p.Hours != nil {
		applyHours(&r.Hours.Monday, p.Hours.Monday)
		applyHours(&r.Hours.Tuesday, p.Hours.Tuesday)
		applyHours(&r.Hours.Wednesday, p.Hours.Wednesday)
		applyHours(&r.Hours.Thursday, p.Hours.Thursday)
		applyHours(&r.Hours.Friday, p.Hours.Friday)
		applyHours(&r.Hours.Saturday, p.Hours.Saturday)
		applyHours(&r.Hours.Sunday, p.Hours.Sunday)
	}
}

func applyHours(dst *Hours, src *HoursPayload) {
	if src == nil {
		return
	}
	setString(&dst.Open, src.Open)
	setString(&dst.Close, src.Close)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
