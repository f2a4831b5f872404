package restaurant

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

const geoJSONPoint = "Point"

// pointDoc is a GeoJSON point: coordinates are [longitude, latitude].
type pointDoc struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// document is the stored shape of a restaurant.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Category    []string           `bson:"category"`
	CuisineType string             `bson:"cuisine_type"`
	Tags        []string           `bson:"tags,omitempty"`

	Phone     string `bson:"phone,omitempty"`
	Email     string `bson:"email,omitempty"`
	Website   string `bson:"website,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty"`

	Street       string    `bson:"street,omitempty"`
	Neighborhood string    `bson:"neighborhood,omitempty"`
	City         string    `bson:"city,omitempty"`
	State        string    `bson:"state,omitempty"`
	Country      string    `bson:"country,omitempty"`
	Zipcode      string    `bson:"zipcode,omitempty"`
	FullAddress  string    `bson:"full_address,omitempty"`
	Longitude    *float64  `bson:"longitude,omitempty"`
	Latitude     *float64  `bson:"latitude,omitempty"`
	Location     *pointDoc `bson:"location,omitempty"`

	PriceLevel       int     `bson:"price_level,omitempty"`
	AvgCostPerPerson float64 `bson:"avg_cost_per_person"`
	MinCost          float64 `bson:"min_cost,omitempty"`
	MaxCost          float64 `bson:"max_cost,omitempty"`

	Rating       float64 `bson:"rating,omitempty"`
	TotalReviews int     `bson:"total_reviews"`

	Wheelchair     bool `bson:"accessibility_wheelchair"`
	Parking        bool `bson:"accessibility_parking"`
	Delivery       bool `bson:"delivery_available"`
	Takeout        bool `bson:"takeout_available"`
	Reservations   bool `bson:"reservations_accepted"`
	OutdoorSeating bool `bson:"outdoor_seating"`
	Wifi           bool `bson:"wifi_available"`
	PaymentCash    bool `bson:"payment_cash"`
	PaymentCard    bool `bson:"payment_card"`
	PaymentDigital bool `bson:"payment_digital"`

	Hours domrest.WeeklyHours `bson:"hours"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`

	// Computed by the query, never stored.
	Distance  *float64 `bson:"distance,omitempty"`
	TextScore *float64 `bson:"text_score,omitempty"`
}

func fromDomain(r *domrest.Restaurant) (document, error) {
	doc := document{
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		CuisineType:      string(r.CuisineType),
		Tags:             r.Tags,
		Phone:            r.Phone,
		Email:            r.Email,
		Website:          r.Website,
		Facebook:         r.Facebook,
		Instagram:        r.Instagram,
		Street:           r.Street,
		Neighborhood:     r.Neighborhood,
		City:             r.City,
		State:            r.State,
		Country:          r.Country,
		Zipcode:          r.Zipcode,
		FullAddress:      r.FullAddress,
		Longitude:        r.Longitude,
		Latitude:         r.Latitude,
		PriceLevel:       r.PriceLevel,
		AvgCostPerPerson: r.AvgCostPerPerson,
		MinCost:          r.MinCost,
		MaxCost:          r.MaxCost,
		Rating:           r.Rating,
		TotalReviews:     r.TotalReviews,
		Wheelchair:       r.Wheelchair,
		Parking:          r.Parking,
		Delivery:         r.Delivery,
		Takeout:          r.Takeout,
		Reservations:     r.Reservations,
		OutdoorSeating:   r.OutdoorSeating,
		Wifi:             r.Wifi,
		PaymentCash:      r.PaymentCash,
		PaymentCard:      r.PaymentCard,
		PaymentDigital:   r.PaymentDigital,
		Hours:            r.Hours,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
	if doc.Category == nil {
		doc.Category = []string{}
	}

	if p, ok := r.Point(); ok {
		c := p.Coordinates()
		doc.Location = &pointDoc{Type: geoJSONPoint, Coordinates: c[:]}
	}

	if r.ID != "" {
		oid, err := primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return document{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *document) toDomain() domrest.Restaurant {
	r := domrest.Restaurant{
		Name:             d.Name,
		Description:      d.Description,
		Category:         d.Category,
		CuisineType:      domrest.Cuisine(d.CuisineType),
		Tags:             d.Tags,
		Phone:            d.Phone,
		Email:            d.Email,
		Website:          d.Website,
		Facebook:         d.Facebook,
		Instagram:        d.Instagram,
		Street:           d.Street,
		Neighborhood:     d.Neighborhood,
		City:             d.City,
		State:            d.State,
		Country:          d.Country,
		Zipcode:          d.Zipcode,
		FullAddress:      d.FullAddress,
		Longitude:        d.Longitude,
		Latitude:         d.Latitude,
		PriceLevel:       d.PriceLevel,
		AvgCostPerPerson: d.AvgCostPerPerson,
		MinCost:          d.MinCost,
		MaxCost:          d.MaxCost,
		Rating:           d.Rating,
		TotalReviews:     d.TotalReviews,
		Amenities: domrest.Amenities{
			Wheelchair:     d.Wheelchair,
			Parking:        d.Parking,
			Delivery:       d.Delivery,
			Takeout:        d.Takeout,
			Reservations:   d.Reservations,
			OutdoorSeating: d.OutdoorSeating,
			Wifi:           d.Wifi,
			PaymentCash:    d.PaymentCash,
			PaymentCard:    d.PaymentCard,
			PaymentDigital: d.PaymentDigital,
		},
		Hours:     d.Hours,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if !d.ID.IsZero() {
		r.ID = d.ID.Hex()
	}
	if r.Category == nil {
		r.Category = []string{}
	}

	// Older records carry only the GeoJSON point.
	if (r.Longitude == nil || r.Latitude == nil) && d.Location != nil && len(d.Location.Coordinates) == 2 {
		lon, lat := d.Location.Coordinates[0], d.Location.Coordinates[1]
		r.Longitude, r.Latitude = &lon, &lat
	}
	return r
}

func (d *document) toHit() result.Hit {
	return result.Hit{
		Restaurant: d.toDomain(),
		Distance:   d.Distance,
		TextScore:  d.TextScore,
	}
}
