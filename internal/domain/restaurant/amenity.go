package restaurant

import "strings"

// Amenity is a boolean feature that can be required by a query.
type Amenity string

// Amenities and payment methods.
const (
	Wheelchair     Amenity = "wheelchair"
	Parking        Amenity = "parking"
	Delivery       Amenity = "delivery"
	Takeout        Amenity = "takeout"
	Reservations   Amenity = "reservations"
	OutdoorSeating Amenity = "outdoor_seating"
	Wifi           Amenity = "wifi"
	PaymentCash    Amenity = "cash"
	PaymentCard    Amenity = "card"
	PaymentDigital Amenity = "digital"
)

var amenityFields = map[Amenity]string{
	Wheelchair:     FieldWheelchair,
	Parking:        FieldParking,
	Delivery:       FieldDelivery,
	Takeout:        FieldTakeout,
	Reservations:   FieldReservations,
	OutdoorSeating: FieldOutdoorSeating,
	Wifi:           FieldWifi,
	PaymentCash:    FieldPaymentCash,
	PaymentCard:    FieldPaymentCard,
	PaymentDigital: FieldPaymentDigital,
}

// ParseAmenity resolves a request token ("wifi", "outdoor", "wheelchair") to an Amenity.
// Store field names ("wifi_available") are accepted too.
func ParseAmenity(s string) (Amenity, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "outdoor":
		return OutdoorSeating, true
	case "reservation":
		return Reservations, true
	case "accessible", "accessibility":
		return Wheelchair, true
	}
	if _, ok := amenityFields[Amenity(key)]; ok {
		return Amenity(key), true
	}
	for a, field := range amenityFields {
		if field == key {
			return a, true
		}
	}
	return "", false
}

// Field returns the stored boolean field for the amenity.
func (a Amenity) Field() string {
	return amenityFields[a]
}

// IsPayment reports whether the amenity is a payment method.
func (a Amenity) IsPayment() bool {
	return a == PaymentCash || a == PaymentCard || a == PaymentDigital
}
