package restaurant

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/restodex/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func validPayload() Payload {
	return Payload{
		Name:         ptr("  La Casa de Toño "),
		Category:     ptr([]string{"Antojitos"}),
		CuisineType:  ptr("Mexicana"),
		City:         ptr("Ciudad de México"),
		Neighborhood: ptr("Roma Norte"),
		Longitude:    ptr(-99.1625),
		Latitude:     ptr(19.4188),
		PriceLevel:   ptr(2),
		Rating:       ptr(4.5),
		Phone:        ptr("+52 (55) 1234-5678"),
	}
}

func TestPayload_NewRestaurantDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := validPayload()

	r := p.NewRestaurant(now)

	if r.Name != "La Casa de Toño" {
		t.Errorf("expected trimmed name, got %q", r.Name)
	}
	if !r.PaymentCash || !r.PaymentCard {
		t.Error("expected cash and card to default to true")
	}
	if r.PaymentDigital {
		t.Error("expected digital payment to default to false")
	}
	if r.TotalReviews != 0 {
		t.Errorf("expected total_reviews 0, got %d", r.TotalReviews)
	}
	if !r.CreatedAt.Equal(now) || !r.UpdatedAt.Equal(now) {
		t.Errorf("expected timestamps at %v, got %v / %v", now, r.CreatedAt, r.UpdatedAt)
	}
	if err := NewValidator().Validate(&r); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestPayload_NewRestaurantExplicitPaymentOverridesDefault(t *testing.T) {
	p := validPayload()
	p.PaymentCash = ptr(false)

	r := p.NewRestaurant(time.Now())
	if r.PaymentCash {
		t.Error("expected explicit payment_cash=false to win over default")
	}
}

func TestPayload_ApplyToMergesOnlySuppliedFields(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := validPayload()
	r := base.NewRestaurant(created)
	r.ID = "65f0a1b2c3d4e5f6a7b8c9d0"

	patch := Payload{
		Rating: ptr(3.9),
		Hours:  &WeeklyHoursPayload{Monday: &HoursPayload{Open: ptr("09:00")}},
	}
	patch.ApplyTo(&r)
	r.Touch(created.Add(time.Hour))

	if r.Rating != 3.9 {
		t.Errorf("expected rating 3.9, got %v", r.Rating)
	}
	if r.Name != "La Casa de Toño" || r.CuisineType != Mexicana {
		t.Errorf("unsupplied fields changed: %+v", r)
	}
	if r.Hours.Monday.Open != "09:00" || r.Hours.Monday.Close != "" {
		t.Errorf("unexpected hours: %+v", r.Hours.Monday)
	}
	if !r.CreatedAt.Equal(created) {
		t.Errorf("created_at must not change, got %v", r.CreatedAt)
	}
	if !r.UpdatedAt.After(r.CreatedAt) {
		t.Errorf("updated_at must advance, got %v", r.UpdatedAt)
	}
}

func TestTouch_NeverMovesUpdatedBeforeCreated(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := Restaurant{CreatedAt: created}

	r.Touch(created.Add(-time.Minute))

	if r.UpdatedAt.Before(r.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", r.UpdatedAt, r.CreatedAt)
	}
}

func TestRestaurant_Point(t *testing.T) {
	r := Restaurant{Longitude: ptr(-99.13)}
	if _, ok := r.Point(); ok {
		t.Error("expected no point with a single coordinate")
	}

	r.Latitude = ptr(19.43)
	p, ok := r.Point()
	if !ok || p.Longitude != -99.13 || p.Latitude != 19.43 {
		t.Errorf("unexpected point %+v ok=%v", p, ok)
	}
}

func TestValidator_Rejections(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(*Restaurant)
		field  string
	}{
		{"missing name", func(r *Restaurant) { r.Name = "" }, "name"},
		{"no categories", func(r *Restaurant) { r.Category = nil }, "category"},
		{"empty categories", func(r *Restaurant) { r.Category = []string{} }, "category"},
		{"blank category", func(r *Restaurant) { r.Category = []string{""} }, "category[0]"},
		{"long name", func(r *Restaurant) { r.Name = string(make([]byte, 101)) }, "name"},
		{"unknown cuisine", func(r *Restaurant) { r.CuisineType = "Marciana" }, "cuisine_type"},
		{"bad phone", func(r *Restaurant) { r.Phone = "call me" }, "phone"},
		{"bad email", func(r *Restaurant) { r.Email = "nope" }, "email"},
		{"price level", func(r *Restaurant) { r.PriceLevel = 5 }, "price_level"},
		{"rating above range", func(r *Restaurant) { r.Rating = 5.5 }, "rating"},
		{"negative cost", func(r *Restaurant) { r.AvgCostPerPerson = -1 }, "avg_cost_per_person"},
		{"latitude range", func(r *Restaurant) { r.Latitude = ptr(91.0) }, "latitude"},
		{"lone longitude", func(r *Restaurant) { r.Latitude = nil }, "latitude"},
		{"bad hours", func(r *Restaurant) { r.Hours.Friday.Close = "25:99" }, "hours.friday.close"},
		{"min above max cost", func(r *Restaurant) { r.MinCost, r.MaxCost = 500, 100 }, "min_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			r := p.NewRestaurant(time.Now())
			tt.mutate(&r)

			err := v.Validate(&r)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *domain.ValidationError, got %T", err)
			}
			found := false
			for _, f := range ve.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in %+v", tt.field, ve.Fields)
			}
		})
	}
}

func TestParseAmenity(t *testing.T) {
	tests := []struct {
		in   string
		want Amenity
		ok   bool
	}{
		{"wifi", Wifi, true},
		{" WiFi ", Wifi, true},
		{"outdoor", OutdoorSeating, true},
		{"wifi_available", Wifi, true},
		{"accessible", Wheelchair, true},
		{"card", PaymentCard, true},
		{"jacuzzi", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAmenity(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAmenity(%q) = %q,%v; want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAmenities_Has(t *testing.T) {
	a := Amenities{Wifi: true, PaymentDigital: true}
	if !a.Has(Wifi) || !a.Has(PaymentDigital) {
		t.Error("expected wifi and digital")
	}
	if a.Has(Parking) || a.Has(Amenity("unknown")) {
		t.Error("unexpected amenity reported")
	}
	if Wifi.Field() != FieldWifi || !PaymentCard.IsPayment() || Wifi.IsPayment() {
		t.Error("unexpected amenity metadata")
	}
}

func TestCuisine_IsValid(t *testing.T) {
	if !Cafe.IsValid() || !Cuisine("Internacional").IsValid() {
		t.Error("expected valid cuisines")
	}
	if Cuisine("mexicana").IsValid() {
		t.Error("cuisine matching must be exact")
	}
	c := Cuisines()
	c[0] = "mutated"
	if Cuisines()[0] != Mexicana {
		t.Error("Cuisines must return a copy")
	}
}
