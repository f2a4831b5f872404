package text

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

func TestParseAutocomplete_Length(t *testing.T) {
	if _, err := ParseAutocomplete("q", "t"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("1 char: expected validation error, got %v", err)
	}
	if _, err := ParseAutocomplete("q", "  t  "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("padded 1 char: expected validation error, got %v", err)
	}
	if q, err := ParseAutocomplete("q", "ta"); err != nil || q != "ta" {
		t.Errorf("2 chars: got %q, %v", q, err)
	}
	if _, err := ParseAutocomplete("q", "ñu"); err != nil {
		t.Errorf("2 multibyte chars must be accepted: %v", err)
	}
}

func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		name  string
		r     restaurant.Restaurant
		tag   Tag
		value string
	}{
		{
			"name beats cuisine",
			restaurant.Restaurant{Name: "Mexicana Bistro", CuisineType: restaurant.Mexicana},
			TagRestaurant, "Mexicana Bistro",
		},
		{
			"cuisine beats location",
			restaurant.Restaurant{Name: "El Farolito", CuisineType: restaurant.Mexicana, City: "Nuevo Mexico"},
			TagCuisine, "Mexicana",
		},
		{
			"location beats category",
			restaurant.Restaurant{Name: "Pujol", CuisineType: restaurant.Gourmet, City: "Polanco", Category: []string{"Polanco classics"}},
			TagLocation, "Polanco",
		},
		{
			"category element-wise",
			restaurant.Restaurant{Name: "Contramar", CuisineType: restaurant.Mariscos, Category: []string{"Brunch", "Pescados"}},
			TagCategory, "Pescados",
		},
	}
	queries := map[string]string{
		"name beats cuisine":      "mexi",
		"cuisine beats location":  "mexic",
		"location beats category": "polan",
		"category element-wise":   "pesca",
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, value, ok := Classify(queries[tt.name], &tt.r)
			if !ok || tag != tt.tag || value != tt.value {
				t.Errorf("Classify = %v %q %v, want %v %q", tag, value, ok, tt.tag, tt.value)
			}
		})
	}
}

func TestGroup_SingleTagAndDedup(t *testing.T) {
	candidates := []restaurant.Restaurant{
		{Name: "Taquería Orinoco", CuisineType: restaurant.Mexicana, City: "Ciudad de México"},
		{Name: "taquería orinoco", CuisineType: restaurant.Mexicana, City: "Monterrey"},
		{Name: "El Huequito", CuisineType: restaurant.Mexicana, Category: []string{"Taquería"}},
		{Name: "Otro Lugar", CuisineType: restaurant.Mexicana, Category: []string{"taquería"}},
		{Name: "No Match", CuisineType: restaurant.Italiana},
	}

	got := Group("taquer", candidates, 5)

	if len(got.Restaurants) != 1 || got.Restaurants[0] != "Taquería Orinoco" {
		t.Errorf("Restaurants = %q", got.Restaurants)
	}
	if len(got.Categories) != 1 {
		t.Errorf("Categories = %q", got.Categories)
	}
	if len(got.Cuisines) != 0 || len(got.Locations) != 0 {
		t.Errorf("name matches must not spill into other buckets: %+v", got)
	}
}

func TestGroup_LimitPerBucket(t *testing.T) {
	candidates := []restaurant.Restaurant{
		{Name: "Sushi Uno"}, {Name: "Sushi Dos"}, {Name: "Sushi Tres"},
	}
	got := Group("sushi", candidates, 2)
	if len(got.Restaurants) != 2 {
		t.Errorf("expected cap of 2, got %q", got.Restaurants)
	}
	if got.Cuisines == nil {
		t.Error("empty buckets must be non-nil")
	}
}
