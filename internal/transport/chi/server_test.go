package chi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
)

func TestInfo(t *testing.T) {
	f := newFixture()
	rr, body := f.do(t, "GET", "/", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["message"] != "Restaurant Directory API" {
		t.Errorf("message: got %v", body["message"])
	}
	if eps, ok := body["endpoints"].([]any); !ok || len(eps) != len(endpoints) {
		t.Errorf("endpoints: got %v", body["endpoints"])
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		cacheErr   error
		wantCode   int
		wantStatus string
	}{
		{"all up", nil, nil, http.StatusOK, "ok"},
		{"cache down", nil, errors.New("dial"), http.StatusOK, "degraded"},
		{"database down", errors.New("dial"), nil, http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.db.err = tt.dbErr
			f.cache.err = tt.cacheErr

			rr, body := f.do(t, "GET", "/health", "")
			if rr.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", rr.Code, tt.wantCode)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status: got %v, want %s", body["status"], tt.wantStatus)
			}
			if body["timestamp"] != "2026-03-01T12:00:00Z" {
				t.Errorf("timestamp: got %v", body["timestamp"])
			}
		})
	}
}

func TestListRestaurants_Envelope(t *testing.T) {
	f := newFixture()
	f.search.searchFn = func(_ context.Context, _ plan.Plan) (result.Page, error) {
		return result.Page{Hits: []result.Hit{hit("A"), hit("B")}, Total: 25}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants?page=2&cuisine_type=Mexicana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	if body["success"] != true {
		t.Error("expected success=true")
	}
	if data := body["data"].([]any); len(data) != 2 {
		t.Errorf("data: got %d items", len(data))
	}

	pg := body["pagination"].(map[string]any)
	if pg["current_page"] != float64(2) || pg["total_pages"] != float64(3) || pg["total_restaurants"] != float64(25) {
		t.Errorf("pagination: got %v", pg)
	}
	if pg["has_next"] != true || pg["has_previous"] != true {
		t.Errorf("navigation flags: got %v", pg)
	}
	if _, ok := body["filters_applied"].(map[string]any)["cuisine_type"]; !ok {
		t.Errorf("filters_applied: got %v", body["filters_applied"])
	}
}

func TestListRestaurants_EmptyDataIsArray(t *testing.T) {
	f := newFixture()
	rr, body := f.do(t, "GET", "/api/restaurants", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("data: got %#v", body["data"])
	}
	if applied, ok := body["filters_applied"].(map[string]any); !ok || len(applied) != 0 {
		t.Errorf("filters_applied: want {}, got %#v", body["filters_applied"])
	}
}

func TestListRestaurants_HugePageRejected(t *testing.T) {
	f := newFixture()
	called := false
	f.search.searchFn = func(context.Context, plan.Plan) (result.Page, error) {
		called = true
		return result.Page{}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants?page=9223372036854775807&limit=10", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	if called {
		t.Error("store must not be reached with an out-of-range page")
	}
	if fields := detailFields(t, body); len(fields) != 1 || fields[0] != "page" {
		t.Errorf("details: got %v", fields)
	}
}

func TestListRestaurants_ValidationDetails(t *testing.T) {
	f := newFixture()
	called := false
	f.search.searchFn = func(context.Context, plan.Plan) (result.Page, error) {
		called = true
		return result.Page{}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants?page=abc&limit=ten", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if called {
		t.Error("store must not be reached on validation failure")
	}
	if body["success"] != false || body["error"] != "Validation failed" {
		t.Errorf("body: got %v", body)
	}
	fields := detailFields(t, body)
	for _, want := range []string{"page", "limit"} {
		if !slices.Contains(fields, want) {
			t.Errorf("details: missing %q in %v", want, fields)
		}
	}
}

func TestListRestaurants_StoreErrorIsOpaque(t *testing.T) {
	f := newFixture()
	f.search.searchFn = func(context.Context, plan.Plan) (result.Page, error) {
		return result.Page{}, errors.New("connection refused 10.0.0.3:27017")
	}

	rr, body := f.do(t, "GET", "/api/restaurants", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["error"] != "Failed to retrieve restaurants" || body["message"] != "internal error" {
		t.Errorf("body: got %v", body)
	}
}

func TestAdvancedSearch_Metadata(t *testing.T) {
	f := newFixture()
	f.search.searchFn = func(context.Context, plan.Plan) (result.Page, error) {
		return result.Page{Hits: []result.Hit{hit("Taquería")}, Total: 1}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants/search/advanced?q=tacos", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	meta := body["search_metadata"].(map[string]any)
	if meta["query"] != "tacos" || meta["strategy"] != "relevance" {
		t.Errorf("search_metadata: got %v", meta)
	}
	if _, ok := meta["plan"]; !ok {
		t.Error("search_metadata.plan missing")
	}
}

func TestAutocomplete_ShortQuery(t *testing.T) {
	f := newFixture()
	rr, body := f.do(t, "GET", "/api/restaurants/search/autocomplete?q=a", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !slices.Contains(detailFields(t, body), "q") {
		t.Errorf("details: got %v", body["details"])
	}
}

func TestAutocomplete_Buckets(t *testing.T) {
	f := newFixture()
	f.search.queryFn = func(context.Context, plan.Plan) ([]result.Hit, error) {
		return []result.Hit{{Restaurant: domrest.Restaurant{Name: "Tacos El Güero", CuisineType: "Mexicana"}}}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants/search/autocomplete?q=tac", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	data := body["data"].(map[string]any)
	if data["query"] != "tac" {
		t.Errorf("query: got %v", data["query"])
	}
	sug := data["suggestions"].(map[string]any)
	for _, bucket := range []string{"restaurants", "cuisines", "locations", "categories"} {
		if _, ok := sug[bucket].([]any); !ok {
			t.Errorf("bucket %s missing or not an array: %v", bucket, sug)
		}
	}
}

func TestRecommendations_Count(t *testing.T) {
	f := newFixture()
	f.search.queryFn = func(context.Context, plan.Plan) ([]result.Hit, error) {
		return []result.Hit{hit("A"), hit("B"), hit("C")}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants/recommendations?preferred_cuisines=Italiana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	if body["count"] != float64(len(body["data"].([]any))) {
		t.Errorf("count: got %v for %d hits", body["count"], len(body["data"].([]any)))
	}
	if _, ok := body["criteria"].(map[string]any); !ok {
		t.Errorf("criteria: got %v", body["criteria"])
	}
}

func TestByCategories_PathList(t *testing.T) {
	f := newFixture()
	var got plan.Plan
	f.search.searchFn = func(_ context.Context, p plan.Plan) (result.Page, error) {
		got = p
		return result.Page{}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants/categories/Tacos,%20Bar", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	if got.Describe() == nil {
		t.Error("expected a plan to reach the store")
	}
}

func TestStats(t *testing.T) {
	f := newFixture()
	f.search.statsFn = func(context.Context) (result.Stats, error) {
		return result.Stats{
			General:   result.General{TotalRestaurants: 42, AvgRating: 4.1},
			ByCuisine: []result.CuisineStat{{Cuisine: "Mexicana", Count: 12, AvgRating: 4.4}},
			ByCity:    []result.CityStat{{City: "Monterrey", Count: 20}},
		}, nil
	}

	rr, body := f.do(t, "GET", "/api/restaurants/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	general := body["data"].(map[string]any)["general"].(map[string]any)
	if general["total_restaurants"] != float64(42) {
		t.Errorf("general: got %v", general)
	}
}

func TestNearby(t *testing.T) {
	t.Run("coordinates required", func(t *testing.T) {
		f := newFixture()
		rr, body := f.do(t, "GET", "/api/restaurants/nearby", "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d", rr.Code)
		}
		fields := detailFields(t, body)
		if !slices.Contains(fields, "longitude") || !slices.Contains(fields, "latitude") {
			t.Errorf("details: got %v", fields)
		}
	})

	t.Run("search criteria echo", func(t *testing.T) {
		f := newFixture()
		rr, body := f.do(t, "GET", "/api/restaurants/nearby?longitude=-100.31&latitude=25.67&radius=2000", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d (%v)", rr.Code, body)
		}
		crit := body["search_criteria"].(map[string]any)
		center := crit["center"].([]any)
		if center[0] != -100.31 || center[1] != 25.67 {
			t.Errorf("center: got %v", center)
		}
		if crit["radius_meters"] != float64(2000) || crit["limit"] != float64(10) {
			t.Errorf("criteria: got %v", crit)
		}
	})
}

func TestGetRestaurant(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"found", nil, http.StatusOK, ""},
		{"missing", domain.NewNotFound(testID), http.StatusNotFound, "Restaurant not found"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "Invalid restaurant ID"},
		{"store down", domain.ErrStoreUnavailable, http.StatusInternalServerError, "Failed to retrieve restaurant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.restaurants.getFn = func(_ context.Context, id string) (domrest.Restaurant, error) {
				if tt.err != nil {
					return domrest.Restaurant{}, tt.err
				}
				return domrest.Restaurant{ID: id, Name: "Orinoco"}, nil
			}

			rr, body := f.do(t, "GET", "/api/restaurants/"+testID, "")
			if rr.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantErr != "" && body["error"] != tt.wantErr {
				t.Errorf("error: got %v, want %s", body["error"], tt.wantErr)
			}
		})
	}
}

func TestGetRestaurant_NotFoundCarriesID(t *testing.T) {
	f := newFixture()
	_, body := f.do(t, "GET", "/api/restaurants/"+testID, "")
	if body["message"] != "no restaurant found with ID: "+testID {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestCreateRestaurant(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture()
		rr, body := f.do(t, "POST", "/api/restaurants",
			`{"name":"Orinoco","category":["Taquería"],"cuisine_type":"Mexicana","city":"Monterrey","rating":4.5}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("status: got %d (%v)", rr.Code, body)
		}
		data := body["data"].(map[string]any)
		if data["id"] != testID || data["payment_cash"] != true {
			t.Errorf("data: got %v", data)
		}
		if body["message"] != "Restaurant created successfully" {
			t.Errorf("message: got %v", body["message"])
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture()
		rr, body := f.do(t, "POST", "/api/restaurants", `{"name":`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d", rr.Code)
		}
		if !slices.Contains(detailFields(t, body), "body") {
			t.Errorf("details: got %v", body["details"])
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		f := newFixture()
		rr, body := f.do(t, "POST", "/api/restaurants", `{"cuisine_type":"Klingon","rating":9}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d", rr.Code)
		}
		fields := detailFields(t, body)
		for _, want := range []string{"name", "category", "cuisine_type", "rating"} {
			if !slices.Contains(fields, want) {
				t.Errorf("details: missing %q in %v", want, fields)
			}
		}
	})
}

func TestUpdateRestaurant_MergesPartialPayload(t *testing.T) {
	f := newFixture()
	f.restaurants.getFn = func(_ context.Context, id string) (domrest.Restaurant, error) {
		return domrest.Restaurant{ID: id, Name: "Orinoco", Category: []string{"Taquería"}, CuisineType: "Mexicana", Rating: 4}, nil
	}
	var replaced domrest.Restaurant
	f.restaurants.replaceFn = func(_ context.Context, r domrest.Restaurant) error {
		replaced = r
		return nil
	}

	rr, body := f.do(t, "PUT", "/api/restaurants/"+testID, `{"rating":4.8}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%v)", rr.Code, body)
	}
	if replaced.Name != "Orinoco" || replaced.Rating != 4.8 {
		t.Errorf("replaced: got %+v", replaced)
	}
	if !replaced.UpdatedAt.Equal(fixedNow) {
		t.Errorf("updated_at: got %v", replaced.UpdatedAt)
	}
}

func TestDeleteRestaurant(t *testing.T) {
	f := newFixture()
	f.restaurants.deleteFn = func(_ context.Context, id string) (domrest.Restaurant, error) {
		return domrest.Restaurant{ID: id, Name: "Orinoco", City: "Monterrey"}, nil
	}

	rr, body := f.do(t, "DELETE", "/api/restaurants/"+testID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	data := body["data"].(map[string]any)
	if len(data) != 2 || data["id"] != testID || data["name"] != "Orinoco" {
		t.Errorf("data: got %v", data)
	}
}

func TestNotFoundRoute(t *testing.T) {
	f := newFixture()
	rr, body := f.do(t, "GET", "/api/menus", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["error"] != "Endpoint not found" || body["message"] != "Cannot GET /api/menus" {
		t.Errorf("body: got %v", body)
	}
}
