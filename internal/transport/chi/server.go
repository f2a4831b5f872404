package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/restodex/internal/usecase/restaurant"
	searchuc "github.com/kailas-cloud/restodex/internal/usecase/search"
	"github.com/kailas-cloud/restodex/internal/version"
)

// maxBodyBytes caps create and update payloads.
const maxBodyBytes = 10 << 20

// Server serves the restaurant directory API.
type Server struct {
	restaurants   *restaurantuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
	now           func() time.Time
}

// NewServer creates an HTTP API server.
func NewServer(
	restaurants *restaurantuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		restaurants:   restaurants,
		search:        search,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
		now:           time.Now,
	}
}

// Routes registers every endpoint on r. Static segments are registered
// alongside {id}; chi prefers them over the wildcard.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Info)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/restaurants", func(r chi.Router) {
		r.Get("/", s.ListRestaurants)
		r.Post("/", s.CreateRestaurant)
		r.Get("/search/advanced", s.AdvancedSearch)
		r.Get("/search/autocomplete", s.Autocomplete)
		r.Get("/recommendations", s.Recommendations)
		r.Get("/categories/{categories}", s.ByCategories)
		r.Get("/stats", s.Stats)
		r.Get("/nearby", s.Nearby)
		r.Get("/{id}", s.GetRestaurant)
		r.Put("/{id}", s.UpdateRestaurant)
		r.Delete("/{id}", s.DeleteRestaurant)
	})

	r.NotFound(s.NotFound)
	r.MethodNotAllowed(s.MethodNotAllowed)
}

var endpoints = []string{
	"GET /",
	"GET /health",
	"GET /metrics",
	"GET /api/restaurants",
	"POST /api/restaurants",
	"GET /api/restaurants/search/advanced",
	"GET /api/restaurants/search/autocomplete",
	"GET /api/restaurants/recommendations",
	"GET /api/restaurants/categories/{categories}",
	"GET /api/restaurants/stats",
	"GET /api/restaurants/nearby",
	"GET /api/restaurants/{id}",
	"PUT /api/restaurants/{id}",
	"DELETE /api/restaurants/{id}",
}

// Info handles GET /.
func (s *Server) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Restaurant Directory API",
		"status":    "active",
		"version":   version.Current(),
		"endpoints": endpoints,
	})
}

// HealthCheck handles GET /health. Only a failing document store yields 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    report.Status,
		"checks":    report.Checks,
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// NotFound answers unknown routes with the endpoint list.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success":             false,
		"error":               "Endpoint not found",
		"message":             "Cannot " + r.Method + " " + r.URL.Path,
		"available_endpoints": endpoints,
	})
}

// MethodNotAllowed answers known routes hit with an unsupported method.
func (s *Server) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "Cannot "+r.Method+" "+r.URL.Path)
}

// ListRestaurants handles GET /api/restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	listing, err := s.search.List(r.Context(), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve restaurants")
		return
	}
	writeData(w, http.StatusOK, listingEnvelope(listing))
}

// AdvancedSearch handles GET /api/restaurants/search/advanced.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Advanced(r.Context(), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to perform advanced search")
		return
	}

	env := listingEnvelope(res.Listing)
	env.SearchMetadata = map[string]any{
		"query":    res.Query,
		"strategy": res.Strategy,
		"plan":     res.Plan,
	}
	env.Suggestions = res.Suggestions
	writeData(w, http.StatusOK, env)
}

// Autocomplete handles GET /api/restaurants/search/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Autocomplete(r.Context(), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to get autocomplete suggestions")
		return
	}
	writeData(w, http.StatusOK, envelope{
		Data: map[string]any{
			"query":       res.Query,
			"suggestions": res.Suggestions,
		},
	})
}

// Recommendations handles GET /api/restaurants/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Recommend(r.Context(), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to get recommendations")
		return
	}
	count := len(res.Hits)
	writeData(w, http.StatusOK, envelope{
		Data:           hitsOrEmpty(res.Hits),
		Count:          &count,
		Criteria:       res.Criteria,
		SearchMetadata: map[string]any{"plan": res.Plan},
	})
}

// ByCategories handles GET /api/restaurants/categories/{categories}.
func (s *Server) ByCategories(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if err := bindPath(r, "categories", &categories); err != nil {
		s.handleError(w, r, err, "Failed to retrieve restaurants by categories")
		return
	}

	listing, err := s.search.ByCategories(r.Context(), compact(categories), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve restaurants by categories")
		return
	}
	writeData(w, http.StatusOK, listingEnvelope(listing))
}

// Stats handles GET /api/restaurants/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.search.Stats(r.Context())
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve statistics")
		return
	}
	writeData(w, http.StatusOK, envelope{Data: stats})
}

// Nearby handles GET /api/restaurants/nearby.
func (s *Server) Nearby(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Nearby(r.Context(), queryValues(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve nearby restaurants")
		return
	}
	writeData(w, http.StatusOK, envelope{
		Data: hitsOrEmpty(res.Hits),
		SearchCriteria: map[string]any{
			"center":        [2]float64{res.Center.Longitude, res.Center.Latitude},
			"radius_meters": res.Radius,
			"limit":         res.Limit,
		},
	})
}

// GetRestaurant handles GET /api/restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err, "Failed to retrieve restaurant")
		return
	}

	rest, err := s.restaurants.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve restaurant")
		return
	}
	writeData(w, http.StatusOK, envelope{Data: rest})
}

// CreateRestaurant handles POST /api/restaurants.
func (s *Server) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		s.handleError(w, r, err, "Failed to create restaurant")
		return
	}

	created, err := s.restaurants.Create(r.Context(), p)
	if err != nil {
		s.handleError(w, r, err, "Failed to create restaurant")
		return
	}
	writeData(w, http.StatusCreated, envelope{Message: "Restaurant created successfully", Data: created})
}

// UpdateRestaurant handles PUT /api/restaurants/{id}.
func (s *Server) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err, "Failed to update restaurant")
		return
	}
	p, err := decodePayload(w, r)
	if err != nil {
		s.handleError(w, r, err, "Failed to update restaurant")
		return
	}

	updated, err := s.restaurants.Update(r.Context(), id, p)
	if err != nil {
		s.handleError(w, r, err, "Failed to update restaurant")
		return
	}
	writeData(w, http.StatusOK, envelope{Message: "Restaurant updated successfully", Data: updated})
}

// DeleteRestaurant handles DELETE /api/restaurants/{id}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleError(w, r, err, "Failed to delete restaurant")
		return
	}

	deleted, err := s.restaurants.Delete(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err, "Failed to delete restaurant")
		return
	}
	writeData(w, http.StatusOK, envelope{
		Message: "Restaurant deleted successfully",
		Data:    map[string]string{"id": deleted.ID, "name": deleted.Name},
	})
}

// listingEnvelope always reports filters_applied, as {} when nothing matched.
func listingEnvelope(l searchuc.Listing) envelope {
	applied := l.Applied
	if applied == nil {
		applied = map[string]any{}
	}
	return envelope{
		Data:           hitsOrEmpty(l.Hits),
		Pagination:     &l.Pagination,
		FiltersApplied: &applied,
	}
}

func queryValues(r *http.Request) params.Values {
	return params.Values(r.URL.Query())
}

// bindPath decodes a simple-style path parameter. Lists are comma separated.
func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return domain.NewValidationError(name, "invalid path parameter")
	}
	return nil
}

func decodePayload(w http.ResponseWriter, r *http.Request) (*domrest.Payload, error) {
	var p domrest.Payload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewValidationError("body", "request body too large")
		}
		return nil, domain.NewValidationError("body", "malformed JSON body")
	}
	return &p, nil
}

// compact trims items and drops empty ones.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
