package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
	"github.com/kailas-cloud/restodex/internal/domain/search/request"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/restodex/internal/usecase/restaurant"
	searchuc "github.com/kailas-cloud/restodex/internal/usecase/search"
)

// --- Mocks ---

type mockRestaurants struct {
	createFn  func(ctx context.Context, r domrest.Restaurant) (domrest.Restaurant, error)
	getFn     func(ctx context.Context, id string) (domrest.Restaurant, error)
	replaceFn func(ctx context.Context, r domrest.Restaurant) error
	deleteFn  func(ctx context.Context, id string) (domrest.Restaurant, error)
}

func (m *mockRestaurants) Create(ctx context.Context, r domrest.Restaurant) (domrest.Restaurant, error) {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = testID
	return r, nil
}

func (m *mockRestaurants) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrest.Restaurant{}, domain.NewNotFound(id)
}

func (m *mockRestaurants) Replace(ctx context.Context, r domrest.Restaurant) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, r)
	}
	return nil
}

func (m *mockRestaurants) Delete(ctx context.Context, id string) (domrest.Restaurant, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domrest.Restaurant{}, domain.NewNotFound(id)
}

type mockSearch struct {
	searchFn func(ctx context.Context, p plan.Plan) (result.Page, error)
	queryFn  func(ctx context.Context, p plan.Plan) ([]result.Hit, error)
	statsFn  func(ctx context.Context) (result.Stats, error)
}

func (m *mockSearch) Search(ctx context.Context, p plan.Plan) (result.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, p)
	}
	return result.Page{}, nil
}

func (m *mockSearch) Query(ctx context.Context, p plan.Plan) ([]result.Hit, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, p)
	}
	return nil, nil
}

func (m *mockSearch) Stats(ctx context.Context) (result.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return result.Stats{}, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// --- Helpers ---

const testID = "65f0a1b2c3d4e5f6a7b8c9d0"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	restaurants *mockRestaurants
	search      *mockSearch
	db          *mockPinger
	cache       *mockPinger
}

func newFixture() *fixture {
	return &fixture{
		restaurants: &mockRestaurants{},
		search:      &mockSearch{},
		db:          &mockPinger{},
		cache:       &mockPinger{},
	}
}

func (f *fixture) router() http.Handler {
	restSvc := restaurantuc.New(f.restaurants, domrest.NewValidator(), nil).
		WithClock(func() time.Time { return fixedNow })
	searchSvc := searchuc.New(f.search, nil, request.DefaultLimits())
	healthSvc := healthuc.New(f.db, f.cache)

	s := NewServer(restSvc, searchSvc, healthSvc, zap.NewNop())
	s.now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.router().ServeHTTP(rr, req)

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s %s: %v (body %q)", method, target, err, rr.Body.String())
	}
	return rr, out
}

func hit(name string) result.Hit {
	return result.Hit{Restaurant: domrest.Restaurant{ID: testID, Name: name}}
}

func ptr[T any](v T) *T { return &v }

func detailFields(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["details"].([]any)
	if !ok {
		t.Fatalf("details missing in %v", body)
	}
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.(map[string]any)["field"].(string))
	}
	return out
}
