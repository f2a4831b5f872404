package main

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

type mockCreator struct {
	mu       sync.Mutex
	names    []string
	createFn func(p *domrest.Payload) error
}

func (m *mockCreator) Create(_ context.Context, p *domrest.Payload) (domrest.Restaurant, error) {
	if m.createFn != nil {
		if err := m.createFn(p); err != nil {
			return domrest.Restaurant{}, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	name := ""
	if p.Name != nil {
		name = *p.Name
	}
	m.names = append(m.names, name)
	return domrest.Restaurant{Name: name}, nil
}

func TestIngester_JSONArray(t *testing.T) {
	svc := &mockCreator{}
	ing := &ingester{svc: svc, workers: 3, logger: zap.NewNop()}

	in := `  [{"name":"A","cuisine_type":"Mexicana"},{"name":"B"},{"name":"C"}]`
	res, err := ing.Run(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 3 || res.Invalid != 0 || res.Failed != 0 {
		t.Errorf("result: got %+v", res)
	}
	if len(svc.names) != 3 {
		t.Errorf("created: got %v", svc.names)
	}
}

func TestIngester_NDJSON(t *testing.T) {
	svc := &mockCreator{}
	ing := &ingester{svc: svc, workers: 1, logger: zap.NewNop()}

	in := "{\"name\":\"A\"}\n{\"name\":\"B\"}\n"
	res, err := ing.Run(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("imported: got %d, want 2", res.Imported)
	}
	if svc.names[0] != "A" || svc.names[1] != "B" {
		t.Errorf("single worker must keep input order: got %v", svc.names)
	}
}

func TestIngester_CountsOutcomes(t *testing.T) {
	svc := &mockCreator{
		createFn: func(p *domrest.Payload) error {
			switch *p.Name {
			case "bad":
				return domain.NewValidationError("rating", "must be less than or equal to 5")
			case "down":
				return errors.New("store unavailable")
			}
			return nil
		},
	}
	ing := &ingester{svc: svc, workers: 2, logger: zap.NewNop()}

	in := `[{"name":"ok"},{"name":"bad"},{"name":"down"},{"name":"ok2"}]`
	res, err := ing.Run(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 2 || res.Invalid != 1 || res.Failed != 1 {
		t.Errorf("result: got %+v", res)
	}
}

func TestIngester_MalformedInput(t *testing.T) {
	svc := &mockCreator{}
	ing := &ingester{svc: svc, workers: 2, logger: zap.NewNop()}

	res, err := ing.Run(context.Background(), strings.NewReader(`[{"name":"A"},{"name":`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if res.Imported != 1 {
		t.Errorf("records before the error are still imported: got %d", res.Imported)
	}
}

func TestIngester_EmptyInput(t *testing.T) {
	ing := &ingester{svc: &mockCreator{}, workers: 2, logger: zap.NewNop()}

	res, err := ing.Run(context.Background(), strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 0 {
		t.Errorf("imported: got %d", res.Imported)
	}
}
