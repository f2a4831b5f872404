package params

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain"
)

func TestValues_Flag(t *testing.T) {
	v := FromMap(map[string]string{"wifi": "true", "delivery": "false", "parking": "TRUE", "takeout": "1"})

	if !v.Flag("wifi") {
		t.Error("expected literal true to switch the flag on")
	}
	for _, name := range []string{"delivery", "parking", "takeout", "absent"} {
		if v.Flag(name) {
			t.Errorf("Flag(%q) = true, want false", name)
		}
	}
}

func TestValues_Int(t *testing.T) {
	v := FromMap(map[string]string{"page": "3", "limit": "ten", "blank": "  "})

	n, ok, err := v.Int("page")
	if err != nil || !ok || n != 3 {
		t.Errorf("Int(page) = %d,%v,%v", n, ok, err)
	}

	_, ok, err = v.Int("blank")
	if err != nil || ok {
		t.Errorf("blank value must count as absent, got ok=%v err=%v", ok, err)
	}

	_, _, err = v.Int("limit")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "limit" {
		t.Errorf("expected field limit, got %v", err)
	}

	def, err := v.IntOr("missing", 10)
	if err != nil || def != 10 {
		t.Errorf("IntOr default = %d,%v", def, err)
	}
}

func TestValues_Float(t *testing.T) {
	v := FromMap(map[string]string{"lon": "-99.13", "lat": "north", "r": "NaN"})

	f, ok, err := v.Float("lon")
	if err != nil || !ok || f != -99.13 {
		t.Errorf("Float(lon) = %v,%v,%v", f, ok, err)
	}
	if _, _, err := v.Float("lat"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for non-numeric, got %v", err)
	}
	if _, _, err := v.Float("r"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for NaN, got %v", err)
	}
	p, err := v.FloatPtr("missing")
	if err != nil || p != nil {
		t.Errorf("FloatPtr(missing) = %v,%v", p, err)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Mexicana, ,Italiana ,")
	if len(got) != 2 || got[0] != "Mexicana" || got[1] != "Italiana" {
		t.Errorf("SplitList = %q", got)
	}
	if SplitList("   ") != nil {
		t.Error("expected nil for blank input")
	}
}
