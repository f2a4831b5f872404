// Package params wraps raw query-string parameters with typed accessors that
// report malformed input as validation errors.
package params

import (
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// TrueValue is the only raw value that switches a boolean flag on.
const TrueValue = "true"

// Values is a raw parameter bag, shaped like url.Values.
type Values map[string][]string

// FromMap builds Values from single-valued pairs. Handy in tests.
func FromMap(m map[string]string) Values {
	v := make(Values, len(m))
	for k, s := range m {
		v[k] = []string{s}
	}
	return v
}

// Get returns the trimmed first value of name, or "".
func (v Values) Get(name string) string {
	vs := v[name]
	if len(vs) == 0 {
		return ""
	}
	return strings.TrimSpace(vs[0])
}

// Has reports whether name carries a non-blank value.
func (v Values) Has(name string) bool {
	return v.Get(name) != ""
}

// List splits a comma-separated value into trimmed, non-empty items.
func (v Values) List(name string) []string {
	return SplitList(v.Get(name))
}

// Flag reports whether name is the literal "true". Anything else is off.
func (v Values) Flag(name string) bool {
	return v.Get(name) == TrueValue
}

// Int parses name as an integer. ok is false when the parameter is absent.
func (v Values) Int(name string) (n int, ok bool, err error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, domain.NewValidationError(name, "must be an integer")
	}
	return n, true, nil
}

// IntOr parses name as an integer, falling back to def when absent.
func (v Values) IntOr(name string, def int) (int, error) {
	n, ok, err := v.Int(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return n, nil
}

// Float parses name as a finite number. ok is false when the parameter is absent.
func (v Values) Float(name string) (f float64, ok bool, err error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	f, err = strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, domain.NewValidationError(name, "must be a number")
	}
	return f, true, nil
}

// FloatPtr is Float returning nil when the parameter is absent.
func (v Values) FloatPtr(name string) (*float64, error) {
	f, ok, err := v.Float(name)
	if err != nil || !ok {
		return nil, err
	}
	return &f, nil
}

// SplitList splits s on commas, trimming items and dropping empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
