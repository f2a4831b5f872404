// Package filter compiles raw request parameters into an immutable set of
// store-agnostic predicates.
package filter

import "fmt"

// Kind is the shape of a predicate.
type Kind int

// Predicate kinds.
const (
	// KindEq matches one exact value.
	KindEq Kind = iota + 1
	// KindIn matches any of a set of values.
	KindIn
	// KindRange bounds a numeric field on one or both sides, inclusive.
	KindRange
	// KindContains is a case-insensitive substring match on one field.
	KindContains
	// KindAnyContains is a case-insensitive substring match on any of several fields.
	KindAnyContains
	// KindTrue requires a boolean field to be true.
	KindTrue
)

func (k Kind) String() string {
	switch k {
	case KindEq:
		return "eq"
	case KindIn:
		return "in"
	case KindRange:
		return "range"
	case KindContains:
		return "contains"
	case KindAnyContains:
		return "any_contains"
	case KindTrue:
		return "true"
	default:
		return "unknown"
	}
}

// Predicate is a single matching condition over one or more fields.
type Predicate struct {
	kind   Kind
	fields []string
	value  any
	values []any
	min    *float64
	max    *float64
	text   string
}

// Eq matches field == value.
func Eq(field string, value any) Predicate {
	return Predicate{kind: KindEq, fields: []string{field}, value: value}
}

// In matches field against any of values. A single value degrades to Eq.
func In(field string, values ...any) Predicate {
	if len(values) == 1 {
		return Eq(field, values[0])
	}
	vs := make([]any, len(values))
	copy(vs, values)
	return Predicate{kind: KindIn, fields: []string{field}, values: vs}
}

// Between bounds field inclusively. Either bound may be nil, not both.
func Between(field string, lo, hi *float64) (Predicate, error) {
	if lo == nil && hi == nil {
		return Predicate{}, fmt.Errorf("range on %q needs at least one bound", field)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return Predicate{}, fmt.Errorf("range on %q has min %v above max %v", field, *lo, *hi)
	}
	return Predicate{kind: KindRange, fields: []string{field}, min: copyFloat(lo), max: copyFloat(hi)}, nil
}

// Contains is a case-insensitive substring match on field.
func Contains(field, text string) Predicate {
	return Predicate{kind: KindContains, fields: []string{field}, text: text}
}

// AnyContains is a case-insensitive substring match on any of fields.
func AnyContains(text string, fields ...string) Predicate {
	fs := make([]string, len(fields))
	copy(fs, fields)
	return Predicate{kind: KindAnyContains, fields: fs, text: text}
}

// True requires a boolean field to be set.
func True(field string) Predicate {
	return Predicate{kind: KindTrue, fields: []string{field}}
}

// Kind returns the predicate shape.
func (p Predicate) Kind() Kind { return p.kind }

// Field returns the first (usually only) field.
func (p Predicate) Field() string {
	if len(p.fields) == 0 {
		return ""
	}
	return p.fields[0]
}

// Fields returns a copy of every field the predicate looks at.
func (p Predicate) Fields() []string {
	out := make([]string, len(p.fields))
	copy(out, p.fields)
	return out
}

// Value returns the KindEq operand.
func (p Predicate) Value() any { return p.value }

// Values returns a copy of the KindIn operands.
func (p Predicate) Values() []any {
	out := make([]any, len(p.values))
	copy(out, p.values)
	return out
}

// Min returns the inclusive lower bound, or nil.
func (p Predicate) Min() *float64 { return copyFloat(p.min) }

// Max returns the inclusive upper bound, or nil.
func (p Predicate) Max() *float64 { return copyFloat(p.max) }

// Text returns the substring operand.
func (p Predicate) Text() string { return p.text }

// Describe renders the predicate for filters_applied.
func (p Predicate) Describe() any {
	switch p.kind {
	case KindEq:
		return p.value
	case KindIn:
		return map[string]any{"in": p.Values()}
	case KindRange:
		m := map[string]any{}
		if p.min != nil {
			m["gte"] = *p.min
		}
		if p.max != nil {
			m["lte"] = *p.max
		}
		return m
	case KindContains:
		return map[string]any{"contains": p.text}
	case KindAnyContains:
		return map[string]any{"contains": p.text, "any_of": p.Fields()}
	case KindTrue:
		return true
	default:
		return nil
	}
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
