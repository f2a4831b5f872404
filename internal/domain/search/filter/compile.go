package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
)

// Step derives zero or more predicates from the raw parameters and returns
// the extended set. A step never sees predicates it did not add itself.
type Step func(v params.Values, s Set) (Set, error)

// Compile folds steps over an empty set. Validation failures from every
// step are collected so the caller sees all offending fields at once.
func Compile(v params.Values, steps ...Step) (Set, error) {
	var (
		set  Set
		errs domain.ValidationError
	)
	for _, step := range steps {
		next, err := step(v, set)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return Set{}, err
			}
			errs.Merge(err)
			continue
		}
		set = next
	}
	if err := errs.OrNil(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// ValueParser converts one raw list item into a store value.
type ValueParser func(raw string) (any, error)

// Membership compiles param into equality, or set membership when the value
// is comma-separated.
func Membership(param, field string, parse ValueParser) Step {
	return func(v params.Values, s Set) (Set, error) {
		items := v.List(param)
		if len(items) == 0 {
			return s, nil
		}
		vals := make([]any, 0, len(items))
		var errs domain.ValidationError
		for _, raw := range items {
			val, err := parse(raw)
			if err != nil {
				errs.Add(param, err.Error())
				continue
			}
			vals = append(vals, val)
		}
		if err := errs.OrNil(); err != nil {
			return s, err
		}
		return s.With(In(field, vals...)), nil
	}
}

// Range compiles independently optional lower and upper bounds. Either
// param name may be empty when the endpoint only exposes one side.
func Range(minParam, maxParam, field string) Step {
	return func(v params.Values, s Set) (Set, error) {
		var errs domain.ValidationError
		var lo, hi *float64
		if minParam != "" {
			f, err := v.FloatPtr(minParam)
			errs.Merge(err)
			lo = f
		}
		if maxParam != "" {
			f, err := v.FloatPtr(maxParam)
			errs.Merge(err)
			hi = f
		}
		if err := errs.OrNil(); err != nil {
			return s, err
		}
		if lo == nil && hi == nil {
			return s, nil
		}
		p, err := Between(field, lo, hi)
		if err != nil {
			return s, domain.NewValidationError(minParam, fmt.Sprintf("must not exceed %s", maxParam))
		}
		return s.With(p), nil
	}
}

// Substring compiles a case-insensitive substring match.
func Substring(param, field string) Step {
	return func(v params.Values, s Set) (Set, error) {
		raw := v.Get(param)
		if raw == "" {
			return s, nil
		}
		return s.With(Contains(field, raw)), nil
	}
}

// City resolves aliases before compiling a substring match.
func City(param, field string) Step {
	return func(v params.Values, s Set) (Set, error) {
		raw := v.Get(param)
		if raw == "" {
			return s, nil
		}
		return s.With(Contains(field, CanonicalCity(raw))), nil
	}
}

// Flag requires the amenity only when param is the literal "true".
func Flag(param string, am restaurant.Amenity) Step {
	return func(v params.Values, s Set) (Set, error) {
		if !v.Flag(param) {
			return s, nil
		}
		return s.With(True(am.Field())), nil
	}
}

// Amenities requires every listed amenity. When paymentOnly is set, only
// payment methods are accepted.
func Amenities(param string, paymentOnly bool) Step {
	return func(v params.Values, s Set) (Set, error) {
		items := v.List(param)
		if len(items) == 0 {
			return s, nil
		}
		var (
			errs  domain.ValidationError
			preds []Predicate
			seen  = make(map[restaurant.Amenity]bool, len(items))
		)
		for _, raw := range items {
			am, ok := restaurant.ParseAmenity(raw)
			if !ok || (paymentOnly && !am.IsPayment()) {
				errs.Add(param, fmt.Sprintf("unknown value %q", raw))
				continue
			}
			if seen[am] {
				continue
			}
			seen[am] = true
			preds = append(preds, True(am.Field()))
		}
		if err := errs.OrNil(); err != nil {
			return s, err
		}
		return s.With(preds...), nil
	}
}

// LevelRange compiles "lo-hi" into an inclusive price level range and a
// single "n" into equality.
func LevelRange(param, field string) Step {
	return func(v params.Values, s Set) (Set, error) {
		raw := v.Get(param)
		if raw == "" {
			return s, nil
		}
		loRaw, hiRaw, isRange := strings.Cut(raw, "-")
		lo, err := ParsePriceLevel(strings.TrimSpace(loRaw))
		if err != nil {
			return s, domain.NewValidationError(param, err.Error())
		}
		if !isRange {
			return s.With(Eq(field, lo)), nil
		}
		hi, err := ParsePriceLevel(strings.TrimSpace(hiRaw))
		if err != nil {
			return s, domain.NewValidationError(param, err.Error())
		}
		l, h := float64(lo.(int)), float64(hi.(int))
		p, err := Between(field, &l, &h)
		if err != nil {
			return s, domain.NewValidationError(param, "lower level must not exceed upper level")
		}
		return s.With(p), nil
	}
}

// Fixed adds predicates that do not depend on parameters, such as the
// category list taken from a path segment.
func Fixed(preds ...Predicate) Step {
	return func(_ params.Values, s Set) (Set, error) {
		return s.With(preds...), nil
	}
}

// ParseCuisine accepts only enumerated cuisines.
func ParseCuisine(raw string) (any, error) {
	c := restaurant.Cuisine(raw)
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid cuisine type %q", raw)
	}
	return string(c), nil
}

// ParseText accepts any non-empty string.
func ParseText(raw string) (any, error) {
	return raw, nil
}

// ParsePriceLevel accepts integers 1..4.
func ParsePriceLevel(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 4 {
		return nil, fmt.Errorf("price level must be an integer between 1 and 4, got %q", raw)
	}
	return n, nil
}
