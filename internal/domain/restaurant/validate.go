package restaurant

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/restodex/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// Validator enforces write-time invariants of a Restaurant.
type Validator struct {
	v *validator.Validate
}

// NewValidator wires the struct tags, enum checks and cross-field rules.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("cuisine", func(fl validator.FieldLevel) bool {
		return Cuisine(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(validateRestaurant, Restaurant{})

	return &Validator{v: v}
}

// validateRestaurant holds the cross-field rules struct tags cannot express.
func validateRestaurant(sl validator.StructLevel) {
	r, ok := sl.Current().Interface().(Restaurant)
	if !ok {
		return
	}
	if (r.Longitude == nil) != (r.Latitude == nil) {
		if r.Longitude == nil {
			sl.ReportError(r.Longitude, "longitude", "Longitude", "required_with", "latitude")
		} else {
			sl.ReportError(r.Latitude, "latitude", "Latitude", "required_with", "longitude")
		}
	}
	if r.MinCost > 0 && r.MaxCost > 0 && r.MinCost > r.MaxCost {
		sl.ReportError(r.MinCost, "min_cost", "MinCost", "ltefield", "max_cost")
	}
	if !r.CreatedAt.IsZero() && r.UpdatedAt.Before(r.CreatedAt) {
		sl.ReportError(r.UpdatedAt, "updated_at", "UpdatedAt", "gtefield", "created_at")
	}
}

// Validate returns a *domain.ValidationError listing every offending field.
func (v *Validator) Validate(r *Restaurant) error {
	err := v.v.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate restaurant: %w", err)
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath drops the root struct name: "Restaurant.hours.monday.open" -> "hours.monday.open".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "cuisine":
		return "invalid cuisine type"
	case "phone":
		return "please provide a valid phone number"
	case "email":
		return "please provide a valid email"
	case "http_url":
		return "website must be a valid http(s) URL"
	case "datetime":
		return "must be a time in HH:MM format"
	case "required_with":
		return "longitude and latitude must be provided together"
	case "ltefield":
		return "must not exceed " + fe.Param()
	case "gtefield":
		return "must not be earlier than " + fe.Param()
	default:
		return "is invalid"
	}
}
