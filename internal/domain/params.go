package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ImpactParameters describes the impactor. Angle is measured in degrees from
// the horizontal and is deliberately not range-checked.
type ImpactParameters struct {
	Diameter float64 `json:"diameter_m" validate:"gt=0"`
	Velocity float64 `json:"velocity_m_s" validate:"gt=0"`
	Density  float64 `json:"density_kg_m3" validate:"gt=0"`
	Angle    float64 `json:"angle_deg"`
}

// Field names used in validation errors and by every parameter source.
const (
	FieldDiameter = "diameter"
	FieldVelocity = "velocity"
	FieldDensity  = "density"
	FieldAngle    = "angle"
)

// ValidationError reports an impactor parameter that could not be accepted.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s (got %s)", e.Field, e.Reason, e.Value)
}

// NewParseError wraps a value that is missing or not a number.
func NewParseError(field, value string) *ValidationError {
	value = strings.TrimSpace(value)
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return &ValidationError{Field: field, Value: strconv.Quote(value), Reason: "is not a number"}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		switch f.Name {
		case "Diameter":
			return FieldDiameter
		case "Velocity":
			return FieldVelocity
		case "Density":
			return FieldDensity
		case "Angle":
			return FieldAngle
		}
		return f.Name
	})
	return v
}

// NewImpactParameters builds a validated parameter record.
func NewImpactParameters(diameter, velocity, density, angle float64) (ImpactParameters, error) {
	p := ImpactParameters{Diameter: diameter, Velocity: velocity, Density: density, Angle: angle}
	if err := p.Validate(); err != nil {
		return ImpactParameters{}, err
	}
	return p, nil
}

// Validate checks that diameter, velocity, and density are strictly positive.
// It returns the first offending field, in that order, as a *ValidationError.
func (p ImpactParameters) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate impact parameters: %w", err)
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Field:  fe.Field(),
		Value:  strconv.FormatFloat(fe.Value().(float64), 'g', -1, 64),
		Reason: "must be a positive number",
	}
}
