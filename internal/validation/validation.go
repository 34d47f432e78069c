// Package validation turns struct-tag validation failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Merge(other FieldErrors) {
	for f, msgs := range other {
		e[f] = append(e[f], msgs...)
	}
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report the form field name, not the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns nil when every rule passes.
func Struct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": {err.Error()}}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// Var reports whether a single value passes the validator rule tag, e.g. "email".
func Var(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "numeric", "number":
		return fe.Field() + " must be a number"
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fe.Field() + " is invalid"
	}
}
