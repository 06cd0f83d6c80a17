package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"conciergerie/internal/core"
)

var ErrValidation = errors.New("validation failed")

// ValidationError lists the offending request fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// notBefore checks that a YYYY-MM-DD field is on or after the field named
// by its parameter.
var notBefore validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() {
		return false
	}
	otherValue, ok := other.Interface().(string)
	if !ok {
		return false
	}
	d, err := time.Parse(core.DateLayout, value)
	if err != nil {
		return false
	}
	o, err := time.Parse(core.DateLayout, otherValue)
	if err != nil {
		// Reported by the other field's own rules.
		return true
	}
	return !d.Before(o)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notbefore", notBefore)
	return v
}

// validateStruct turns validator errors into a ValidationError keyed by
// the json field name.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	if strings.HasSuffix(field, "ID") {
		field = strings.TrimSuffix(field, "ID") + "Id"
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "oneof":
		return "must be one of " + fe.Param()
	case "notbefore":
		return "must not be before " + jsonName(fe.Param())
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
