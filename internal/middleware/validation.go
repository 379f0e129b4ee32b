package middleware

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
)

// QueryValidator binds URL query parameters onto a struct and validates it
// with struct tags. Fields name their parameter with a `query` tag; string
// fields are the only kind supported.
type QueryValidator struct {
	validator *validator.Validate
}

// NewQueryValidator creates a validator that reports fields by query name
func NewQueryValidator() *QueryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryValidator{validator: v}
}

// Bind copies query values into dst, a pointer to a struct, then validates it.
// Values are trimmed and lowercased. Validation failures come back as field errors.
func (q *QueryValidator) Bind(values url.Values, dst interface{}) ([]apierrors.ValidationError, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("query target must be a pointer to a struct, got %T", dst)
	}

	elem := rv.Elem()
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		if raw := values.Get(name); raw != "" {
			elem.Field(i).SetString(strings.ToLower(strings.TrimSpace(raw)))
		}
	}

	if err := q.validator.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("failed to validate query: %w", err)
		}
		out := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
		return out, nil
	}
	return nil, nil
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
