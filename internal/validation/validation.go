// Package validation runs the declarative `validate` struct tags on request
// payloads and turns failures into apperror validation errors, one message per
// offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
)

// Validator is safe for concurrent use; build one and share it.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("mediaId") instead of Go field names ("MediaID").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates s. It returns nil, or an *apperror.AppError wrapping
// apperror.ErrValidation with one detail per failing field.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	details := make([]apperror.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperror.Invalid(details)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "url":
		return field + " must be a URL address"
	case "datetime":
		return field + " must be a valid ISO 8601 date string"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}
