// Package apperror defines the error taxonomy shared by the service and handler layers.
//
// Every user-facing failure is an *AppError wrapping one of four sentinels.
// Callers classify with errors.Is, and the HTTP layer maps the sentinel to a
// status code:
//
//	ErrValidation → 400   malformed or missing input
//	ErrNotFound   → 404   unknown id or foreign key target
//	ErrForbidden  → 403   still referenced on delete, or edit after publish
//	ErrConflict   → 409   (title, username) already taken
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Err     error        // actual error
	Message string       // Human-readable error message
	Field   string       // Optional: field causing the error
	Details []FieldError // Optional: one entry per invalid field
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// NotFoundBy is NotFound for lookups by something other than the id.
func NotFoundBy(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with %s", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// Invalid collects several field failures into one validation error.
// The first detail becomes the top-level message.
func Invalid(details []FieldError) *AppError {
	if len(details) == 0 {
		return &AppError{Err: ErrValidation, Message: "invalid input"}
	}
	return &AppError{
		Err:     ErrValidation,
		Message: details[0].Message,
		Field:   details[0].Field,
		Details: details,
	}
}

func Conflict(resource, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict: %s", resource, message),
	}
}

// Forbidden returns an AppError indicating the operation is not allowed in the
// record's current state. HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
