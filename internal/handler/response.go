package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError, so the API has one
// content type and one error shape:
//
//	{"error": "validation_error", "message": "title should not be empty",
//	 "details": [{"field": "title", "message": "title should not be empty"}]}
//
// "details" is only present for validation errors.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string                `json:"error"`             // Machine-readable error type (e.g., "not_found")
	Message string                `json:"message"`           // Human-readable description
	Details []apperror.FieldError `json:"details,omitempty"` // One entry per invalid field
}

// MessageResponse confirms a deletion.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status go out before the body; later header changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends it.
//
//	ErrValidation → 400   ErrForbidden → 403
//	ErrNotFound   → 404   ErrConflict  → 409
//
// errors.Is walks the whole chain, so wrapped AppErrors still match.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	// Never expose internal error text; it may contain SQL or file paths.
	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
