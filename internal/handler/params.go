package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
)

// maxBodyBytes caps request bodies; every payload here is a few short fields.
const maxBodyBytes = 1 << 20

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// pathID reads the {id} route parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "id must be a positive integer")
	}
	return id, nil
}

// decodeBody decodes the JSON body into dst. An empty body leaves dst at its
// zero value so the validator reports every missing field.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.ValidationFailed("body", "request body must be valid JSON")
	}
	return nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.ValidationFailed(name, name+" must be a boolean")
	}
	return &v, nil
}

// queryDay parses an optional strict YYYY-MM-DD query parameter as UTC midnight.
func queryDay(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if !dayPattern.MatchString(raw) {
		return nil, apperror.ValidationFailed(name, name+" must be a date in YYYY-MM-DD format")
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperror.ValidationFailed(name, name+" must be a valid calendar date")
	}
	return &day, nil
}
