package apierr

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the service layers. Handlers translate these to
// HTTP statuses; everything unmapped is treated as an external-service
// failure (500).
var (
	ErrNotAuthorized = errors.New("not authorized (officer passcode)")
	ErrNotFound      = errors.New("not found")
)

// ValidationError carries a user-facing message about a rejected input
// field. It maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation is the usual constructor; the message should name the
// offending field, e.g. "endDate must be on/after startDate".
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// Required builds the standard missing-field error.
func Required(field string) error {
	return &ValidationError{Message: field + " is required"}
}

// Status maps a service error to its HTTP status code.
func Status(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
