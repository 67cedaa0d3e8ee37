package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested task does not exist
	ErrNotFound = errors.New("task not found")

	// ErrInternalServerError is returned when the store fails in a way the
	// caller cannot act on
	ErrInternalServerError = errors.New("internal server error")
)

// ValidationError reports malformed or missing input. It carries the field
// so clients can point at the offending attribute.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
