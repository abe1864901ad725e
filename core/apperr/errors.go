package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports caller input that cannot be processed as given.
type ValidationError struct {
	// Field is the offending input field, if any.
	Field string `json:"field,omitempty"`
	// Message is the human readable reason.
	Message string `json:"message"`
	// Details carries structured context such as counts and limits.
	Details map[string]any `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NewValidation creates a ValidationError for a single field.
func NewValidation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CapExceeded reports a request that would expand into more items than allowed.
func CapExceeded(field string, count, limit int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("request expands to %d combinations, the maximum is %d", count, limit),
		Details: map[string]any{"count": count, "limit": limit},
	}
}

// FromValidator converts go-playground validator errors into a ValidationError
// keyed by field name.
func FromValidator(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	details := make(map[string]any, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return &ValidationError{
		Field:   ve[0].Field(),
		Message: fmt.Sprintf("failed on the '%s' rule", ve[0].Tag()),
		Details: details,
	}
}

// ConcurrencyError is returned once a retryable transaction exhausts its attempts.
type ConcurrencyError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("%s conflicted with concurrent changes, please try again", e.Op)
}

func (e *ConcurrencyError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConcurrency reports whether err wraps a ConcurrencyError.
func IsConcurrency(err error) bool {
	var ce *ConcurrencyError
	return errors.As(err, &ce)
}

// StatusCode maps an error to the HTTP status handlers should answer with.
func StatusCode(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsConcurrency(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
