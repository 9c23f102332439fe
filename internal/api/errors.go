package api

import (
	"errors"
	"fmt"
)

// Sentinel errors. APIError and ValidationError match them with errors.Is,
// so callers never inspect status codes.
var (
	// ErrNotFound matches a 404 from any endpoint
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest matches a 400 from MVG and every ValidationError
	// raised before a request is sent (malformed station id, empty query)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServerError matches any 5xx. The TUI shows it in the status line
	// and the next refresh retries.
	ErrServerError = errors.New("server error")

	// ErrTimeout wraps a context deadline or http.Client timeout
	ErrTimeout = errors.New("request timed out")

	// ErrNoResults is returned by ListStations when /.rest/zdm/stations
	// answers with an empty list. Departures and search treat an empty
	// list as a valid answer.
	ErrNoResults = errors.New("no results found")
)

// APIError is a non-200 answer from mvg.de. Message carries the "message"
// field of the JSON error body when the server sent one.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error %d: %s (endpoint: %s)", e.StatusCode, e.Status, e.Endpoint)
}

// Is maps the status code onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrServerError:
		return e.StatusCode >= 500
	case ErrInvalidRequest:
		return e.StatusCode == 400
	}
	return false
}

// NewAPIError creates an APIError for a response without a usable body
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}

// NewAPIErrorWithMessage creates a new API error with the message the
// server sent in its error body
func NewAPIErrorWithMessage(statusCode int, status, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ValidationError rejects a request parameter before anything is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Is lets callers treat a rejected parameter like a 400 response.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrMissingField reports an empty station id or search query
func ErrMissingField(field string) error {
	return NewValidationError(field, "field is required")
}

// ErrInvalidFormat reports a value of the wrong shape, such as a station
// id without the "de:<ags>:<n>" parts
func ErrInvalidFormat(field, expected string) error {
	return NewValidationError(field, fmt.Sprintf("invalid format, expected %s", expected))
}

// ErrInvalidValue reports an out-of-range option like a zero departure limit
func ErrInvalidValue(field string, value interface{}) error {
	return NewValidationError(field, fmt.Sprintf("invalid value: %v", value))
}
