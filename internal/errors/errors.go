package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when the caller identity cannot be
	// resolved from the verified token.
	ErrUnauthorized = errors.New("missing or invalid caller identity")
	// ErrNotFound is returned when an entity is absent or not owned by the
	// caller. The two causes are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")
	// ErrBoardNotFound is returned when a board-scoped task query references
	// a board that does not exist or belongs to another user.
	ErrBoardNotFound = errors.New("Board not found or access denied")
	// ErrConflict is returned when an optimistic write detects a concurrent
	// modification. Surfaced to clients as an internal error after the
	// existence recheck; there is no retry.
	ErrConflict = errors.New("concurrent modification detected")
)

// InvalidInputError carries a client-facing message and optional per-field
// details for malformed requests.
type InvalidInputError struct {
	Message string
	Details []string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput creates an InvalidInputError.
func NewInvalidInput(message string, details ...string) *InvalidInputError {
	return &InvalidInputError{Message: message, Details: details}
}

// ErrorResponse is the error payload returned to clients.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Errors:  e.Details,
	}
}

// MapToHTTP maps service errors to HTTP errors. Anything outside the
// taxonomy is reported with a generic message; callers are expected to log
// the full detail server-side.
func MapToHTTP(err error) *HTTPError {
	var invalid *InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: invalid.Message, Details: invalid.Details}
	case errors.Is(err, ErrUnauthorized):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: ErrUnauthorized.Error()}
	case errors.Is(err, ErrBoardNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: ErrBoardNotFound.Error()}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: ErrNotFound.Error()}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
	}
}
