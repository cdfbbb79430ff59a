package errs

import (
	"net/http"
)

// Codes for failures that are not derived from an HTTP status text.
const (
	CodeConnectionError     = "CONNECTION_ERROR"
	CodeQueryExecutionError = "QUERY_EXECUTION_ERROR"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
// Used for malformed JSON bodies, a missing/empty query field, and
// non-scalar parameter values.
func NewBadRequestError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewConnectionError creates a 500 HTTPError for a pool that could not
// be established. The underlying cause is logged, not sent to clients.
func NewConnectionError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeConnectionError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewQueryExecutionError creates a 500 HTTPError for a driver-reported
// execution failure. The driver's message passes through verbatim.
func NewQueryExecutionError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeQueryExecutionError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewInternalServerError creates a generic 500 HTTPError.
// The message is the bare status text: clients don't need stack traces,
// and the global error handler decides whether to attach details.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
