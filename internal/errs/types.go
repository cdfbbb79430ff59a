// Package errs defines the error types returned to API clients.
//
// Every failure surfaced over HTTP is expressed as an *HTTPError so
// clients receive a consistent JSON shape: an `error` message, a
// machine-readable `code`, and (outside production) a `details` field
// carrying the underlying stack trace.
package errs

import "strings"

// HTTPError is the error type serialized to API clients.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message, serialized as "error".
//   - Status: HTTP status code; not part of the response body.
//   - Details: stack trace or driver diagnostics; populated by the
//     global error handler only when the service runs outside production.
type HTTPError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Details string `json:"details,omitempty"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so
// errors.Is(err, &HTTPError{}) can detect the type anywhere in a chain.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithDetails returns a copy of this HTTPError with Details set.
// The original is left untouched so shared error values stay immutable.
func (e *HTTPError) WithDetails(details string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Details: details,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
