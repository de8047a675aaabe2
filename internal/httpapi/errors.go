package httpapi

import (
	"fmt"
	"net/http"
)

// Error is a domain error that carries its HTTP status and stable code.
// Anything below 500 is surfaced to the client verbatim; everything else
// is coerced to a generic internal error by WriteErr.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Validation reports malformed input with field-level detail.
// details maps field names to human-readable messages.
func Validation(details map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "VALIDATION", Message: "Invalid request", Details: details}
}

// BadRequest reports a malformed request with a specific code.
func BadRequest(code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// Unauthorized reports a missing or invalid credential. The message is
// deliberately generic so callers cannot distinguish failure modes.
func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized"}
}

// InvalidCredentials is returned for both unknown email and wrong password.
func InvalidCredentials() *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
}

// Forbidden reports an authenticated caller lacking membership or role.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: msg}
}

// NotFound reports a resource id with no match.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: msg}
}

// Conflict reports a uniqueness violation (duplicate email).
func Conflict(code, msg string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: msg}
}

// Internal is the catch-all for unexpected failures. The original cause
// must be logged by the caller; it never reaches the client.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "Internal Server Error"}
}
