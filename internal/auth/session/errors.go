package session

import "errors"

var (
	// ErrTokenInvalid is returned when an access token fails signature or
	// claim verification.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when an access token's expiry has passed.
	// Callers must surface it identically to ErrTokenInvalid.
	ErrTokenExpired = errors.New("token expired")

	// ErrSessionNotFound is returned when a refresh token does not match any
	// active session: unknown, expired, or already consumed. The cases are
	// deliberately indistinguishable to avoid token probing.
	ErrSessionNotFound = errors.New("session not found")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
