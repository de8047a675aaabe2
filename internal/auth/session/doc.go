// Package session implements TaskFlow's refresh-session architecture.
//
// Access tokens are short-lived HS256 JWTs carrying the user's identity
// claims; they are validated purely by signature and expiry, never looked
// up server-side. Refresh tokens are opaque random strings, strictly
// single-use, and stored in Postgres only as a one-way hash (HMAC-SHA256
// when a cookie secret is configured, SHA-256 otherwise). Rotation
// consumes the old session row and creates its replacement; consuming is
// an atomic delete-and-return, so two requests racing on the same token
// rotate it at most once.
//
// Transport (cookies, HTTP status mapping) is intentionally out of scope
// here; see internal/auth/api.
package session
