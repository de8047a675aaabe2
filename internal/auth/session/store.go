package session

import (
	"context"
	"time"
)

// Row mirrors the taskflow.sessions row. The raw refresh token never
// appears here; only its hash is persisted.
type Row struct {
	ID               string
	UserID           string
	RefreshTokenHash string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Store abstracts persistence for refresh sessions.
//
// Implementations must make ConsumeActiveByRefreshHash atomic: when two
// requests race on the same token, at most one may receive the row.
type Store interface {
	// Create inserts a new session row and returns its ID.
	Create(ctx context.Context, now time.Time, userID, refreshHash string, expiresAt time.Time) (string, error)

	// ConsumeActiveByRefreshHash deletes and returns the session matching
	// refreshHash with expires_at > now, as one atomic unit. No match
	// (unknown, expired, or already consumed) -> ErrSessionNotFound.
	ConsumeActiveByRefreshHash(ctx context.Context, now time.Time, refreshHash string) (Row, error)

	// DeleteByID removes a single session. Missing rows are not an error.
	DeleteByID(ctx context.Context, sessionID string) error

	// DeleteExpired removes sessions with expires_at <= now and reports the
	// count. Purging is storage hygiene only; correctness never depends on it.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// CountActiveByUser reports unexpired sessions owned by userID.
	CountActiveByUser(ctx context.Context, now time.Time, userID string) (int, error)
}
