package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// PostgresStore implements Store using PostgreSQL (taskflow.sessions).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("session: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// Create inserts a new session row and returns its ULID.
func (s *PostgresStore) Create(ctx context.Context, now time.Time, userID, refreshHash string, expiresAt time.Time) (string, error) {
	id := ulid.Make().String()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO taskflow.sessions (id, user_id, refresh_token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, refreshHash, now, expiresAt)
	if err != nil {
		return "", err
	}

	return id, nil
}

// ConsumeActiveByRefreshHash deletes the matching unexpired session and
// returns it. The single DELETE..RETURNING statement is the atomicity
// boundary: a raced token yields the row to exactly one caller.
func (s *PostgresStore) ConsumeActiveByRefreshHash(ctx context.Context, now time.Time, refreshHash string) (Row, error) {
	var row Row

	err := s.pool.QueryRow(ctx, `
		DELETE FROM taskflow.sessions
		WHERE refresh_token_hash = $1 AND expires_at > $2
		RETURNING id, user_id, refresh_token_hash, created_at, expires_at
	`, refreshHash, now).Scan(
		&row.ID, &row.UserID, &row.RefreshTokenHash, &row.CreatedAt, &row.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, ErrSessionNotFound
	}
	if err != nil {
		return Row{}, err
	}

	return row, nil
}

// DeleteByID removes a single session (idempotent).
func (s *PostgresStore) DeleteByID(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM taskflow.sessions WHERE id = $1
	`, sessionID)
	return err
}

// DeleteExpired removes sessions whose TTL has elapsed.
func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM taskflow.sessions WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountActiveByUser reports unexpired sessions owned by userID.
func (s *PostgresStore) CountActiveByUser(ctx context.Context, now time.Time, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM taskflow.sessions
		WHERE user_id = $1 AND expires_at > $2
	`, userID, now).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
