package session

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MemoryStore is an in-memory Store used when no database is configured
// and as a DB-free fixture in tests. The mutex makes consume-by-hash as
// atomic as the Postgres DELETE..RETURNING.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]Row // id -> row
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]Row)}
}

func (s *MemoryStore) Create(_ context.Context, now time.Time, userID, refreshHash string, expiresAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ulid.Make().String()
	s.rows[id] = Row{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: refreshHash,
		CreatedAt:        now,
		ExpiresAt:        expiresAt,
	}
	return id, nil
}

func (s *MemoryStore) ConsumeActiveByRefreshHash(_ context.Context, now time.Time, refreshHash string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.rows {
		if row.RefreshTokenHash == refreshHash && row.ExpiresAt.After(now) {
			delete(s.rows, id)
			return row, nil
		}
	}
	return Row{}, ErrSessionNotFound
}

func (s *MemoryStore) DeleteByID(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, sessionID)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, row := range s.rows {
		if !row.ExpiresAt.After(now) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountActiveByUser(_ context.Context, now time.Time, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, row := range s.rows {
		if row.UserID == userID && row.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}
