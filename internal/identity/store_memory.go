package identity

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
)

// MemoryStore is an in-memory Store used when no database is configured
// (local development) and as a DB-free fixture in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string // normalized email -> id
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	email := NormalizeEmail(in.Email)
	if email == "" || in.PasswordHash == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput}
	}
	role := in.Role
	if !role.Valid() {
		role = RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return User{}, ConflictError{Op: op, Field: "email"}
	}

	u := User{
		ID:           ulid.Make().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		CreatedAt:    in.Now,
		UpdatedAt:    in.Now,
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, OpError{Op: "identity.GetUserByEmail", Kind: ErrNotFound}
	}
	return s.byID[id], nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, OpError{Op: "identity.GetUserByID", Kind: ErrNotFound}
	}
	return u, nil
}
