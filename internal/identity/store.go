package identity

import (
	"context"
	"time"
)

// CreateUserInput describes a registration request. Email is normalized by
// the store; PasswordHash must already be a bcrypt hash.
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Now          time.Time
}

// Store is the user persistence boundary.
type Store interface {
	// CreateUser inserts a new user. A duplicate (normalized) email yields
	// a ConflictError with Field "email".
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByEmail loads a user by normalized email. Missing -> ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// GetUserByID loads a user by ID. Missing -> ErrNotFound.
	GetUserByID(ctx context.Context, id string) (User, error)
}
