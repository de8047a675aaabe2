package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// PostgresStore implements Store using PostgreSQL (taskflow.users).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed user store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("identity: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

// CreateUser inserts a new user row and returns its ULID-keyed record.
func (s *PostgresStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	email := NormalizeEmail(in.Email)
	if email == "" || in.PasswordHash == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput}
	}
	role := in.Role
	if !role.Valid() {
		role = RoleUser
	}

	id := ulid.Make().String()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO taskflow.users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, id, in.Name, email, in.PasswordHash, string(role), in.Now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ConflictError{Op: op, Field: "email"}
		}
		return User{}, err
	}

	return User{
		ID:           id,
		Name:         in.Name,
		Email:        email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		CreatedAt:    in.Now,
		UpdatedAt:    in.Now,
	}, nil
}

// GetUserByEmail loads a user by normalized email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.getUser(ctx, `WHERE email = $1`, NormalizeEmail(email))
}

// GetUserByID loads a user by ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *PostgresStore) getUser(ctx context.Context, where string, arg any) (User, error) {
	var (
		u    User
		role string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM taskflow.users
		`+where, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, OpError{Op: "identity.GetUser", Kind: ErrNotFound}
	}
	if err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	return u, nil
}
