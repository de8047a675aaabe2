package project

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// PostgresStore implements Store using PostgreSQL (taskflow.projects,
// taskflow.project_members).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed project store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("project: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const projectColumns = `id, owner_id, name, description, created_at, updated_at`

// Create inserts the project and the owner's OWNER membership in one
// transaction; a project never exists without its owner row.
func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Project, error) {
	id := ulid.Make().String()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Project{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO taskflow.projects (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, id, in.OwnerID, in.Name, in.Description, in.Now)
	if err != nil {
		return Project{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO taskflow.project_members (project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, in.OwnerID, string(RoleOwner), in.Now)
	if err != nil {
		return Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, err
	}

	return Project{
		ID:          id,
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   in.Now,
		UpdatedAt:   in.Now,
	}, nil
}

// GetByID loads a project row.
func (s *PostgresStore) GetByID(ctx context.Context, projectID string) (Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM taskflow.projects
		WHERE id = $1
	`, projectID).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

// ListForUser returns the caller's projects, most recently updated first.
func (s *PostgresStore) ListForUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at
		FROM taskflow.projects p
		JOIN taskflow.project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 8)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetMember loads the membership row for (projectID, userID).
func (s *PostgresStore) GetMember(ctx context.Context, projectID, userID string) (Membership, error) {
	var (
		m    Membership
		role string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT project_id, user_id, role, created_at
		FROM taskflow.project_members
		WHERE project_id = $1 AND user_id = $2
	`, projectID, userID).Scan(&m.ProjectID, &m.UserID, &role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Membership{}, ErrNotMember
	}
	if err != nil {
		return Membership{}, err
	}
	m.Role = MemberRole(role)
	return m, nil
}

// Update applies a tri-state update and bumps updated_at.
func (s *PostgresStore) Update(ctx context.Context, projectID string, up Update) (Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx, `
		UPDATE taskflow.projects
		SET
			name = COALESCE($2, name),
			description = CASE WHEN $3 THEN $4 ELSE description END,
			updated_at = $5
		WHERE id = $1
		RETURNING `+projectColumns+`
	`, projectID, up.Name, up.DescriptionSet, up.Description, up.Now).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

// Delete removes a project; memberships and tasks go with it via
// ON DELETE CASCADE.
func (s *PostgresStore) Delete(ctx context.Context, projectID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM taskflow.projects WHERE id = $1
	`, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
