package task

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// PostgresStore implements Store using PostgreSQL (taskflow.tasks).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed task store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("task: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const taskColumns = `id, project_id, title, description, status, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (Task, error) {
	var (
		t      Task
		status string
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}
	t.Status = Status(status)
	return t, nil
}

// Create inserts a new task.
func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Task, error) {
	status := in.Status
	if status == "" {
		status = StatusTodo
	}
	id := ulid.Make().String()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO taskflow.tasks (id, project_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, id, in.ProjectID, in.Title, in.Description, string(status), in.DueDate, in.Now)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:          id,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		CreatedAt:   in.Now,
		UpdatedAt:   in.Now,
	}, nil
}

// GetByID loads a task row.
func (s *PostgresStore) GetByID(ctx context.Context, taskID string) (Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM taskflow.tasks
		WHERE id = $1
	`, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

// ListByProject returns a project's tasks in board order.
func (s *PostgresStore) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM taskflow.tasks
		WHERE project_id = $1
		ORDER BY
			CASE status
				WHEN 'TODO' THEN 0
				WHEN 'IN_PROGRESS' THEN 1
				WHEN 'DONE' THEN 2
				ELSE 3
			END,
			updated_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies a tri-state update and bumps updated_at.
func (s *PostgresStore) Update(ctx context.Context, taskID string, up Update) (Task, error) {
	var status *string
	if up.Status != nil {
		v := string(*up.Status)
		status = &v
	}

	t, err := scanTask(s.pool.QueryRow(ctx, `
		UPDATE taskflow.tasks
		SET
			title = COALESCE($2, title),
			description = CASE WHEN $3 THEN $4 ELSE description END,
			status = COALESCE($5, status),
			due_date = CASE WHEN $6 THEN $7 ELSE due_date END,
			updated_at = $8
		WHERE id = $1
		RETURNING `+taskColumns+`
	`, taskID, up.Title, up.DescriptionSet, up.Description, status, up.DueDateSet, up.DueDate, up.Now))
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

// Delete removes a task.
func (s *PostgresStore) Delete(ctx context.Context, taskID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM taskflow.tasks WHERE id = $1
	`, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByProject removes all tasks in a project.
func (s *PostgresStore) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM taskflow.tasks WHERE project_id = $1
	`, projectID)
	return err
}
