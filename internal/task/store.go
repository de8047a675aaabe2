package task

import (
	"context"
	"time"
)

// CreateInput describes a new task. Status defaults to TODO when empty.
type CreateInput struct {
	ProjectID   string
	Title       string
	Description *string
	Status      Status
	DueDate     *time.Time
	Now         time.Time
}

// Update carries tri-state PATCH semantics down to the store. Nil Title and
// Status mean "leave unchanged"; Description and DueDate apply only when
// their Set flag is true, with nil meaning "clear".
type Update struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *Status
	DueDate        *time.Time
	DueDateSet     bool
	Now            time.Time
}

// Store is the task persistence boundary.
type Store interface {
	// Create inserts a new task.
	Create(ctx context.Context, in CreateInput) (Task, error)

	// GetByID loads a task. Missing -> ErrNotFound.
	GetByID(ctx context.Context, taskID string) (Task, error)

	// ListByProject returns a project's tasks in board order: status by
	// workflow position, then most recently updated first.
	ListByProject(ctx context.Context, projectID string) ([]Task, error)

	// Update applies a tri-state update. Missing task -> ErrNotFound.
	Update(ctx context.Context, taskID string, up Update) (Task, error)

	// Delete removes a task. Missing -> ErrNotFound.
	Delete(ctx context.Context, taskID string) error

	// DeleteByProject removes every task in a project (project deletion).
	DeleteByProject(ctx context.Context, projectID string) error
}
