package project

import (
	"context"
	"time"
)

// CreateInput describes a new project. The creating user becomes OWNER in
// the same logical unit as the project insert.
type CreateInput struct {
	OwnerID     string
	Name        string
	Description *string
	Now         time.Time
}

// Update carries tri-state PATCH semantics down to the store: a nil Name
// leaves the name unchanged; Description applies only when DescriptionSet,
// with nil meaning "clear".
type Update struct {
	Name           *string
	Description    *string
	DescriptionSet bool
	Now            time.Time
}

// Store is the project/membership persistence boundary.
type Store interface {
	// Create inserts a project together with the owner's OWNER membership.
	Create(ctx context.Context, in CreateInput) (Project, error)

	// GetByID loads a project. Missing -> ErrNotFound.
	GetByID(ctx context.Context, projectID string) (Project, error)

	// ListForUser returns the projects userID is a member of, most recently
	// updated first.
	ListForUser(ctx context.Context, userID string) ([]Project, error)

	// GetMember loads the membership row for (projectID, userID).
	// Missing -> ErrNotMember.
	GetMember(ctx context.Context, projectID, userID string) (Membership, error)

	// Update applies a tri-state update. Missing project -> ErrNotFound.
	Update(ctx context.Context, projectID string, up Update) (Project, error)

	// Delete removes a project and its memberships. Missing -> ErrNotFound.
	Delete(ctx context.Context, projectID string) error
}
