package projectapi

import (
	"context"
	"errors"

	"taskflow/internal/httpapi"
	"taskflow/internal/project"
)

// MemberOf resolves the caller's membership in a project, mapping domain
// errors to API errors. A non-member gets the same 403 whether or not the
// project exists once it does; only a missing project yields 404.
func MemberOf(ctx context.Context, projects project.Store, projectID, userID string) (project.Membership, error) {
	if _, err := projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Membership{}, httpapi.NotFound("Project not found")
		}
		return project.Membership{}, err
	}

	m, err := projects.GetMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, project.ErrNotMember) {
			return project.Membership{}, httpapi.Forbidden("Not a member of this project")
		}
		return project.Membership{}, err
	}
	return m, nil
}
