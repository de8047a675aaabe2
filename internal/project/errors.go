package project

import "errors"

var (
	// ErrNotFound is returned when a project id has no match.
	ErrNotFound = errors.New("project not found")

	// ErrNotMember is returned when (projectID, userID) has no membership
	// row. It is distinct from ErrNotFound because it maps to 403, not 404:
	// non-members learn nothing about whether the project exists.
	ErrNotMember = errors.New("not a project member")
)
