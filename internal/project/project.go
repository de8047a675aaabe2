package project

import "time"

// MemberRole is a user's role within a single project. Closed set;
// authorization branches switch over it exhaustively.
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleMember MemberRole = "MEMBER"
)

// Valid reports whether r is one of the defined member roles.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleMember:
		return true
	}
	return false
}

// Project is a board owned by one user and shared with members.
type Project struct {
	ID          string
	OwnerID     string
	Name        string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership grants a user a role within a specific project. It is the
// relation the authorization gate enforces project-scoped access against.
type Membership struct {
	ProjectID string
	UserID    string
	Role      MemberRole
	CreatedAt time.Time
}
