package identity

import "time"

// Role is the platform-level user role. It is a closed set; Valid rejects
// anything outside it so authorization branches never see free-form strings.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is TaskFlow's security principal.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
