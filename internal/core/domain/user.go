package domain

import "time"

// Role is the enumerated user role.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleGuest, RoleHost, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// Identity is the authenticated principal decoded from a session token.
type Identity struct {
	UserID int64
	Role   Role
}
