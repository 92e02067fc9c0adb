package models

import "time"

// Role controls which API surface a user may reach.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleTeacher    Role = "teacher"
)

// CanVerify reports whether the role may verify or reject payments.
func (r Role) CanVerify() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a staff user in the system
type User struct {
	ID           int64     `json:"id"`
	Cedula       string    `json:"cedula"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
