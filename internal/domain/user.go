package domain

import "time"

// Role enumerates access levels for dashboard users.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHD    Role = "hd"
	RoleTA    Role = "ta"
	RoleGuest Role = "guest"
)

// Valid reports whether the role is one of the known access levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHD, RoleTA, RoleGuest:
		return true
	}
	return false
}

// User is an operator of the dashboard: admin, help desk, field
// technician or read-only guest. Tickets reference users by id only.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         Role
	Phone        string
	Area         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
