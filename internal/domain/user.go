package domain

import "time"

// Role is the part a user plays in the marketplace.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleCleaner  Role = "CLEANER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleCustomer, RoleCleaner, RoleAdmin:
		return r, true
	}
	return "", false
}

// User represents a customer, cleaner or admin account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
