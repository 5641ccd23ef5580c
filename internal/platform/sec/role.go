// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role is one of the recognized values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// # Acting Identity

// Actor is the identity a request acts as, reconstructed from token claims.
//
// A nil *Actor means the request is anonymous. The Superuser and Staff flags
// are account-level overrides that grant admin capability regardless of the
// assigned role, so authorization decisions must go through the capability
// predicates below rather than comparing Role directly.
type Actor struct {
	ID        string
	Username  string
	Role      UserRole
	Superuser bool
	Staff     bool
}

// IsAdmin reports whether the actor holds admin capability.
//
// The admin role, the superuser flag, and the staff flag are equivalent here.
func (a *Actor) IsAdmin() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleAdmin || a.Superuser || a.Staff
}

// IsModerator reports whether the actor holds moderator capability.
func (a *Actor) IsModerator() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleModerator
}

// IsUser reports whether the actor is an ordinary authenticated user.
func (a *Actor) IsUser() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleUser
}
