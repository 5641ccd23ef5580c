// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package auth implements the user identity layer of Reviewly.

It defines the User entity and the signup/token exchange: a user enrolls
with a (username, email) pair, receives an out-of-band confirmation code,
and trades (username, code) for a bearer token. There is no password
credential anywhere in the system.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
external dependencies beyond the role enum and encapsulates all business
rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/buithanhtam/reviewly/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Reviewly platform.
//
// Confirmed and TokenVersion make up the confirmation-code epoch: flipping
// or bumping either retires every previously issued code (see
// [sec.CodeIssuer]). They are never exposed over the API.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"` // Bootstrap override, managed out of band.
	IsStaff     bool         `json:"-"` // Operational override, managed out of band.
	Confirmed   bool         `json:"-"`
	TokenVer    int          `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"-"`
}

// Actor maps the persisted user to an acting identity for authorization.
func (u *User) Actor() *sec.Actor {
	return &sec.Actor{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
		Staff:     u.IsStaff,
	}
}

// AccountState extracts the confirmation-code fingerprint fields.
func (u *User) AccountState() sec.AccountState {
	return sec.AccountState{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Confirmed:    u.Confirmed,
		TokenVersion: u.TokenVer,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldToken            = "token"
)

// ReservedUsernames can never be claimed through signup: "me" collides with
// the /users/me routing alias and "admin" with the privileged identity.
var ReservedUsernames = []string{"me", "admin"}
