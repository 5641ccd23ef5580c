// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package account exposes the user collection behind a bearer token.

It covers two audiences with one service: administrators managing the full
user collection, and every authenticated user reading and editing their own
profile through the distinguished "me" endpoints.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    its repository; there is exactly one source of truth for account rows.
  - Authorization: Every operation names an [authz.Policy] and evaluates it
    before touching data.
*/
package account

// # Update Payloads

// UpdateInput defines the mutable subset of account fields. Nil means
// "leave unchanged".
type UpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// CreateInput defines the fields an administrator supplies when creating an
// account directly, bypassing the signup flow.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}
