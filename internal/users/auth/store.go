// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		List returns a page of accounts, optionally filtered by a username
		search term, ordered by creation identifier.

		Parameters:
		  - context: context.Context
		  - search: string (empty matches everything)
		  - page: pagination.Params

		Returns:
		  - []*User: Page of accounts
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, search string, page pagination.Params) ([]*User, int, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (unique violations map to Conflict)
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable fields, including the role.

		Callers that must not change the role are responsible for pinning it
		to the previously loaded value before calling Update.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account row. Reviews and comments authored by the
		user are removed by the schema's cascading foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		AdvanceTokenState marks the account confirmed and bumps its token
		version, retiring every confirmation code issued before this call.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	AdvanceTokenState(context context.Context, id string) error
}

// # Volatile Data Access

// CodeRepository defines the contract for pending confirmation-code records.
//
// A record's presence makes an issued code redeemable; deletion after a
// successful exchange makes codes single-use, and the TTL bounds their life
// independently of the fingerprint epoch.
type CodeRepository interface {

	/*
		Set stores the bcrypt hash of an issued code for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, userID, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the stored code hash for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: Stored bcrypt hash
		  - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, userID string) (string, error)

	/*
		Delete removes the pending record after a successful exchange.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error
}
