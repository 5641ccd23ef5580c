// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buithanhtam/reviewly/internal/platform/authz"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/internal/users/auth"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the user-collection use cases.
//
// Administrative operations run under [authz.StaffOnly]; the "me" operations
// run under the self policy and pin the caller's role so a user can never
// escalate through their own profile.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// allowedRoles is the assignable role set for administrative writes.
var allowedRoles = []string{
	string(sec.RoleUser),
	string(sec.RoleModerator),
	string(sec.RoleAdmin),
}

// # Administrative Collection

/*
List returns a page of accounts, optionally filtered by a username search.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - search: string
  - page: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching count
  - error: Forbidden or retrieval failures
*/
func (service *Service) List(context context.Context, actor *sec.Actor, search string, page pagination.Params) ([]*auth.User, int, error) {

	// Phase 1: collection access
	if err := authz.StaffOnly.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}

	users, total, err := service.userRepository.List(context, search, page)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return users, total, nil
}

/*
Create persists an account on behalf of an administrator.

Description: Bypasses the signup flow entirely; no confirmation code is
issued. The account starts unconfirmed, so its owner still has to go through
the code exchange to obtain a token.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: Forbidden, ValidationError, Conflict or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*auth.User, error) {

	// Phase 1: collection access
	if err := authz.StaffOnly.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	// Empty role defaults to the base role
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.
		Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLen).
		Username(auth.FieldUsername, input.Username).
		NotReserved(auth.FieldUsername, input.Username, auth.ReservedUsernames...).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLen).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.NameMaxLen).
		MaxLen(auth.FieldLastName, input.LastName, auth.NameMaxLen).
		OneOf(auth.FieldRole, input.Role, allowedRoles...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	// The schema's unique constraints are the authority on identity clashes.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_created_by_admin",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return user, nil
}

/*
Get retrieves an account by username for an administrator.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string

Returns:
  - *auth.User: Hydrated entity
  - error: Forbidden, NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, actor *sec.Actor, username string) (*auth.User, error) {

	// Phase 1: collection access
	if err := authz.SelfOrStaff(false).CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return user, nil
}

/*
Update applies a partial set of changes to an account, role included.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: Updated entity
  - error: Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Actor, username string, input UpdateInput) (*auth.User, error) {

	// Phase 1: collection access
	if err := authz.SelfOrStaff(false).CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	// Phase 2: object access (no ownership dimension under StaffOnly)
	if err := authz.SelfOrStaff(false).CheckObject(actor, authz.VerbUnsafe, user.ID); err != nil {
		return nil, err
	}

	if err := service.applyUpdate(user, input, true); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_updated_by_admin",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return user, nil
}

/*
Delete removes an account and, through the schema's cascades, everything the
account authored.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Actor, username string) error {

	// Phase 1: collection access
	if err := authz.SelfOrStaff(false).CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	// Phase 2: object access
	if err := authz.SelfOrStaff(false).CheckObject(actor, authz.VerbUnsafe, user.ID); err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.WarnContext(context, "user_deleted_by_admin",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Self Service

/*
GetMe retrieves the caller's own account.

Parameters:
  - context: context.Context
  - actor: *sec.Actor

Returns:
  - *auth.User: The caller's account
  - error: Forbidden or retrieval failures
*/
func (service *Service) GetMe(context context.Context, actor *sec.Actor) (*auth.User, error) {

	// Phase 1: any authenticated actor
	if err := authz.SelfOrStaff(true).CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

/*
UpdateMe applies a partial set of changes to the caller's own account.

Description: The role is pinned to its current value regardless of the
payload, so self-service edits can never escalate privileges.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: UpdateInput

Returns:
  - *auth.User: Updated entity
  - error: Forbidden, ValidationError or storage failures
*/
func (service *Service) UpdateMe(context context.Context, actor *sec.Actor, input UpdateInput) (*auth.User, error) {

	// Phase 1: any authenticated actor
	if err := authz.SelfOrStaff(true).CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	// Role changes are an administrative concern; silently pinned here.
	if err := service.applyUpdate(user, input, false); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_profile_updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// applyUpdate validates and folds the provided deltas into the entity.
// The role is only touched when allowRole is set.
func (service *Service) applyUpdate(user *auth.User, input UpdateInput, allowRole bool) error {
	validator := &validate.Validator{}

	if input.Username != nil {
		validator.
			Required(auth.FieldUsername, *input.Username).
			MaxLen(auth.FieldUsername, *input.Username, auth.UsernameMaxLen).
			Username(auth.FieldUsername, *input.Username).
			NotReserved(auth.FieldUsername, *input.Username, auth.ReservedUsernames...)
	}
	if input.Email != nil {
		validator.
			Required(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLen).
			Email(auth.FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.NameMaxLen)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.NameMaxLen)
	}
	if allowRole && input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role, allowedRoles...)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if allowRole && input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	return nil
}
