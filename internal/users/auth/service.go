// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/constants"
	"github.com/buithanhtam/reviewly/internal/platform/notify"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - superuser, staff: Capability overrides carried into the claims.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, superuser, staff bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance or the
// exchange logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	codeIssuer     *sec.CodeIssuer
	tokenProvider  TokenProvider
	notifier       notify.Notifier
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	codeIssuer *sec.CodeIssuer,
	tokenProv TokenProvider,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		codeIssuer:     codeIssuer,
		tokenProvider:  tokenProv,
		notifier:       notifier,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member.
//
// There is no password: the only credential the flow ever produces is the
// confirmation code delivered out of band.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup validates and persists a brand new user account, then issues a
confirmation code to the registered email address.

Description: The operation is deliberately repeatable. Submitting the same
(username, email) pair again re-issues a fresh code for the existing account
instead of failing, so a lost email never strands a registration.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created (or existing, re-issued) entity
  - error: ValidationError, Conflict (if identity is taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	// Validate the identity pair before touching storage
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Username(FieldUsername, input.Username).
		NotReserved(FieldUsername, input.Username, ReservedUsernames...).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLen).
		Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Resolve the username. An existing account with the same email is the
	// repeat-signup case: re-issue a code rather than reject.
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		if existing.Email != input.Email {
			return nil, apperr.Conflict("Username is already taken")
		}
		if err := service.issueCode(context, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_signup_email_lookup_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      sec.RoleUser,
		Confirmed: false,
		TokenVer:  0,
	}

	// Persist the user to the database. The schema's unique constraints are
	// the authority; a race past the lookups above still surfaces as Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Issue the confirmation code. A signup whose code never left the building
	// must fail loudly, so delivery errors propagate.
	if err := service.issueCode(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
issueCode derives a confirmation code from the account's current state,
stores its bcrypt hash, and delivers the plain-text code out of band.

Description: The code is bound to the account fingerprint (see
[sec.CodeIssuer]), so any later state change retires it even while the
pending record is still alive in Redis.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Hashing, storage or delivery failures
*/
func (service *Service) issueCode(context context.Context, user *User) error {

	// Derive the code from the account fingerprint
	code := service.codeIssuer.MakeCode(user.AccountState())

	// Store only the hash; the plain text exists solely in the outbound message
	codeHash, err := sec.HashCode(code)
	if err != nil {
		return fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.ID, codeHash, constants.ConfirmationCodeTTL); err != nil {
		return fmt.Errorf("auth_service_code_store_failed: %w", err)
	}

	// Deliver out of band. Failure here fails the whole operation.
	if err := service.notifier.SendConfirmationCode(context, user.Email, code); err != nil {
		return fmt.Errorf("auth_service_code_delivery_failed: %w", err)
	}

	service.logger.InfoContext(context, "confirmation_code_sent",
		slog.String("user_id", user.ID),
	)

	return nil
}

// # Token Exchange Flow

// TokenInput defines credentials for a code-for-token exchange attempt.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
IssueToken trades a (username, confirmation code) pair for a bearer token.

Description: The code must pass two independent checks: the HMAC derivation
against the account's current fingerprint, and the bcrypt hash of the
pending record. A successful exchange consumes the pending record and
advances the account's token state, so every code is single-use.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed bearer token
  - error: NotFound (unknown username), InvalidCredential (wrong or
    consumed code) or internal failures
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {

	// Validate shape first
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	// Look up the account. An unknown username is a 404: signup already
	// discloses which usernames exist, so the secrecy boundary here is the
	// code, not the handle.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound("User")
		}
		return "", fmt.Errorf("auth_service_token_lookup_failed: %w", err)
	}

	// A pending record must exist; its absence means no code was issued, it
	// expired, or it was already redeemed.
	codeHash, err := service.codeRepository.Get(context, user.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.InvalidCredential("Invalid confirmation code")
		}
		return "", fmt.Errorf("auth_service_token_code_fetch_failed: %w", err)
	}

	// Both checks must pass: the fingerprint derivation proves the code was
	// minted for this exact account state, the stored hash proves it is the
	// code this signup actually issued.
	if !service.codeIssuer.CheckCode(user.AccountState(), input.ConfirmationCode) ||
		!sec.CheckCodeHash(input.ConfirmationCode, codeHash) {
		return "", apperr.InvalidCredential("Invalid confirmation code")
	}

	// Consume the pending record before mutating state; a failure here leaves
	// the code redeemable, which is safe, unlike the reverse order.
	if err := service.codeRepository.Delete(context, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_token_code_delete_failed: %w", err)
	}

	// Flip confirmed and bump the token version in one statement, retiring
	// every code derived from the previous fingerprint.
	if err := service.userRepository.AdvanceTokenState(context, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_token_state_advance_failed: %w", err)
	}

	// Mint the bearer token
	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role),
		user.IsSuperuser, user.IsStaff,
		constants.AccessTokenTTL,
	)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "token_issued",
		slog.String("user_id", user.ID),
	)

	return token, nil
}
