// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository mirroring the schema's
// unique constraints on username and email.
type fakeUserRepository struct {
	users map[string]*User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) List(_ context.Context, _ string, _ pagination.Params) ([]*User, int, error) {
	result := make([]*User, 0, len(repo.users))
	for _, user := range repo.users {
		copied := *user
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	for _, existing := range repo.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

func (repo *fakeUserRepository) AdvanceTokenState(_ context.Context, id string) error {
	user, ok := repo.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Confirmed = true
	user.TokenVer++
	return nil
}

// fakeCodeRepository is an in-memory CodeRepository. TTLs are ignored.
type fakeCodeRepository struct {
	hashes map[string]string // keyed by userID
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{hashes: map[string]string{}}
}

func (repo *fakeCodeRepository) Set(_ context.Context, userID, codeHash string, _ time.Duration) error {
	repo.hashes[userID] = codeHash
	return nil
}

func (repo *fakeCodeRepository) Get(_ context.Context, userID string) (string, error) {
	if hash, ok := repo.hashes[userID]; ok {
		return hash, nil
	}
	return "", apperr.NotFound("Confirmation code is invalid or expired")
}

func (repo *fakeCodeRepository) Delete(_ context.Context, userID string) error {
	delete(repo.hashes, userID)
	return nil
}

// fakeNotifier records every delivered code and can be forced to fail.
type fakeNotifier struct {
	sent map[string][]string // email -> codes, in delivery order
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: map[string][]string{}}
}

func (notifier *fakeNotifier) SendConfirmationCode(_ context.Context, email, code string) error {
	if notifier.err != nil {
		return notifier.err
	}
	notifier.sent[email] = append(notifier.sent[email], code)
	return nil
}

func (notifier *fakeNotifier) lastCode(email string) string {
	codes := notifier.sent[email]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

// fakeTokenProvider mints predictable tokens and records the last claims.
type fakeTokenProvider struct {
	lastRole      string
	lastSuperuser bool
	lastStaff     bool
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, username, role string, superuser, staff bool, _ time.Duration) (string, error) {
	provider.lastRole = role
	provider.lastSuperuser = superuser
	provider.lastStaff = staff
	return "signed-token-for-" + username, nil
}

// # Harness

type authFixture struct {
	service  *Service
	users    *fakeUserRepository
	codes    *fakeCodeRepository
	notifier *fakeNotifier
	tokens   *fakeTokenProvider
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepository()
	codes := newFakeCodeRepository()
	notifier := newFakeNotifier()
	tokens := &fakeTokenProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewService(users, codes, sec.NewCodeIssuer("test-secret"), tokens, notifier, logger)

	return &authFixture{
		service:  service,
		users:    users,
		codes:    codes,
		notifier: notifier,
		tokens:   tokens,
	}
}

// # Signup

func TestService_Signup_CreatesAccountAndSendsCode(t *testing.T) {
	fixture := newAuthFixture()

	user, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "capote",
		Email:    "capote@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "capote", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.Confirmed)

	// A code left the building and its hash is pending.
	assert.NotEmpty(t, fixture.notifier.lastCode("capote@example.com"))
	assert.Contains(t, fixture.codes.hashes, user.ID)
}

func TestService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"reserved_me", "me", "me@example.com"},
		{"reserved_admin", "Admin", "admin@example.com"},
		{"illegal_characters", "bad name!", "bad@example.com"},
		{"username_too_long", longString(151), "long@example.com"},
		{"missing_email", "valid.name", ""},
		{"malformed_email", "valid.name", "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAuthFixture()

			_, err := fixture.service.Signup(context.Background(), SignupInput{
				Username: tt.username,
				Email:    tt.email,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func longString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 'a'
	}
	return string(buf)
}

func TestService_Signup_Conflicts(t *testing.T) {
	fixture := newAuthFixture()

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "harper",
		Email:    "harper@example.com",
	})
	require.NoError(t, err)

	t.Run("username_taken_by_other_email", func(t *testing.T) {
		_, err := fixture.service.Signup(context.Background(), SignupInput{
			Username: "harper",
			Email:    "other@example.com",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Username is already taken", err.Error())
	})

	t.Run("email_taken_by_other_username", func(t *testing.T) {
		_, err := fixture.service.Signup(context.Background(), SignupInput{
			Username: "other.name",
			Email:    "harper@example.com",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Email is already registered", err.Error())
	})
}

func TestService_Signup_RepeatReissuesCode(t *testing.T) {
	fixture := newAuthFixture()
	input := SignupInput{Username: "flannery", Email: "flannery@example.com"}

	first, err := fixture.service.Signup(context.Background(), input)
	require.NoError(t, err)

	second, err := fixture.service.Signup(context.Background(), input)
	require.NoError(t, err)

	// Same account, no duplicate row, two delivered codes.
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fixture.users.users, 1)
	assert.Len(t, fixture.notifier.sent["flannery@example.com"], 2)
}

func TestService_Signup_DeliveryFailurePropagates(t *testing.T) {
	fixture := newAuthFixture()
	fixture.notifier.err = errors.New("relay unreachable")

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "eudora",
		Email:    "eudora@example.com",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "auth_service_code_delivery_failed")
}

// # Token Exchange

func TestService_IssueToken_Succeeds(t *testing.T) {
	fixture := newAuthFixture()

	user, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "walker",
		Email:    "walker@example.com",
	})
	require.NoError(t, err)

	code := fixture.notifier.lastCode("walker@example.com")
	require.NotEmpty(t, code)

	token, err := fixture.service.IssueToken(context.Background(), TokenInput{
		Username:         "walker",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token-for-walker", token)
	assert.Equal(t, string(sec.RoleUser), fixture.tokens.lastRole)

	// The exchange consumed the pending record and advanced the account state.
	assert.NotContains(t, fixture.codes.hashes, user.ID)
	stored := fixture.users.users[user.ID]
	assert.True(t, stored.Confirmed)
	assert.Equal(t, 1, stored.TokenVer)
}

func TestService_IssueToken_RejectsBadCredentials(t *testing.T) {
	fixture := newAuthFixture()

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "toni",
		Email:    "toni@example.com",
	})
	require.NoError(t, err)

	// An unknown username is a 404 — signup already discloses handle
	// existence — while a wrong code against a real account stays a
	// credential failure.
	tests := []struct {
		name     string
		username string
		code     string
		wantCode string
	}{
		{"unknown_username", "nobody", "whatever-code", "NOT_FOUND"},
		{"wrong_code", "toni", "definitely-not-the-code", "INVALID_CREDENTIAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.IssueToken(context.Background(), TokenInput{
				Username:         tt.username,
				ConfirmationCode: tt.code,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestService_IssueToken_CodesAreSingleUse(t *testing.T) {
	fixture := newAuthFixture()

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "zora",
		Email:    "zora@example.com",
	})
	require.NoError(t, err)

	code := fixture.notifier.lastCode("zora@example.com")

	_, err = fixture.service.IssueToken(context.Background(), TokenInput{
		Username:         "zora",
		ConfirmationCode: code,
	})
	require.NoError(t, err)

	// Replaying the redeemed code must fail: the pending record is gone and
	// the fingerprint has moved on.
	_, err = fixture.service.IssueToken(context.Background(), TokenInput{
		Username:         "zora",
		ConfirmationCode: code,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CREDENTIAL", ae.Code)
}

func TestService_IssueToken_CarriesOverrideFlags(t *testing.T) {
	fixture := newAuthFixture()

	user, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "octavia",
		Email:    "octavia@example.com",
	})
	require.NoError(t, err)

	// Flag the account out of band, then re-issue a code for the new state.
	stored := fixture.users.users[user.ID]
	stored.IsSuperuser = true
	require.NoError(t, fixture.service.issueCode(context.Background(), stored))

	code := fixture.notifier.lastCode("octavia@example.com")
	_, err = fixture.service.IssueToken(context.Background(), TokenInput{
		Username:         "octavia",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.True(t, fixture.tokens.lastSuperuser)
}
