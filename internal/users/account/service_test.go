// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/users/auth"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/pointer"
)

// # Test Doubles

// fakeUserRepository is an in-memory auth.UserRepository with the schema's
// identity uniqueness.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository(seed ...*auth.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[string]*auth.User{}}
	for _, user := range seed {
		copied := *user
		repo.users[user.ID] = &copied
	}
	return repo
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) List(_ context.Context, search string, _ pagination.Params) ([]*auth.User, int, error) {
	result := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		copied := *user
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repo.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
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

// # Harness

func seedUser(id, username string, role sec.UserRole) *auth.User {
	return &auth.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
}

func newFixture(seed ...*auth.User) (*Service, *fakeUserRepository) {
	repo := newFakeUserRepository(seed...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func adminActor() *sec.Actor {
	return &sec.Actor{ID: "admin-id", Username: "chief", Role: sec.RoleAdmin}
}

func userActor(id string) *sec.Actor {
	return &sec.Actor{ID: id, Username: "member", Role: sec.RoleUser}
}

// # Administrative Collection

func TestService_List_RequiresAdmin(t *testing.T) {
	service, _ := newFixture(seedUser("u1", "alice", sec.RoleUser))

	tests := []struct {
		name    string
		actor   *sec.Actor
		allowed bool
	}{
		{"anonymous", nil, false},
		{"plain_user", userActor("u1"), false},
		{"moderator", &sec.Actor{ID: "m1", Role: sec.RoleModerator}, false},
		{"admin", adminActor(), true},
		{"staff_flag", &sec.Actor{ID: "s1", Role: sec.RoleUser, Staff: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.List(context.Background(), tt.actor, "", pagination.Params{Page: 1, Limit: 20})
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
			}
		})
	}
}

func TestService_Create_AssignsRequestedRole(t *testing.T) {
	service, repo := newFixture()

	user, err := service.Create(context.Background(), adminActor(), CreateInput{
		Username: "new.moderator",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, user.Role)
	assert.Len(t, repo.users, 1)
	assert.False(t, user.Confirmed)
}

func TestService_Create_RejectsUnknownRole(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Create(context.Background(), adminActor(), CreateInput{
		Username: "someone",
		Email:    "someone@example.com",
		Role:     "owner",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Update_ChangesRole(t *testing.T) {
	service, repo := newFixture(seedUser("u1", "alice", sec.RoleUser))

	user, err := service.Update(context.Background(), adminActor(), "alice", UpdateInput{
		Role: pointer.To("moderator"),
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, user.Role)
	assert.Equal(t, sec.RoleModerator, repo.users["u1"].Role)
}

func TestService_Delete_UnknownUsernameIs404(t *testing.T) {
	service, _ := newFixture()

	err := service.Delete(context.Background(), adminActor(), "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Self Service

func TestService_GetMe_RequiresAuthentication(t *testing.T) {
	service, _ := newFixture(seedUser("u1", "alice", sec.RoleUser))

	_, err := service.GetMe(context.Background(), nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	user, err := service.GetMe(context.Background(), userActor("u1"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestService_UpdateMe_PinsRole(t *testing.T) {
	service, repo := newFixture(seedUser("u1", "alice", sec.RoleUser))

	// A role smuggled into the self-service payload must be ignored while the
	// legitimate profile fields still apply.
	user, err := service.UpdateMe(context.Background(), userActor("u1"), UpdateInput{
		Bio:  pointer.To("reader of long novels"),
		Role: pointer.To("admin"),
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, sec.RoleUser, repo.users["u1"].Role)
	assert.Equal(t, "reader of long novels", user.Bio)
}

func TestService_UpdateMe_ValidatesIdentityFields(t *testing.T) {
	service, _ := newFixture(seedUser("u1", "alice", sec.RoleUser))

	tests := []struct {
		name  string
		input UpdateInput
	}{
		{"reserved_username", UpdateInput{Username: pointer.To("me")}},
		{"illegal_username", UpdateInput{Username: pointer.To("not allowed!")}},
		{"malformed_email", UpdateInput{Email: pointer.To("nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateMe(context.Background(), userActor("u1"), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}
