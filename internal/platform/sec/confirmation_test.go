// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buithanhtam/reviewly/internal/platform/sec"
)

/*
TestCodeIssuer_RoundTrip verifies that a freshly derived code validates
against the same account state.
*/
func TestCodeIssuer_RoundTrip(t *testing.T) {
	issuer := sec.NewCodeIssuer("test-secret")
	state := sec.AccountState{
		ID:           "user-1",
		Username:     "capy",
		Email:        "capy@example.com",
		Confirmed:    false,
		TokenVersion: 0,
	}

	code := issuer.MakeCode(state)
	require.Len(t, code, 32)

	assert.True(t, issuer.CheckCode(state, code))
}

/*
TestCodeIssuer_StateTransitionInvalidates verifies that a confirmation flip
or a token-version bump retires previously issued codes.
*/
func TestCodeIssuer_StateTransitionInvalidates(t *testing.T) {
	issuer := sec.NewCodeIssuer("test-secret")
	state := sec.AccountState{
		ID:       "user-1",
		Username: "capy",
		Email:    "capy@example.com",
	}

	code := issuer.MakeCode(state)

	// First redemption flips Confirmed and bumps TokenVersion.
	redeemed := state
	redeemed.Confirmed = true
	redeemed.TokenVersion = 1

	assert.False(t, issuer.CheckCode(redeemed, code))
	assert.True(t, issuer.CheckCode(state, code))
}

/*
TestCodeIssuer_WrongCodeRejected verifies rejection of foreign or garbage codes.
*/
func TestCodeIssuer_WrongCodeRejected(t *testing.T) {
	issuer := sec.NewCodeIssuer("test-secret")
	other := sec.NewCodeIssuer("other-secret")

	state := sec.AccountState{ID: "user-1", Username: "capy", Email: "capy@example.com"}

	assert.False(t, issuer.CheckCode(state, "not-a-code"))
	assert.False(t, issuer.CheckCode(state, other.MakeCode(state)))
}

/*
TestActor_Capabilities covers the capability predicates, including the
superuser and staff overrides.
*/
func TestActor_Capabilities(t *testing.T) {
	tests := []struct {
		name        string
		actor       *sec.Actor
		isAdmin     bool
		isModerator bool
	}{
		{"nil_actor", nil, false, false},
		{"plain_user", &sec.Actor{Role: sec.RoleUser}, false, false},
		{"moderator", &sec.Actor{Role: sec.RoleModerator}, false, true},
		{"admin_role", &sec.Actor{Role: sec.RoleAdmin}, true, false},
		{"superuser_with_user_role", &sec.Actor{Role: sec.RoleUser, Superuser: true}, true, false},
		{"staff_with_user_role", &sec.Actor{Role: sec.RoleUser, Staff: true}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAdmin, tt.actor.IsAdmin())
			assert.Equal(t, tt.isModerator, tt.actor.IsModerator())
		})
	}
}

/*
TestAuthClaims_Actor verifies the claims-to-actor mapping.
*/
func TestAuthClaims_Actor(t *testing.T) {
	claims := &sec.AuthClaims{
		UserID:    "user-1",
		Username:  "capy",
		Role:      "moderator",
		Superuser: true,
	}

	actor := claims.Actor()
	require.NotNil(t, actor)
	assert.Equal(t, "user-1", actor.ID)
	assert.Equal(t, sec.RoleModerator, actor.Role)
	assert.True(t, actor.IsAdmin())

	var empty *sec.AuthClaims
	assert.Nil(t, empty.Actor())
}
