// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buithanhtam/reviewly/internal/platform/authz"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
)

var (
	anonymous *sec.Actor
	user      = &sec.Actor{ID: "u1", Role: sec.RoleUser}
	otherUser = &sec.Actor{ID: "u2", Role: sec.RoleUser}
	moderator = &sec.Actor{ID: "m1", Role: sec.RoleModerator}
	admin     = &sec.Actor{ID: "a1", Role: sec.RoleAdmin}
	superuser = &sec.Actor{ID: "s1", Role: sec.RoleUser, Superuser: true}
	staff     = &sec.Actor{ID: "s2", Role: sec.RoleUser, Staff: true}
)

/*
TestPublicReadAdminWrite covers catalog-style endpoints: open reads,
admin-capable writes, and 403 for anonymous unsafe verbs.
*/
func TestPublicReadAdminWrite(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.Actor
		verb    authz.Verb
		allowed bool
	}{
		{"anonymous_read", anonymous, authz.VerbSafe, true},
		{"anonymous_write", anonymous, authz.VerbUnsafe, false},
		{"user_read", user, authz.VerbSafe, true},
		{"user_write", user, authz.VerbUnsafe, false},
		{"moderator_write", moderator, authz.VerbUnsafe, false},
		{"admin_write", admin, authz.VerbUnsafe, true},
		{"superuser_write", superuser, authz.VerbUnsafe, true},
		{"staff_write", staff, authz.VerbUnsafe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.PublicReadAdminWrite.CheckCollection(tt.actor, tt.verb)
			assert.Equal(t, tt.allowed, err == nil)

			// Object phase mirrors the collection phase for this policy.
			err = authz.PublicReadAdminWrite.CheckObject(tt.actor, tt.verb, "irrelevant")
			assert.Equal(t, tt.allowed, err == nil)
		})
	}
}

/*
TestOwnerOrStaffWrite covers review/comment-style endpoints: anyone reads,
authenticated users create, and only the owner or staff mutate existing
objects.
*/
func TestOwnerOrStaffWrite(t *testing.T) {
	t.Run("collection", func(t *testing.T) {
		assert.NoError(t, authz.OwnerOrStaffWrite.CheckCollection(anonymous, authz.VerbSafe))
		assert.Error(t, authz.OwnerOrStaffWrite.CheckCollection(anonymous, authz.VerbUnsafe))
		assert.NoError(t, authz.OwnerOrStaffWrite.CheckCollection(user, authz.VerbUnsafe))
	})

	t.Run("object", func(t *testing.T) {
		tests := []struct {
			name    string
			actor   *sec.Actor
			verb    authz.Verb
			owner   string
			allowed bool
		}{
			{"anonymous_read", anonymous, authz.VerbSafe, "u1", true},
			{"anonymous_write", anonymous, authz.VerbUnsafe, "u1", false},
			{"owner_write", user, authz.VerbUnsafe, "u1", true},
			{"non_owner_write", otherUser, authz.VerbUnsafe, "u1", false},
			{"moderator_write", moderator, authz.VerbUnsafe, "u1", true},
			{"admin_write", admin, authz.VerbUnsafe, "u1", true},
			{"superuser_write", superuser, authz.VerbUnsafe, "u1", true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := authz.OwnerOrStaffWrite.CheckObject(tt.actor, tt.verb, tt.owner)
				assert.Equal(t, tt.allowed, err == nil)
			})
		}
	})
}

/*
TestStaffOnly covers the user-administration endpoints: every verb,
including reads, needs admin capability.
*/
func TestStaffOnly(t *testing.T) {
	assert.Error(t, authz.StaffOnly.CheckCollection(anonymous, authz.VerbSafe))
	assert.Error(t, authz.StaffOnly.CheckCollection(user, authz.VerbSafe))
	assert.Error(t, authz.StaffOnly.CheckCollection(moderator, authz.VerbUnsafe))
	assert.NoError(t, authz.StaffOnly.CheckCollection(admin, authz.VerbSafe))
	assert.NoError(t, authz.StaffOnly.CheckCollection(superuser, authz.VerbUnsafe))
	assert.NoError(t, authz.StaffOnly.CheckCollection(staff, authz.VerbUnsafe))
}

/*
TestSelfOrStaff verifies the split between the "me" endpoints and staff-only
user administration.
*/
func TestSelfOrStaff(t *testing.T) {
	me := authz.SelfOrStaff(true)
	assert.Error(t, me.CheckCollection(anonymous, authz.VerbSafe))
	assert.NoError(t, me.CheckCollection(user, authz.VerbUnsafe))

	others := authz.SelfOrStaff(false)
	assert.Error(t, others.CheckCollection(user, authz.VerbSafe))
	assert.NoError(t, others.CheckCollection(admin, authz.VerbSafe))
}
