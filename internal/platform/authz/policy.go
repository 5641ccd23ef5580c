// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package authz defines the explicit authorization policies of the Reviewly API.

Every endpoint names exactly one policy. A policy is evaluated in two phases:

  - Collection phase: before any resource is touched, based on the actor and
    the verb class alone.
  - Object phase: after the target resource is loaded, additionally based on
    the resource owner.

Policies are pure functions of their inputs. They return an
[apperr.Forbidden] on denial (including for anonymous callers on unsafe
verbs) so that authorization failures surface uniformly as 403.
*/
package authz

import (
	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
)

// Verb classifies an operation by whether it mutates state.
type Verb int

const (
	// VerbSafe covers read-only operations (GET, HEAD).
	VerbSafe Verb = iota
	// VerbUnsafe covers mutating operations (POST, PATCH, DELETE).
	VerbUnsafe
)

// Policy is a two-phase authorization rule.
//
// CheckObject must be called with the owner of the loaded resource; policies
// without an ownership dimension ignore it.
type Policy interface {
	CheckCollection(actor *sec.Actor, verb Verb) error
	CheckObject(actor *sec.Actor, verb Verb, ownerID string) error
}

var (
	// PublicReadAdminWrite allows anyone to read and admins to write.
	PublicReadAdminWrite Policy = publicReadAdminWrite{}

	// OwnerOrStaffWrite allows anyone to read, any authenticated user to
	// create, and only the owner, a moderator, or an admin to mutate an
	// existing object.
	OwnerOrStaffWrite Policy = ownerOrStaffWrite{}

	// StaffOnly restricts every verb to admin-capable actors.
	StaffOnly Policy = staffOnly{}
)

// errDenied is the uniform policy failure.
func errDenied() error {
	return apperr.Forbidden("You do not have permission to perform this action")
}

// # Public Read, Admin Write

type publicReadAdminWrite struct{}

func (publicReadAdminWrite) CheckCollection(actor *sec.Actor, verb Verb) error {
	if verb == VerbSafe {
		return nil
	}
	if !actor.IsAdmin() {
		return errDenied()
	}
	return nil
}

func (p publicReadAdminWrite) CheckObject(actor *sec.Actor, verb Verb, _ string) error {
	// No ownership dimension; the collection rule applies to objects too.
	return p.CheckCollection(actor, verb)
}

// # Owner or Staff Write

type ownerOrStaffWrite struct{}

func (ownerOrStaffWrite) CheckCollection(actor *sec.Actor, verb Verb) error {
	if verb == VerbSafe {
		return nil
	}
	// Creation requires any authenticated actor; per-object rules come later.
	if actor == nil {
		return errDenied()
	}
	return nil
}

func (ownerOrStaffWrite) CheckObject(actor *sec.Actor, verb Verb, ownerID string) error {
	if verb == VerbSafe {
		return nil
	}
	if actor == nil {
		return errDenied()
	}
	if actor.ID == ownerID || actor.IsAdmin() || actor.IsModerator() {
		return nil
	}
	return errDenied()
}

// # Staff Only

type staffOnly struct{}

func (staffOnly) CheckCollection(actor *sec.Actor, _ Verb) error {
	if !actor.IsAdmin() {
		return errDenied()
	}
	return nil
}

func (s staffOnly) CheckObject(actor *sec.Actor, verb Verb, _ string) error {
	return s.CheckCollection(actor, verb)
}

// # Self or Staff

// SelfOrStaff returns the policy for user-collection endpoints: the
// distinguished "me" endpoints require only authentication, while addressing
// arbitrary users falls back to [StaffOnly].
func SelfOrStaff(selfAction bool) Policy {
	if selfAction {
		return selfOnly{}
	}
	return StaffOnly
}

type selfOnly struct{}

func (selfOnly) CheckCollection(actor *sec.Actor, _ Verb) error {
	if actor == nil {
		return errDenied()
	}
	return nil
}

func (s selfOnly) CheckObject(actor *sec.Actor, verb Verb, _ string) error {
	return s.CheckCollection(actor, verb)
}
