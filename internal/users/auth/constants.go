// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

// # Identity Constraints

const (
	// UsernameMaxLen bounds account handles.
	UsernameMaxLen = 150

	// EmailMaxLen bounds registration addresses (RFC 5321 path limit).
	EmailMaxLen = 254

	// NameMaxLen bounds the optional first/last name fields.
	NameMaxLen = 150
)
