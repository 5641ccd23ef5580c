// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package category manages the slug-keyed top-level classification of titles.

A title belongs to at most one category ("Movies", "Books", ...). Deleting a
category detaches its titles rather than removing them; the schema's
ON DELETE SET NULL carries that rule.
*/
package category

// Category is a slug-keyed classification bucket.
//
// The slug is the public identifier used in URLs and filters; the UUID
// primary key never leaves the API.
type Category struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Field Constraints

const (
	// NameMaxLen bounds the display name.
	NameMaxLen = 256

	// SlugMaxLen bounds the public identifier.
	SlugMaxLen = 50
)
