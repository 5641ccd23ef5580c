// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package title manages the central aggregate of the Reviewly catalog.

A Title is a reviewable work (a film, a book, an album). It references at
most one category, carries any number of genres, and exposes a rating that
is never stored: it is the average review score projected inside the same
read query that loads the title.

# Lifecycle Rules

  - The publication year, when present, must lie strictly in the past.
  - Deleting a title cascades to its reviews and their comments.
  - Deleting the referenced category detaches the title (category becomes null).
*/
package title

import (
	"github.com/buithanhtam/reviewly/internal/catalog/category"
	"github.com/buithanhtam/reviewly/internal/catalog/genre"
)

// Title is a reviewable work in the catalog.
//
// Rating is a read-time projection: nil until the first review exists, then
// the exact average of review scores. It is never written.
type Title struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Year        *int               `json:"year"`
	Description *string            `json:"description"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genres"`
	Rating      *float64           `json:"rating"`
}

// Filter holds the parameters for a filtered title list query.
//
// All dimensions combine with AND; zero values mean "no constraint".
type Filter struct {
	Name         string // Case-insensitive substring match.
	Year         *int
	CategorySlug string
	GenreSlug    string
}

// # Field Constraints

const (
	// NameMaxLen bounds the display name.
	NameMaxLen = 256
)
