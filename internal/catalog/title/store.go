// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package title

import (
	"context"

	"github.com/buithanhtam/reviewly/internal/catalog/category"
	"github.com/buithanhtam/reviewly/internal/catalog/genre"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// Repository defines the data access contract for titles.
//
// Implementations must compute the rating projection inside the read queries
// themselves; there is no stored rating column to fall back on.
type Repository interface {

	/*
		List returns a filtered page of titles in creation order, each with
		its category, genres and rating projection hydrated.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - page: pagination.Params

		Returns:
		  - []*Title: Page of titles
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error)

	/*
		FindByID returns a fully hydrated title.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Title: Hydrated entity with rating projection
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Title, error)

	/*
		Exists reports whether a title row is present. Used by dependents
		(the review aggregate) that must 404 on a missing parent without
		paying for full hydration.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: Row presence
		  - error: Retrieval failures
	*/
	Exists(context context.Context, id string) (bool, error)

	/*
		Create persists a title and its genre links atomically.

		Parameters:
		  - context: context.Context
		  - title: *Title (Category/Genres already resolved to IDs)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, title *Title) error

	/*
		Update persists a title's fields and replaces its genre links
		atomically.

		Parameters:
		  - context: context.Context
		  - title: *Title

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, title *Title) error

	/*
		Delete removes a title. Its reviews and their comments fall with it
		through the schema's cascading foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error
}

// CategoryResolver is the slice of the category contract this service needs.
type CategoryResolver interface {
	FindBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver is the slice of the genre contract this service needs.
type GenreResolver interface {
	FindBySlugs(context context.Context, slugs []string) ([]*genre.Genre, error)
}
