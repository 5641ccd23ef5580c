// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package category

import (
	"context"

	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// Repository defines the data access contract for categories.
type Repository interface {

	/*
		List returns a page of categories, optionally filtered by a
		case-insensitive name search, in creation order.

		Parameters:
		  - context: context.Context
		  - search: string (empty matches everything)
		  - page: pagination.Params

		Returns:
		  - []*Category: Page of categories
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, search string, page pagination.Params) ([]*Category, int, error)

	/*
		FindBySlug returns the category with the given public identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Category: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Category, error)

	/*
		Create persists a new category. Duplicate slugs surface as Conflict.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, category *Category) error

	/*
		DeleteBySlug removes a category. Titles referencing it are detached
		by the schema, not deleted.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	DeleteBySlug(context context.Context, slug string) error
}
