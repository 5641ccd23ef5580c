// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/buithanhtam/reviewly/internal/platform/authz"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/slug"
	"github.com/buithanhtam/reviewly/pkg/uuidv7"
)

// Service orchestrates category use cases under [authz.PublicReadAdminWrite].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
List returns a page of categories.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - search: string
  - page: pagination.Params

Returns:
  - []*Category: Page of categories
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, actor *sec.Actor, search string, page pagination.Params) ([]*Category, int, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, search, page)
}

/*
Create persists a new category.

Description: An omitted slug is derived from the name. Slug uniqueness is
enforced by the schema; a duplicate surfaces as Conflict.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - name: string
  - slugValue: string (empty to derive from name)

Returns:
  - *Category: Created entity
  - error: Forbidden, ValidationError, Conflict or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, name, slugValue string) (*Category, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	// Derive the public identifier when the caller leaves it out
	if slugValue == "" {
		slugValue = slug.From(name)
	}

	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, NameMaxLen).
		Required("slug", slugValue).
		MaxLen("slug", slugValue, SlugMaxLen).
		Slug("slug", slugValue)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{ID: uuidv7.New(), Name: name, Slug: slugValue}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created", slog.String("slug", category.Slug))
	return category, nil
}

/*
Delete removes a category by slug. Titles referencing it are detached.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - slugValue: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Actor, slugValue string) error {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}

	if err := service.repo.DeleteBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_deleted", slog.String("slug", slugValue))
	return nil
}
