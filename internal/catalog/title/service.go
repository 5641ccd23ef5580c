// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buithanhtam/reviewly/internal/catalog/genre"
	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/authz"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/slice"
	"github.com/buithanhtam/reviewly/pkg/uuidv7"
)

// Service orchestrates title use cases under [authz.PublicReadAdminWrite].
type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// # Read Operations

/*
List returns a filtered page of titles.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Title: Page of titles with rating projections
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, actor *sec.Actor, filter Filter, page pagination.Params) ([]*Title, int, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, page)
}

/*
Get returns a single fully hydrated title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - id: string

Returns:
  - *Title: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, actor *sec.Actor, id string) (*Title, error) {
	if err := authz.PublicReadAdminWrite.CheckObject(actor, authz.VerbSafe, ""); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, id)
}

// # Write Operations

// CreateInput holds the fields for a new title. Category and genres are
// referenced by their public slugs.
type CreateInput struct {
	Name         string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

/*
Create validates, resolves references, and persists a new title.

Description: An unknown category or genre slug is a validation error, not a
404: the title is the resource being addressed here, and the slugs are just
payload fields.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateInput

Returns:
  - *Title: Created entity (rating nil by definition)
  - error: Forbidden, ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*Title, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, NameMaxLen)
	if input.Year != nil {
		validator.PastYear("year", *input.Year)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	title := &Title{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if err := service.resolveReferences(context, title, input.CategorySlug, input.GenreSlugs); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, fmt.Errorf("title_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "title_created",
		slog.String("title_id", title.ID),
		slog.String("actor_id", actor.ID),
	)

	return title, nil
}

// UpdateInput holds the mutable subset of title fields. Nil means "leave
// unchanged"; a nil GenreSlugs keeps the existing links.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

/*
Update applies a partial edit to a title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - id: string
  - input: UpdateInput

Returns:
  - *Title: Updated, re-hydrated entity
  - error: Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Actor, id string, input UpdateInput) (*Title, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Phase 2 is a formality for this policy but keeps every write symmetric.
	if err := authz.PublicReadAdminWrite.CheckObject(actor, authz.VerbUnsafe, ""); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.
			Required("name", *input.Name).
			MaxLen("name", *input.Name, NameMaxLen)
	}
	if input.Year != nil {
		validator.PastYear("year", *input.Year)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}

	genreSlugs := input.GenreSlugs
	if genreSlugs == nil {
		// Preserve current links when the payload omits genres entirely.
		genreSlugs = slice.Map(title.Genres, func(g genre.Genre) string { return g.Slug })
	}

	categorySlug := input.CategorySlug
	if categorySlug == nil && title.Category != nil {
		categorySlug = &title.Category.Slug
	}

	if err := service.resolveReferences(context, title, categorySlug, genreSlugs); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, title); err != nil {
		return nil, fmt.Errorf("title_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "title_updated",
		slog.String("title_id", title.ID),
		slog.String("actor_id", actor.ID),
	)

	// Re-read so the response carries the live rating projection.
	return service.repo.FindByID(context, title.ID)
}

/*
Delete removes a title and, through the schema's cascades, its reviews and
their comments.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - id: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Actor, id string) error {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "title_deleted",
		slog.String("title_id", id),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// resolveReferences swaps slug references for hydrated entities on the
// title. Unknown slugs fail as validation errors naming the offending field.
func (service *Service) resolveReferences(context context.Context, title *Title, categorySlug *string, genreSlugs []string) error {
	title.Category = nil
	if categorySlug != nil && *categorySlug != "" {
		resolved, err := service.categories.FindBySlug(context, *categorySlug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return validate.RequiredError("category", fmt.Sprintf("Unknown category %q", *categorySlug))
			}
			return fmt.Errorf("title_service_resolve_category_failed: %w", err)
		}
		title.Category = resolved
	}

	title.Genres = make([]genre.Genre, 0, len(genreSlugs))
	if len(genreSlugs) == 0 {
		return nil
	}

	resolved, err := service.genres.FindBySlugs(context, genreSlugs)
	if err != nil {
		return fmt.Errorf("title_service_resolve_genres_failed: %w", err)
	}

	found := make(map[string]*genre.Genre, len(resolved))
	for _, g := range resolved {
		found[g.Slug] = g
	}

	var missing []string
	for _, slug := range genreSlugs {
		g, ok := found[slug]
		if !ok {
			missing = append(missing, slug)
			continue
		}
		title.Genres = append(title.Genres, *g)
	}
	if len(missing) > 0 {
		return validate.RequiredError("genre", fmt.Sprintf("Unknown genres: %s", strings.Join(missing, ", ")))
	}

	return nil
}
