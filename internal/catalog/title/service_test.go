// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package title

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buithanhtam/reviewly/internal/catalog/category"
	"github.com/buithanhtam/reviewly/internal/catalog/genre"
	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	titles map[string]*Title
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{titles: map[string]*Title{}}
}

func (repo *fakeRepository) List(_ context.Context, _ Filter, _ pagination.Params) ([]*Title, int, error) {
	result := make([]*Title, 0, len(repo.titles))
	for _, title := range repo.titles {
		copied := *title
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Title, error) {
	if title, ok := repo.titles[id]; ok {
		copied := *title
		return &copied, nil
	}
	return nil, apperr.NotFound("Title")
}

func (repo *fakeRepository) Exists(_ context.Context, id string) (bool, error) {
	_, ok := repo.titles[id]
	return ok, nil
}

func (repo *fakeRepository) Create(_ context.Context, title *Title) error {
	copied := *title
	repo.titles[title.ID] = &copied
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, title *Title) error {
	if _, ok := repo.titles[title.ID]; !ok {
		return apperr.NotFound("Title")
	}
	copied := *title
	repo.titles[title.ID] = &copied
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(repo.titles, id)
	return nil
}

type fakeCategoryResolver struct {
	categories map[string]*category.Category
}

func (resolver *fakeCategoryResolver) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := resolver.categories[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

type fakeGenreResolver struct {
	genres map[string]*genre.Genre
}

func (resolver *fakeGenreResolver) FindBySlugs(_ context.Context, slugs []string) ([]*genre.Genre, error) {
	var result []*genre.Genre
	for _, slug := range slugs {
		if g, ok := resolver.genres[slug]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}

// # Harness

func newFixture() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	categories := &fakeCategoryResolver{categories: map[string]*category.Category{
		"movies": {ID: "cat-1", Name: "Movies", Slug: "movies"},
	}}
	genres := &fakeGenreResolver{genres: map[string]*genre.Genre{
		"drama":  {ID: "gen-1", Name: "Drama", Slug: "drama"},
		"comedy": {ID: "gen-2", Name: "Comedy", Slug: "comedy"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, categories, genres, logger), repo
}

func admin() *sec.Actor {
	return &sec.Actor{ID: "admin-id", Role: sec.RoleAdmin}
}

// # Create

func TestService_Create_RequiresAdmin(t *testing.T) {
	service, _ := newFixture()

	tests := []struct {
		name  string
		actor *sec.Actor
	}{
		{"anonymous", nil},
		{"plain_user", &sec.Actor{ID: "u1", Role: sec.RoleUser}},
		{"moderator", &sec.Actor{ID: "m1", Role: sec.RoleModerator}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.actor, CreateInput{Name: "Dune"})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "FORBIDDEN", ae.Code)
		})
	}
}

func TestService_Create_RejectsCurrentAndFutureYears(t *testing.T) {
	service, _ := newFixture()

	tests := []struct {
		name string
		year int
	}{
		{"current_year", time.Now().Year()},
		{"future_year", time.Now().Year() + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), admin(), CreateInput{
				Name: "Unreleased",
				Year: pointer.To(tt.year),
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestService_Create_AcceptsPastYearAndNilYear(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Create(context.Background(), admin(), CreateInput{
		Name: "Classic",
		Year: pointer.To(time.Now().Year() - 1),
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), admin(), CreateInput{Name: "Undated"})
	require.NoError(t, err)
}

func TestService_Create_ResolvesReferences(t *testing.T) {
	service, repo := newFixture()

	title, err := service.Create(context.Background(), admin(), CreateInput{
		Name:         "Dune",
		Year:         pointer.To(2021),
		CategorySlug: pointer.To("movies"),
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)

	require.NotNil(t, title.Category)
	assert.Equal(t, "movies", title.Category.Slug)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, "drama", title.Genres[0].Slug)
	assert.Nil(t, title.Rating)
	assert.Contains(t, repo.titles, title.ID)
}

func TestService_Create_UnknownReferencesAreValidationErrors(t *testing.T) {
	service, _ := newFixture()

	t.Run("unknown_category", func(t *testing.T) {
		_, err := service.Create(context.Background(), admin(), CreateInput{
			Name:         "Dune",
			CategorySlug: pointer.To("podcasts"),
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, "category", ae.Details[0].Field)
	})

	t.Run("unknown_genre", func(t *testing.T) {
		_, err := service.Create(context.Background(), admin(), CreateInput{
			Name:       "Dune",
			GenreSlugs: []string{"drama", "noir"},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, "genre", ae.Details[0].Field)
	})
}

// # Update

func TestService_Update_PreservesOmittedGenres(t *testing.T) {
	service, _ := newFixture()

	created, err := service.Create(context.Background(), admin(), CreateInput{
		Name:       "Dune",
		GenreSlugs: []string{"drama", "comedy"},
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), admin(), created.ID, UpdateInput{
		Name: pointer.To("Dune: Part One"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune: Part One", updated.Name)
	assert.Len(t, updated.Genres, 2)
}

func TestService_Update_ReplacesGenresWhenProvided(t *testing.T) {
	service, _ := newFixture()

	created, err := service.Create(context.Background(), admin(), CreateInput{
		Name:       "Dune",
		GenreSlugs: []string{"drama", "comedy"},
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), admin(), created.ID, UpdateInput{
		GenreSlugs: []string{"drama"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "drama", updated.Genres[0].Slug)
}

func TestService_Update_UnknownTitleIs404(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Update(context.Background(), admin(), "missing-id", UpdateInput{
		Name: pointer.To("Renamed"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Delete

func TestService_Delete_RequiresAdmin(t *testing.T) {
	service, repo := newFixture()

	created, err := service.Create(context.Background(), admin(), CreateInput{Name: "Dune"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), &sec.Actor{ID: "u1", Role: sec.RoleUser}, created.ID)
	require.Error(t, err)
	assert.Contains(t, repo.titles, created.ID)

	require.NoError(t, service.Delete(context.Background(), admin(), created.ID))
	assert.NotContains(t, repo.titles, created.ID)
}
