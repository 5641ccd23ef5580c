// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package category

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

type fakeRepository struct {
	categories map[string]*Category // keyed by slug
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: map[string]*Category{}}
}

func (repo *fakeRepository) List(_ context.Context, _ string, _ pagination.Params) ([]*Category, int, error) {
	result := make([]*Category, 0, len(repo.categories))
	for _, c := range repo.categories {
		copied := *c
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*Category, error) {
	if c, ok := repo.categories[slug]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Category")
}

func (repo *fakeRepository) Create(_ context.Context, category *Category) error {
	if _, ok := repo.categories[category.Slug]; ok {
		return apperr.Conflict("Resource already exists")
	}
	copied := *category
	repo.categories[category.Slug] = &copied
	return nil
}

func (repo *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := repo.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(repo.categories, slug)
	return nil
}

func newService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestService_List_IsPublic(t *testing.T) {
	service, _ := newService()

	_, _, err := service.List(context.Background(), nil, "", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
}

func TestService_Create_RequiresAdmin(t *testing.T) {
	service, _ := newService()

	tests := []struct {
		name    string
		actor   *sec.Actor
		allowed bool
	}{
		{"anonymous", nil, false},
		{"plain_user", &sec.Actor{ID: "u1", Role: sec.RoleUser}, false},
		{"moderator", &sec.Actor{ID: "m1", Role: sec.RoleModerator}, false},
		{"admin", &sec.Actor{ID: "a1", Role: sec.RoleAdmin}, true},
		{"superuser_flag", &sec.Actor{ID: "s1", Role: sec.RoleUser, Superuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.actor, "Books "+tt.name, "")
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
			}
		})
	}
}

func TestService_Create_DerivesSlugFromName(t *testing.T) {
	service, repo := newService()
	admin := &sec.Actor{ID: "a1", Role: sec.RoleAdmin}

	category, err := service.Create(context.Background(), admin, "Graphic Novels", "")
	require.NoError(t, err)

	assert.Equal(t, "graphic-novels", category.Slug)
	assert.Contains(t, repo.categories, "graphic-novels")
}

func TestService_Create_DuplicateSlugIsConflict(t *testing.T) {
	service, _ := newService()
	admin := &sec.Actor{ID: "a1", Role: sec.RoleAdmin}

	_, err := service.Create(context.Background(), admin, "Movies", "movies")
	require.NoError(t, err)

	_, err = service.Create(context.Background(), admin, "Motion Pictures", "movies")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestService_Create_RejectsBadSlug(t *testing.T) {
	service, _ := newService()
	admin := &sec.Actor{ID: "a1", Role: sec.RoleAdmin}

	_, err := service.Create(context.Background(), admin, "Movies", "Not A Slug!")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Delete_UnknownSlugIs404(t *testing.T) {
	service, _ := newService()
	admin := &sec.Actor{ID: "a1", Role: sec.RoleAdmin}

	err := service.Delete(context.Background(), admin, "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
