package genre

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

const (
	NameMaxLen = 256
	SlugMaxLen = 50
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, actor *sec.Actor, search string, page pagination.Params) ([]*Genre, int, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, search, page)
}

func (service *Service) Create(context context.Context, actor *sec.Actor, name, slugValue string) (*Genre, error) {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}

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

	genre := &Genre{ID: uuidv7.New(), Name: name, Slug: slugValue}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

func (service *Service) Delete(context context.Context, actor *sec.Actor, slugValue string) error {
	if err := authz.PublicReadAdminWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}
	return service.repo.DeleteBySlug(context, slugValue)
}
