package genre

import (
	"context"

	"github.com/buithanhtam/reviewly/pkg/pagination"
)

type Repository interface {
	List(context context.Context, search string, page pagination.Params) ([]*Genre, int, error)
	FindBySlug(context context.Context, slug string) (*Genre, error)
	// FindBySlugs resolves a set of slugs in one round trip. Missing slugs are
	// simply absent from the result; callers decide whether that is an error.
	FindBySlugs(context context.Context, slugs []string) ([]*Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
