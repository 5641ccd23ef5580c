package genre

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/dberr"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, page pagination.Params) ([]*Genre, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM catalog.genre
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	const listQuery = `
		SELECT id, name, slug FROM catalog.genre
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.db.Query(context, listQuery, search, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0, page.Limit)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	const query = `SELECT id, name, slug FROM catalog.genre WHERE slug = $1`

	g := &Genre{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug); err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}
	return g, nil
}

func (repository *PostgresRepository) FindBySlugs(context context.Context, slugs []string) ([]*Genre, error) {
	const query = `SELECT id, name, slug FROM catalog.genre WHERE slug = ANY($1) ORDER BY id ASC`

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genres_by_slugs")
	}
	defer rows.Close()

	genres := make([]*Genre, 0, len(slugs))
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	const query = `INSERT INTO catalog.genre (id, name, slug) VALUES ($1, $2, $3)`

	if _, err := repository.db.Exec(context, query, genre.ID, genre.Name, genre.Slug); err != nil {
		return dberr.Wrap(err, "create_genre")
	}
	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	const query = `DELETE FROM catalog.genre WHERE slug = $1`

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}
