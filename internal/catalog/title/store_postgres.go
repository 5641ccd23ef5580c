// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buithanhtam/reviewly/internal/catalog/category"
	"github.com/buithanhtam/reviewly/internal/catalog/genre"
	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/dberr"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// PostgresRepository implements [Repository] over catalog.title and its
// genre link table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// titleSelect is the hydrating read query. The rating is projected here, in
// the same statement that loads the row; it exists nowhere else.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       c.id, c.name, c.slug,
	       AVG(r.score)::float8
	FROM catalog.title t
	LEFT JOIN catalog.category c ON c.id = t.categoryid
	LEFT JOIN social.review r ON r.titleid = t.id`

const titleGroupBy = `
	GROUP BY t.id, t.name, t.year, t.description, c.id, c.name, c.slug`

// buildFilter renders the WHERE clause for a [Filter] with positional args.
func buildFilter(filter Filter) (string, []any) {
	clauses := []string{"TRUE"}
	args := make([]any, 0, 4)

	if filter.Name != "" {
		args = append(args, filter.Name)
		clauses = append(clauses, fmt.Sprintf("t.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		clauses = append(clauses, fmt.Sprintf("t.year = $%d", len(args)))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		clauses = append(clauses, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM catalog.titlegenre tg
				JOIN catalog.genre g ON g.id = tg.genreid
				WHERE tg.titleid = t.id AND g.slug = $%d
			)`, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// scanTitle hydrates a title row, folding the nullable category columns.
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{}
	var categoryID, categoryName, categorySlug *string

	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&categoryID,
		&categoryName,
		&categorySlug,
		&title.Rating,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &category.Category{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return title, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.categoryid
		WHERE %s`, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	listQuery := fmt.Sprintf(`%s WHERE %s %s ORDER BY t.id ASC LIMIT $%d OFFSET $%d`,
		titleSelect, where, titleGroupBy, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, page.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}
	rows.Close()

	if err := repository.hydrateGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.id = $1 %s`, titleSelect, titleGroupBy)

	title, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if err := repository.hydrateGenres(context, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_title_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	const insertQuery = `
		INSERT INTO catalog.title (id, name, year, description, categoryid)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := transaction.Exec(context, insertQuery,
		title.ID, title.Name, title.Year, title.Description, categoryID(title),
	); err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenreLinks(context, transaction, title); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_title_commit")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_title_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	const updateQuery = `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, categoryid = $5
		WHERE id = $1`

	tag, err := transaction.Exec(context, updateQuery,
		title.ID, title.Name, title.Year, title.Description, categoryID(title),
	)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	// Replace the link set wholesale; the title is the aggregate root.
	if _, err := transaction.Exec(context,
		`DELETE FROM catalog.titlegenre WHERE titleid = $1`, title.ID,
	); err != nil {
		return dberr.Wrap(err, "update_title_unlink_genres")
	}

	if err := insertGenreLinks(context, transaction, title); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "update_title_commit")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	// Reviews and comments fall with the title through ON DELETE CASCADE.
	const query = `DELETE FROM catalog.title WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// hydrateGenres attaches genre lists to the given titles in one round trip.
func (repository *PostgresRepository) hydrateGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]string, 0, len(titles))
	byID := make(map[string]*Title, len(titles))
	for _, title := range titles {
		title.Genres = make([]genre.Genre, 0)
		ids = append(ids, title.ID)
		byID[title.ID] = title
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM catalog.titlegenre tg
		JOIN catalog.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.id ASC`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "hydrate_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID string
		g := genre.Genre{}
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, g)
		}
	}

	return nil
}

// categoryID extracts the nullable foreign key from a hydrated title.
func categoryID(title *Title) *string {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}

// insertGenreLinks writes the title's genre link rows inside a transaction.
func insertGenreLinks(context context.Context, transaction pgx.Tx, title *Title) error {
	const query = `INSERT INTO catalog.titlegenre (titleid, genreid) VALUES ($1, $2)`

	for _, g := range title.Genres {
		if _, err := transaction.Exec(context, query, title.ID, g.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}
	return nil
}
