// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/dberr"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// PostgresRepository implements [Repository] over catalog.category.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, page pagination.Params) ([]*Category, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM catalog.category
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	const listQuery = `
		SELECT id, name, slug FROM catalog.category
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.db.Query(context, listQuery, search, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0, page.Limit)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	const query = `SELECT id, name, slug FROM catalog.category WHERE slug = $1`

	c := &Category{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `INSERT INTO catalog.category (id, name, slug) VALUES ($1, $2, $3)`

	if _, err := repository.db.Exec(context, query, category.ID, category.Name, category.Slug); err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	// Titles keep their rows: catalog.title.categoryid is ON DELETE SET NULL.
	const query = `DELETE FROM catalog.category WHERE slug = $1`

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
