// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/dberr"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// PostgresRepository implements [Repository] over social.review and
// social.comment.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Reviews

const reviewSelect = `
	SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.pubdate
	FROM social.review r
	JOIN users.account a ON a.id = r.authorid`

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.AuthorUsername,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	const countQuery = `SELECT COUNT(*) FROM social.review WHERE titleid = $1`
	const listQuery = reviewSelect + `
		WHERE r.titleid = $1
		ORDER BY r.id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.db.Query(context, listQuery, titleID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, page.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, titleID, reviewID string) (*Review, error) {
	const query = reviewSelect + ` WHERE r.titleid = $1 AND r.id = $2`

	review, err := scanReview(repository.db.QueryRow(context, query, titleID, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review_by_id")
	}
	return review, nil
}

func (repository *PostgresRepository) ExistsForAuthor(context context.Context, titleID, authorID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM social.review WHERE titleid = $1 AND authorid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists_for_author")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO social.review (id, titleid, authorid, text, score, pubdate)
		VALUES ($1, $2, $3, $4, $5, $6)`

	// A duplicate (titleid, authorid) pair trips the unique constraint and
	// comes back as Conflict through dberr.
	if _, err := repository.db.Exec(context, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score, review.PubDate,
	); err != nil {
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	// Author and pubdate are immutable; only the opinion itself changes.
	const query = `UPDATE social.review SET text = $2, score = $3 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID string) error {
	// Comments fall with the review through ON DELETE CASCADE.
	const query = `DELETE FROM social.review WHERE id = $1`

	tag, err := repository.db.Exec(context, query, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

// # Comments

const commentSelect = `
	SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.pubdate
	FROM social.comment c
	JOIN users.account a ON a.id = c.authorid`

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.AuthorUsername,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresRepository) ListComments(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM social.comment WHERE reviewid = $1`
	const listQuery = commentSelect + `
		WHERE c.reviewid = $1
		ORDER BY c.id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.db.Query(context, listQuery, reviewID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, page.Limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindCommentByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	const query = commentSelect + ` WHERE c.reviewid = $1 AND c.id = $2`

	comment, err := scanComment(repository.db.QueryRow(context, query, reviewID, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}
	return comment, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (id, reviewid, authorid, text, pubdate)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := repository.db.Exec(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text, comment.PubDate,
	); err != nil {
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = `UPDATE social.comment SET text = $2 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, commentID string) error {
	const query = `DELETE FROM social.comment WHERE id = $1`

	tag, err := repository.db.Exec(context, query, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
