// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package review

import (
	"context"

	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// Repository defines the data access contract for reviews and their comments.
//
// Comments are managed through the same repository because they are always
// addressed in the context of a review and never independently.
type Repository interface {

	// # Reviews

	/*
		ListByTitle returns a page of reviews for a title in creation order,
		author usernames hydrated.

		Parameters:
		  - context: context.Context
		  - titleID: string
		  - page: pagination.Params

		Returns:
		  - []*Review: Page of reviews
		  - int: Total count for the title
		  - error: Retrieval failures
	*/
	ListByTitle(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error)

	/*
		FindByID returns the review only if it belongs to the given title, so
		a review can never be addressed through the wrong parent.

		Parameters:
		  - context: context.Context
		  - titleID: string
		  - reviewID: string

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, titleID, reviewID string) (*Review, error)

	/*
		ExistsForAuthor reports whether the author already reviewed the title.

		Parameters:
		  - context: context.Context
		  - titleID: string
		  - authorID: string

		Returns:
		  - bool: Prior review presence
		  - error: Retrieval failures
	*/
	ExistsForAuthor(context context.Context, titleID, authorID string) (bool, error)

	/*
		Create persists a review. A duplicate (author, title) pair trips the
		schema's unique constraint and surfaces as Conflict.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Conflict or persistence failures
	*/
	Create(context context.Context, review *Review) error

	/*
		Update persists a review's text and score. Author and publication
		date are never written.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes a review; its comments fall with it through the
		schema's cascade.

		Parameters:
		  - context: context.Context
		  - reviewID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, reviewID string) error

	// # Comments

	/*
		ListComments returns a page of comments for a review in creation
		order.

		Parameters:
		  - context: context.Context
		  - reviewID: string
		  - page: pagination.Params

		Returns:
		  - []*Comment: Page of comments
		  - int: Total count for the review
		  - error: Retrieval failures
	*/
	ListComments(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error)

	/*
		FindCommentByID returns the comment only if it belongs to the given
		review.

		Parameters:
		  - context: context.Context
		  - reviewID: string
		  - commentID: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindCommentByID(context context.Context, reviewID, commentID string) (*Comment, error)

	/*
		CreateComment persists a comment on a review.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		UpdateComment persists a comment's text. Author and publication date
		are never written.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	UpdateComment(context context.Context, comment *Comment) error

	/*
		DeleteComment removes a comment.

		Parameters:
		  - context: context.Context
		  - commentID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	DeleteComment(context context.Context, commentID string) error
}

// TitleChecker is the slice of the catalog contract this service needs: the
// ability to 404 on a missing parent without loading it.
type TitleChecker interface {
	Exists(context context.Context, id string) (bool, error)
}
