// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/authz"
	"github.com/buithanhtam/reviewly/internal/platform/sec"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
	"github.com/buithanhtam/reviewly/pkg/uuidv7"
)

// Service orchestrates review and comment use cases under
// [authz.OwnerOrStaffWrite].
type Service struct {
	repo   Repository
	titles TitleChecker
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, titles TitleChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// requireTitle 404s when the parent title is absent. Every operation in this
// package starts here: a review URL under a dead title must not leak whether
// the review ID ever existed.
func (service *Service) requireTitle(context context.Context, titleID string) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return fmt.Errorf("review_service_title_check_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// # Reviews

/*
ListReviews returns a page of reviews for a title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - titleID: string
  - page: pagination.Params

Returns:
  - []*Review: Page of reviews
  - int: Total count
  - error: NotFound (missing title) or retrieval failures
*/
func (service *Service) ListReviews(context context.Context, actor *sec.Actor, titleID string, page pagination.Params) ([]*Review, int, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, page)
}

/*
GetReview returns a single review under a title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - titleID: string
  - reviewID: string

Returns:
  - *Review: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) GetReview(context context.Context, actor *sec.Actor, titleID, reviewID string) (*Review, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, titleID, reviewID)
}

// ReviewInput holds the caller-supplied fields of a review. Author and
// publication date are server-assigned.
type ReviewInput struct {
	Text  string
	Score int
}

/*
CreateReview persists a review authored by the acting user.

Description: The pre-check turns the common duplicate case into a friendly
Conflict; the schema's unique constraint remains the authority and catches
the race the pre-check cannot.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - input: ReviewInput

Returns:
  - *Review: Created entity
  - error: Forbidden, NotFound, ValidationError, Conflict or storage failures
*/
func (service *Service) CreateReview(context context.Context, actor *sec.Actor, titleID string, input ReviewInput) (*Review, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("text", input.Text).
		Range("score", input.Score, ScoreMin, ScoreMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	already, err := service.repo.ExistsForAuthor(context, titleID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("review_service_duplicate_check_failed: %w", err)
	}
	if already {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	review := &Review{
		ID:             uuidv7.New(),
		TitleID:        titleID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Text:           input.Text,
		Score:          input.Score,
		PubDate:        time.Now(),
	}

	// Conflict can still surface here if a concurrent request won the race.
	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
		slog.String("author_id", actor.ID),
	)

	return review, nil
}

// UpdateReviewInput holds the mutable subset of review fields.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial edit to a review.

Description: Only the owner, a moderator, or an admin may edit. The author
and publication date survive every edit untouched.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - reviewID: string
  - input: UpdateReviewInput

Returns:
  - *Review: Updated entity
  - error: Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) UpdateReview(context context.Context, actor *sec.Actor, titleID, reviewID string, input UpdateReviewInput) (*Review, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	// Phase 2: ownership
	if err := authz.OwnerOrStaffWrite.CheckObject(actor, authz.VerbUnsafe, review.AuthorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required("text", *input.Text)
	}
	if input.Score != nil {
		validator.Range("score", *input.Score, ScoreMin, ScoreMax)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
DeleteReview removes a review and its comments.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - reviewID: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) DeleteReview(context context.Context, actor *sec.Actor, titleID, reviewID string) error {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return err
	}

	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	// Phase 2: ownership
	if err := authz.OwnerOrStaffWrite.CheckObject(actor, authz.VerbUnsafe, review.AuthorID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, review.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "review_deleted",
		slog.String("review_id", review.ID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Comments

// requireReview 404s when the parent review is absent under the title.
func (service *Service) requireReview(context context.Context, titleID, reviewID string) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, titleID, reviewID)
}

/*
ListComments returns a page of comments for a review.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - titleID: string
  - reviewID: string
  - page: pagination.Params

Returns:
  - []*Comment: Page of comments
  - int: Total count
  - error: NotFound or retrieval failures
*/
func (service *Service) ListComments(context context.Context, actor *sec.Actor, titleID, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, 0, err
	}
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, review.ID, page)
}

/*
GetComment returns a single comment under a review.

Parameters:
  - context: context.Context
  - actor: *sec.Actor (may be nil; reads are public)
  - titleID: string
  - reviewID: string
  - commentID: string

Returns:
  - *Comment: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) GetComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string) (*Comment, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbSafe); err != nil {
		return nil, err
	}
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return service.repo.FindCommentByID(context, review.ID, commentID)
}

/*
CreateComment persists a comment authored by the acting user.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - reviewID: string
  - text: string

Returns:
  - *Comment: Created entity
  - error: Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) CreateComment(context context.Context, actor *sec.Actor, titleID, reviewID, text string) (*Comment, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("text", text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:             uuidv7.New(),
		ReviewID:       review.ID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Text:           text,
		PubDate:        time.Now(),
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", review.ID),
	)

	return comment, nil
}

/*
UpdateComment edits a comment's text.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - reviewID: string
  - commentID: string
  - text: string

Returns:
  - *Comment: Updated entity
  - error: Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) UpdateComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID, text string) (*Comment, error) {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return nil, err
	}
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := service.repo.FindCommentByID(context, review.ID, commentID)
	if err != nil {
		return nil, err
	}

	// Phase 2: ownership
	if err := authz.OwnerOrStaffWrite.CheckObject(actor, authz.VerbUnsafe, comment.AuthorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("text", text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
DeleteComment removes a comment.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string
  - reviewID: string
  - commentID: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) DeleteComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string) error {
	if err := authz.OwnerOrStaffWrite.CheckCollection(actor, authz.VerbUnsafe); err != nil {
		return err
	}
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	comment, err := service.repo.FindCommentByID(context, review.ID, commentID)
	if err != nil {
		return err
	}

	// Phase 2: ownership
	if err := authz.OwnerOrStaffWrite.CheckObject(actor, authz.VerbUnsafe, comment.AuthorID); err != nil {
		return err
	}

	return service.repo.DeleteComment(context, comment.ID)
}
