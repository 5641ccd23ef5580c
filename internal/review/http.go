// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	requestutil "github.com/buithanhtam/reviewly/internal/platform/request"
	"github.com/buithanhtam/reviewly/internal/platform/respond"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// Handler implements the review and comment endpoints nested under a title.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the review tree on the given router. The router is
// expected to be nested under /titles/{titleID}/reviews.
//
// # Endpoints
//   - GET    /                                  : Lists reviews (public).
//   - POST   /                                  : Creates the caller's review.
//   - GET    /{reviewID}                        : Reads a review (public).
//   - PATCH  /{reviewID}                        : Edits a review (owner/staff).
//   - DELETE /{reviewID}                        : Removes a review (owner/staff).
//   - GET    /{reviewID}/comments               : Lists comments (public).
//   - POST   /{reviewID}/comments               : Creates a comment.
//   - GET    /{reviewID}/comments/{commentID}   : Reads a comment (public).
//   - PATCH  /{reviewID}/comments/{commentID}   : Edits a comment (owner/staff).
//   - DELETE /{reviewID}/comments/{commentID}   : Removes a comment (owner/staff).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)

	router.Route("/{reviewID}", func(r chi.Router) {
		r.Get("/", handler.getReview)
		r.Patch("/", handler.updateReview)
		r.Delete("/", handler.removeReview)
		r.Put("/", handler.usePatch)

		r.Route("/comments", func(cr chi.Router) {
			cr.Get("/", handler.listComments)
			cr.Post("/", handler.createComment)

			cr.Route("/{commentID}", func(ccr chi.Router) {
				ccr.Get("/", handler.getComment)
				ccr.Patch("/", handler.updateComment)
				ccr.Delete("/", handler.removeComment)
				ccr.Put("/", handler.usePatch)
			})
		})
	})
}

// # Request Payloads

type reviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// # Review Handlers

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	page := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), requestutil.Actor(request), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), requestutil.Actor(request), titleID, ReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	review, err := handler.service.GetReview(request.Context(), requestutil.Actor(request), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), requestutil.Actor(request), titleID, reviewID, UpdateReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) removeReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	if err := handler.service.DeleteReview(request.Context(), requestutil.Actor(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Handlers

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	page := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), requestutil.Actor(request), titleID, reviewID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.Actor(request), titleID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	comment, err := handler.service.GetComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) removeComment(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	if err := handler.service.DeleteComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// usePatch rejects PUT with an explicit pointer at the supported verb.
func (handler *Handler) usePatch(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed("Use PATCH"))
}
