// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	requestutil "github.com/buithanhtam/reviewly/internal/platform/request"
	"github.com/buithanhtam/reviewly/internal/platform/respond"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// Handler implements the /titles HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the title routes on the given router.
//
// # Endpoints
//   - GET    /           : Lists titles with filters (public).
//   - POST   /           : Creates a title (admin).
//   - GET    /{titleID}  : Reads a title with its rating (public).
//   - PATCH  /{titleID}  : Edits a title (admin).
//   - DELETE /{titleID}  : Removes a title and its review tree (admin).
//
// The review sub-resource is mounted under /{titleID}/reviews by the server.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{titleID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Patch("/", handler.update)
		r.Delete("/", handler.remove)
		r.Put("/", handler.usePatch)
	})
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// filterFromQuery parses the list filter dimensions from the query string.
func filterFromQuery(request *http.Request) Filter {
	values := request.URL.Query()

	filter := Filter{
		Name:         values.Get("name"),
		CategorySlug: values.Get("category"),
		GenreSlug:    values.Get("genre"),
	}

	if raw := values.Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	return filter
}

/*
List returns a filtered page of titles.

GET /api/v1/titles?name=&year=&category=&genre=&page=&limit=

Response:
  - 200: Paginated []Title with rating projections
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	titles, total, err := handler.service.List(request.Context(), requestutil.Actor(request), filterFromQuery(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
Create persists a new title.

POST /api/v1/titles

Response:
  - 201: Title: Created entity
  - 400: ErrInvalidJSON: Bad input, future year, or unknown category/genre slug
  - 403: ErrForbidden: Caller lacks administrative capability
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Create(request.Context(), requestutil.Actor(request), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
Get returns a single title with its live rating.

GET /api/v1/titles/{titleID}

Response:
  - 200: Title
  - 404: ErrNotFound: No such title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	title, err := handler.service.Get(request.Context(), requestutil.Actor(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Update applies a partial edit to a title.

PATCH /api/v1/titles/{titleID}

Response:
  - 200: Title: Updated entity
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller lacks administrative capability
  - 404: ErrNotFound: No such title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Update(request.Context(), requestutil.Actor(request), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Remove deletes a title together with its reviews and comments.

DELETE /api/v1/titles/{titleID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller lacks administrative capability
  - 404: ErrNotFound: No such title
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	if err := handler.service.Delete(request.Context(), requestutil.Actor(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// usePatch rejects PUT with an explicit pointer at the supported verb.
func (handler *Handler) usePatch(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed("Use PATCH"))
}
