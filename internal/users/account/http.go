// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	requestutil "github.com/buithanhtam/reviewly/internal/platform/request"
	"github.com/buithanhtam/reviewly/internal/platform/respond"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
	"github.com/buithanhtam/reviewly/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /users HTTP endpoints.
//
// # Security
//
// Authentication middleware only establishes WHO is calling; every decision
// about WHAT they may do is taken by the service's policies. Anonymous
// callers therefore reach the service and are denied there, uniformly, with
// a 403.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with user-collection routes.
//
// # Endpoints
//   - GET    /            : Lists accounts (staff).
//   - POST   /            : Creates an account (staff).
//   - GET    /me          : The caller's own account.
//   - PATCH  /me          : Edits the caller's own account (role pinned).
//   - GET    /{username}  : Reads an account (staff).
//   - PATCH  /{username}  : Edits an account, role included (staff).
//   - DELETE /{username}  : Removes an account (staff).
//
// PUT is deliberately absent everywhere; partial updates are the only write
// shape this API speaks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	// The "me" alias must be registered before the wildcard; chi prefers
	// static segments, and "me" is additionally a reserved username.
	router.Route("/me", func(r chi.Router) {
		r.Get("/", handler.getMe)
		r.Patch("/", handler.updateMe)
		r.Put("/", handler.usePatch)
	})

	router.Route("/{username}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Patch("/", handler.update)
		r.Delete("/", handler.remove)
		r.Put("/", handler.usePatch)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (input updateRequest) toInput() UpdateInput {
	return UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}
}

// # Administrative Handlers

/*
List returns a page of user accounts.

GET /api/v1/users?search=&page=&limit=

Response:
  - 200: Paginated []User
  - 403: ErrForbidden: Caller lacks administrative capability
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), requestutil.Actor(request), search, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
Create persists an account on behalf of an administrator.

POST /api/v1/users

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller lacks administrative capability
  - 409: ErrConflict: Username or email already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Create(request.Context(), requestutil.Actor(request), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Get returns a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: User
  - 403: ErrForbidden: Caller lacks administrative capability
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.Get(request.Context(), requestutil.Actor(request), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies a partial edit to an account, role included.

PATCH /api/v1/users/{username}

Response:
  - 200: User: Updated account
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller lacks administrative capability
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Update(request.Context(), requestutil.Actor(request), username, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Remove deletes an account.

DELETE /api/v1/users/{username}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller lacks administrative capability
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), requestutil.Actor(request), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Handlers

/*
GetMe returns the caller's own account.

GET /api/v1/users/me

Response:
  - 200: User
  - 403: ErrForbidden: Anonymous caller
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetMe(request.Context(), requestutil.Actor(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateMe applies a partial edit to the caller's own account. Any role in the
payload is ignored.

PATCH /api/v1/users/me

Response:
  - 200: User: Updated account
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Anonymous caller
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), requestutil.Actor(request), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// usePatch rejects PUT with an explicit pointer at the supported verb.
func (handler *Handler) usePatch(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed("Use PATCH"))
}
