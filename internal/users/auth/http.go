// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/buithanhtam/reviewly/internal/platform/request"
	"github.com/buithanhtam/reviewly/internal/platform/respond"
	"github.com/buithanhtam/reviewly/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the two entry points of the identity lifecycle:
// enrollment and the code-for-token exchange. Everything behind a bearer
// token lives in the account package.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Enrolls an account and sends a confirmation code.
//   - POST /token  : Exchanges (username, code) for a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints. Both are reachable without a token by design: the
	// token endpoint is how a token is obtained in the first place.
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup enrolls a new user account.

POST /api/v1/auth/signup

Description: Validates the identity pair, persists the account, and emails a
confirmation code. Re-submitting an existing (username, email) pair re-issues
a fresh code instead of failing.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: Echo of the accepted identity pair
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email belongs to someone else
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Echo only the accepted pair; the code travels out of band.
	respond.OK(writer, map[string]string{
		FieldUsername: user.Username,
		FieldEmail:    user.Email,
	})
}

/*
Token exchanges a confirmation code for a bearer token.

POST /api/v1/auth/token

Description: Verifies the (username, confirmation code) pair, consumes the
code, and returns a signed JWT carrying the account's identity and role.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: Token payload
  - 400: ErrInvalidCredential: Wrong, expired, or already redeemed code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: token,
	})
}
