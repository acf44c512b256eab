// Copyright (c) 2026 EasyBuy. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/easybuy/api/internal/platform/request"
	"github.com/easybuy/api/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Response Payloads

type registerResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
}

/*
register handles the creation of a new user account.

POST /api/auth/register

Request:
  - Body: RegisterInput (username, email, password)

Response:
  - 201: {id, message}
  - 400: Invalid input, username taken, or email registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, registerResponse{ID: user.ID, Message: MsgRegistered})
}

/*
login authenticates a user.

POST /api/auth/login

Request:
  - Body: LoginInput (email, password)

Response:
  - 200: {token}
  - 401: Invalid email or password
  - 429: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{Token: token})
}
