// Copyright (c) 2026 EasyBuy. All rights reserved.

package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/easybuy/api/internal/platform/request"
	"github.com/easybuy/api/internal/platform/respond"
)

// Handler implements the HTTP layer for chat.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chat [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with chat endpoints, all behind gate.
//
// # Endpoints
//   - GET  /{userId} : Conversation with a user.
//   - POST /{userId} : Send a message to a user.
func (handler *Handler) Routes(gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(gate)

	router.Get("/{userId}", handler.conversation)
	router.Post("/{userId}", handler.send)

	return router
}

/*
GET /api/chat/{userId}.

Response:
  - 200: []Message, oldest first
*/
func (handler *Handler) conversation(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	otherID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	messages, err := handler.service.Conversation(request.Context(), identity, otherID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messages)
}

/*
POST /api/chat/{userId}.

Request:
  - Body: SendInput (message, product_id?)

Response:
  - 201: {message: "Sent"}
  - 400: Message required
  - 404: User not found
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	receiverID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SendInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Send(request.Context(), identity, receiverID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Message{Message: MsgSent})
}
