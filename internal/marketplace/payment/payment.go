// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package payment receives payment processor callbacks.

No payment is processed: the callback is logged and acknowledged so a
processor integration can be tested end to end.
*/
package payment

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easybuy/api/internal/platform/ctxutil"
	requestutil "github.com/easybuy/api/internal/platform/request"
	"github.com/easybuy/api/internal/platform/respond"
)

// DefaultEvent names callbacks that carry no event field.
const DefaultEvent = "demo"

// StatusReceived acknowledges a callback.
const StatusReceived = "received"

// Handler implements the payment callback endpoint.
type Handler struct{}

// NewHandler constructs a new payment [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] with POST /callback.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/callback", handler.callback)
	return router
}

type callbackResponse struct {
	Status string `json:"status"`
	Event  string `json:"event"`
}

/*
POST /api/payments/callback.

Request:
  - Body: any JSON object; "event" names the callback. An empty body is accepted.

Response:
  - 200: {status: "received", event}
  - 400: Body is not a JSON object
*/
func (handler *Handler) callback(writer http.ResponseWriter, request *http.Request) {
	payload := map[string]any{}
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	event, _ := payload["event"].(string)
	if event == "" {
		event = DefaultEvent
	}

	ctx := request.Context()
	ctxutil.GetLogger(ctx).InfoContext(ctx, "payment_callback_received",
		slog.String("event", event),
		slog.Any("payload", payload),
	)

	respond.OK(writer, callbackResponse{Status: StatusReceived, Event: event})
}
