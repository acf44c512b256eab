// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/easybuy/api/internal/marketplace/chat"
	"github.com/easybuy/api/internal/marketplace/payment"
	"github.com/easybuy/api/internal/marketplace/product"
	"github.com/easybuy/api/internal/platform/config"
	"github.com/easybuy/api/internal/platform/constants"
	"github.com/easybuy/api/internal/platform/middleware"
	"github.com/easybuy/api/internal/users/account"
	"github.com/easybuy/api/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /api/health handler.
	Liveness http.HandlerFunc

	// Readiness is the /api/ready handler.
	Readiness http.HandlerFunc

	// Auth handles registration and login.
	Auth *auth.Handler

	// Account serves /api/users and /api/settings.
	Account *account.Handler

	// Product serves the catalogue and seller actions.
	Product *product.Handler

	// Chat serves direct messages.
	Chat *chat.Handler

	// Payment receives processor callbacks.
	Payment *payment.Handler

	// Uploads serves stored files under /uploads/. Nil when files live in S3.
	Uploads http.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Parameters:
  - ctx: Lifetime of background workers (the rate limiter sweeper)
  - verifier: Verifies bearer tokens on protected routes
*/
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(middleware.PanicRecovery(log))
	router.Use(middleware.Sentry())
	router.Use(chimw.CleanPath)
	router.Use(middleware.CORS(cfg.FrontendOrigin))
	router.Use(middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))

	gate := middleware.RequireAuth(verifier)

	// # Application API
	router.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Liveness)
		api.Get("/ready", h.Readiness)

		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/products", h.Product.Routes(gate))
		api.Mount("/users", h.Account.UserRoutes(gate))
		api.Mount("/settings", h.Account.SettingsRoutes(gate))
		api.Mount("/chat", h.Chat.Routes(gate))
		api.Mount("/payments", h.Payment.Routes())
	})

	// # Static Uploads
	if h.Uploads != nil {
		router.Handle(constants.UploadsURLPrefix+"*", http.StripPrefix(constants.UploadsURLPrefix, h.Uploads))
	}

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
