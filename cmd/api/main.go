// Copyright (c) 2026 EasyBuy. All rights reserved.

// Command api is the entry point for the EasyBuy HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Initialize Sentry (when SENTRY_DSN is set).
//  4. Connect to PostgreSQL (pgxpool).
//  5. Connect to Redis (when REDIS_URL is set).
//  6. Run database migrations (idempotent).
//  7. Build the token service and blob store.
//  8. Wire HTTP handlers.
//  9. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/easybuy/api/internal/api"
	"github.com/easybuy/api/internal/marketplace/chat"
	"github.com/easybuy/api/internal/marketplace/payment"
	"github.com/easybuy/api/internal/marketplace/product"
	"github.com/easybuy/api/internal/platform/blob"
	"github.com/easybuy/api/internal/platform/config"
	"github.com/easybuy/api/internal/platform/constants"
	"github.com/easybuy/api/internal/platform/migration"
	pgstore "github.com/easybuy/api/internal/platform/postgres"
	redisstore "github.com/easybuy/api/internal/platform/redis"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/internal/users/account"
	"github.com/easybuy/api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// ── 3. Sentry ─────────────────────────────────────────────────────────
	if cfg.SentryDSN != "" {
		must(log, sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     constants.AppName + "@" + constants.AppVersion,
		}), "initialize sentry")
		defer sentry.Flush(constants.SentryFlushTimeout)
		log.Info("sentry_enabled")
	}

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 5. Redis ──────────────────────────────────────────────────────────
	// Optional: without it login throttling is disabled.
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	} else {
		log.Warn("redis_disabled", slog.String("effect", "login throttling off"))
	}

	// ── 6. Migrations ─────────────────────────────────────────────────────
	if cfg.MigrateOnStart {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 7. Security & Storage ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExpiresIn, constants.AuthIssuer)
	must(log, err, "initialize token service")

	store, err := blob.New(startupCtx, cfg)
	must(log, err, "initialize blob store")

	var uploads http.Handler
	if local, ok := store.(*blob.Local); ok {
		uploads = local.Handler()
	}

	imagePolicy := upload.NewImagePolicy(cfg.UploadMaxFiles, cfg.UploadMaxBytes)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	var attempts auth.AttemptStore
	if rdb != nil {
		attempts = auth.NewAttemptStore(rdb)
	}
	authService := auth.NewService(auth.NewUserRepository(pool), attempts, tokens, auth.Throttle{
		MaxAttempts: cfg.LoginMaxAttempts,
		Lockout:     cfg.LoginLockout,
	}, log)

	accountService := account.NewService(
		account.NewProfileRepository(pool),
		account.NewSettingsRepository(pool),
		store, imagePolicy, log,
	)
	productService := product.NewService(product.NewPostgresRepository(pool), store, imagePolicy, log)
	chatService := chat.NewService(chat.NewPostgresRepository(pool), log)

	healthDeps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Product:   product.NewHandler(productService),
		Chat:      chat.NewHandler(chatService),
		Payment:   payment.NewHandler(),
		Uploads:   uploads,
	})

	// ── Graceful Shutdown ─────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger, tags every entry with the app name and
// installs it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// exit is replaced in tests.
var exit = os.Exit

// must logs a structured fatal error, reports it to Sentry and terminates the
// process if err is non-nil. os.Exit skips deferred calls, so the Sentry buffer
// is flushed here.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		sentry.CaptureException(fmt.Errorf("startup %s: %w", step, err))
		sentry.Flush(constants.SentryFlushTimeout)
		exit(1)
	}
}
