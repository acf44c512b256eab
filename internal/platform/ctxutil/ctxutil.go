// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package ctxutil stores and reads the per-request values that middleware
attaches to a [context.Context]: the correlation ID, a request-scoped logger
and the caller's verified identity.

Every getter is total. A missing value yields the zero value (or the default
logger), so handlers never need to check whether middleware ran.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/easybuy/api/internal/platform/ctxkey"
	"github.com/easybuy/api/internal/platform/sec"
)

// lookup reads a typed value, returning the zero value on miss or type mismatch.
func lookup[T any](ctx context.Context, k any) T {
	found, _ := ctx.Value(k).(T)
	return found
}

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation value, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.KeyRequestID)
}

// WithLogger attaches a logger already enriched with request attributes.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger falls back to [slog.Default] so background work can log too.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, ctxkey.KeyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// WithIdentity attaches the identity decoded from a verified bearer token.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	return lookup[*sec.Identity](ctx, ctxkey.KeyIdentity)
}
