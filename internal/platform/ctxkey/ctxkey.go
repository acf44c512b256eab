// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Using a private, unexported type for keys prevents collisions with third-party
// packages that also store values on the request context.
package ctxkey

// key is an unexported type used for context keys.
//
// Go's [context.Context] compares both the value AND the type on lookup, so a
// plain "request_id" string key set elsewhere never matches these.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity is the context key for the authenticated [sec.Identity].
	KeyIdentity key = "identity"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
