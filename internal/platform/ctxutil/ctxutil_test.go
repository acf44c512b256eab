// Copyright (c) 2026 EasyBuy. All rights reserved.

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/ctxutil"
	"github.com/easybuy/api/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the authenticated identity round-trips.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ctxutil.GetIdentity(ctx))

	ctx = ctxutil.WithIdentity(ctx, &sec.Identity{ID: 7, Username: "alice", Email: "alice@example.com"})
	identity := ctxutil.GetIdentity(ctx)

	require.NotNil(t, identity)
	assert.Equal(t, int64(7), identity.ID)
	assert.Equal(t, "alice", identity.Username)
}
