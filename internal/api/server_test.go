// Copyright (c) 2026 EasyBuy. All rights reserved.

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/api"
	"github.com/easybuy/api/internal/marketplace/chat"
	"github.com/easybuy/api/internal/marketplace/payment"
	"github.com/easybuy/api/internal/marketplace/product"
	"github.com/easybuy/api/internal/platform/blob"
	"github.com/easybuy/api/internal/platform/config"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/internal/users/account"
	"github.com/easybuy/api/internal/users/auth"
)

// newTestServer wires every handler without storage. Only routes that answer
// before reaching a repository are exercised here.
func newTestServer(t *testing.T, deps api.HealthDependencies) (http.Handler, string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:     "0",
		FrontendOrigin: "http://localhost:3000",
		RateLimitRPS:   100,
		RateLimitBurst: 150,
	}

	dir := t.TempDir()
	store, err := blob.NewLocal(dir)
	require.NoError(t, err)

	tokens, err := sec.NewTokenService([]byte("test-secret"), time.Hour, "easybuy-api")
	require.NoError(t, err)

	policy := upload.NewImagePolicy(5, 1024)
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, tokens, auth.Throttle{}, logger)),
		Account:   account.NewHandler(account.NewService(nil, nil, store, policy, logger)),
		Product:   product.NewHandler(product.NewService(nil, store, policy, logger)),
		Chat:      chat.NewHandler(chat.NewService(nil, logger)),
		Payment:   payment.NewHandler(),
		Uploads:   store.Handler(),
	})
	return server.Handler(), dir
}

/*
TestServer_Health reports liveness with a timestamp and readiness per dependency.
*/
func TestServer_Health(t *testing.T) {
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	handler, _ := newTestServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
		Now:           func() time.Time { return fixed },
	})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok","timestamp":"2026-10-01T12:00:00Z"}}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), `"name":"redis","ok":false`)
}

/*
TestServer_ProtectedRoutesNeedToken answers 401 before any handler runs.
*/
func TestServer_ProtectedRoutesNeedToken(t *testing.T) {
	handler, _ := newTestServer(t, api.HealthDependencies{})

	for _, target := range []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/42"},
		{http.MethodDelete, "/api/products/42"},
		{http.MethodPost, "/api/products/42/images"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/me/avatar"},
		{http.MethodGet, "/api/settings/me"},
		{http.MethodGet, "/api/chat/2"},
		{http.MethodPost, "/api/chat/2"},
	} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", target.method, target.path)
		assert.JSONEq(t, `{"error":"Missing Authorization header","code":"UNAUTHORIZED"}`, recorder.Body.String())
	}
}

/*
TestServer_ServesUploadsAndCallback covers the static file route and the payment callback.
*/
func TestServer_ServesUploadsAndCallback(t *testing.T) {
	handler, dir := newTestServer(t, api.HealthDependencies{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images-abc.jpg"), []byte("jpeg"), 0o644))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/images-abc.jpg", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "jpeg", recorder.Body.String())

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	for _, listing := range []string{"/uploads/", "/uploads/nested/"} {
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, listing, nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code, listing)
		assert.NotContains(t, recorder.Body.String(), "images-abc.jpg", listing)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/payments/callback", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"event":"demo"`)
}

/*
TestServer_CORSPreflight allows the configured frontend origin.
*/
func TestServer_CORSPreflight(t *testing.T) {
	handler, _ := newTestServer(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}
