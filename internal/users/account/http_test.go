// Copyright (c) 2026 EasyBuy. All rights reserved.

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/middleware"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload/uploadtest"
	"github.com/easybuy/api/internal/users/account"
)

func newRouter(t *testing.T, f *fixture) (http.Handler, string) {
	t.Helper()

	tokens, err := sec.NewTokenService([]byte("test-secret"), time.Hour, "easybuy-api")
	require.NoError(t, err)
	token, err := tokens.Issue(*aliceIdentity)
	require.NoError(t, err)

	gate := middleware.RequireAuth(tokens)
	handler := account.NewHandler(f.service)

	router := chi.NewRouter()
	router.Mount("/api/users", handler.UserRoutes(gate))
	router.Mount("/api/settings", handler.SettingsRoutes(gate))
	return router, token
}

/*
TestHTTP_PublicProfileNeedsNoToken serves GET /api/users/{id} anonymously.
*/
func TestHTTP_PublicProfileNeedsNoToken(t *testing.T) {
	f := newFixture(t, alice())
	router, _ := newRouter(t, f)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.Data["username"])
	assert.NotContains(t, body.Data, "email")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_PrivateRoutesRequireToken rejects anonymous calls before any handler runs.
*/
func TestHTTP_PrivateRoutesRequireToken(t *testing.T) {
	f := newFixture(t, alice())
	router, _ := newRouter(t, f)

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/me"},
		{http.MethodPut, "/api/users/me/avatar"},
		{http.MethodGet, "/api/settings/me"},
		{http.MethodPut, "/api/settings/me"},
	} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, target.path)
	}
}

/*
TestHTTP_UpdateMeAndAvatar runs the authenticated profile flow end to end.
*/
func TestHTTP_UpdateMeAndAvatar(t *testing.T) {
	f := newFixture(t, alice())
	router, token := newRouter(t, f)

	request := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"display_name":"Alice"}`))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"display_name":"Alice"`)

	request = uploadtest.Request(t, http.MethodPut, "/api/users/me/avatar", account.FieldAvatar,
		uploadtest.Image("me.webp", "image/webp", 64))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"profile_image_url":"/uploads/avatar-`)
	assert.Len(t, f.storedFiles(t), 1)
}
