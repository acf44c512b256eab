// Copyright (c) 2026 EasyBuy. All rights reserved.

package middleware

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/constants"
	"github.com/easybuy/api/internal/platform/ctxutil"
	"github.com/easybuy/api/internal/platform/respond"
	"github.com/easybuy/api/internal/platform/sec"
)

// bearerPattern matches the whole header; the token is everything after the single space.
var bearerPattern = regexp.MustCompile(`^Bearer (.+)$`)

// Client-facing messages of the auth gate.
const (
	MsgMissingAuthorization = "Missing Authorization header"
	MsgInvalidToken         = "Invalid or expired token"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// [*sec.TokenService] satisfies it; tests inject stubs.
type TokenVerifier interface {
	Verify(token string) (*sec.Identity, error)
}

/*
RequireAuth gates a route behind a valid bearer token.

Flow:
 1. Missing header, or one not shaped "Bearer <token>": 401 Missing Authorization header.
 2. Token rejected by the verifier: 401 Invalid or expired token.
 3. Otherwise the identity is stored in the request context, the request logger
    gains user_id, and the next handler runs.

The downstream handler never runs on steps 1 and 2.
*/
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Header shape
			match := bearerPattern.FindStringSubmatch(request.Header.Get(constants.HeaderAuthorization))
			if match == nil {
				respond.Error(writer, request, apperr.Unauthorized(MsgMissingAuthorization))
				return
			}

			// 2. Signature and expiry
			identity, err := verifier.Verify(match[1])
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "auth_token_rejected",
					slog.String("error", err.Error()),
				)
				respond.Error(writer, request, apperr.Unauthorized(MsgInvalidToken))
				return
			}

			// 3. Context injection
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", identity.ID)))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
