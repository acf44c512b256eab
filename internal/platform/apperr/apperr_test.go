// Copyright (c) 2026 EasyBuy. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping verifies every constructor maps to its HTTP status.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Product"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("nope"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("Not allowed"), http.StatusForbidden, "FORBIDDEN"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate_limited", apperr.RateLimited(30), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Product not found", apperr.NotFound("Product").Error())
	assert.Equal(t, 900*time.Second, apperr.RateLimited(900).RetryAfter)
}

/*
TestInternal_HidesCause ensures the client message never contains the cause.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation products does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}

/*
TestAs_UnwrapsChain checks extraction through fmt.Errorf wrapping.
*/
func TestAs_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("product_service_update_failed: %w", apperr.Forbidden("Not allowed"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.True(t, apperr.HasCode(wrapped, "FORBIDDEN"))
	assert.False(t, apperr.HasCode(errors.New("plain"), "FORBIDDEN"))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
