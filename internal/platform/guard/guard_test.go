// Copyright (c) 2026 EasyBuy. All rights reserved.

package guard_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/guard"
	"github.com/easybuy/api/internal/platform/sec"
)

func ownedBy(ownerID int64) guard.OwnerLookup {
	return func(context.Context, int64) (int64, error) { return ownerID, nil }
}

/*
TestOwner covers match, mismatch, missing row and lookup failure.
*/
func TestOwner(t *testing.T) {
	alice := &sec.Identity{ID: 1, Username: "alice"}
	bob := &sec.Identity{ID: 2, Username: "bob"}
	boom := errors.New("connection reset")

	tests := []struct {
		name     string
		identity *sec.Identity
		lookup   guard.OwnerLookup
		status   int
		message  string
	}{
		{"owner_allowed", alice, ownedBy(1), 0, ""},
		{"other_user_forbidden", bob, ownedBy(1), http.StatusForbidden, "Not allowed"},
		{
			"missing_resource",
			alice,
			func(context.Context, int64) (int64, error) { return 0, dberr.ErrNotFound },
			http.StatusNotFound,
			"Product not found",
		},
		{"anonymous", nil, ownedBy(1), http.StatusUnauthorized, "Missing Authorization header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Owner(context.Background(), "Product", 42, tt.identity, tt.lookup)

			if tt.status == 0 {
				assert.NoError(t, err)
				return
			}
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.message, appError.Message)
		})
	}

	t.Run("lookup_failure_propagates", func(t *testing.T) {
		err := guard.Owner(context.Background(), "Product", 42, alice,
			func(context.Context, int64) (int64, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
	})
}
