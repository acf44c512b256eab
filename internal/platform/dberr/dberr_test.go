// Copyright (c) 2026 EasyBuy. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the package sentinels.
*/
func TestWrap_Classification(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "noop"))
	assert.True(t, dberr.IsNotFound(dberr.Wrap(pgx.ErrNoRows, "get_product")))

	unique := dberr.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "insert_user")
	uniqueError, ok := dberr.AsUnique(unique)
	require.True(t, ok)
	assert.Equal(t, "users_email_key", uniqueError.Constraint)

	foreign := dberr.Wrap(&pgconn.PgError{Code: "23503", ConstraintName: "chat_messages_receiver_id_fkey"}, "insert_message")
	assert.ErrorIs(t, foreign, dberr.ErrForeignKey)
	foreignKeyError, ok := dberr.AsForeignKey(fmt.Errorf("chat_store_send_failed: %w", foreign))
	require.True(t, ok)
	assert.Equal(t, "chat_messages_receiver_id_fkey", foreignKeyError.Constraint)
	_, ok = dberr.AsForeignKey(unique)
	assert.False(t, ok)

	internal := dberr.Wrap(errors.New("connection reset"), "list_products")
	appError := apperr.As(internal)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
}
