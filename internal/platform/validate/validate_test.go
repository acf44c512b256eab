// Copyright (c) 2026 EasyBuy. All rights reserved.

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Lamp", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Numbers covers the price and byte-length rules.
*/
func TestValidator_Numbers(t *testing.T) {
	assert.False(t, (&validate.Validator{}).MinFloat("price", 0.01, 0.01).HasErrors())
	assert.True(t, (&validate.Validator{}).MinFloat("price", 0, 0.01).HasErrors())

	// 24 three-byte runes = 72 bytes, one more tips it over.
	assert.False(t, (&validate.Validator{}).MaxBytes("password", strings.Repeat("日", 24), 72).HasErrors())
	assert.True(t, (&validate.Validator{}).MaxBytes("password", strings.Repeat("日", 25), 72).HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").
		MinLen("username", "a", 5).
		Email("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestFieldError uses the field message as the top-level message.
*/
func TestFieldError(t *testing.T) {
	err := validate.FieldError("email", "Email is already registered")

	assert.Equal(t, "Email is already registered", err.Error())
	assert.Equal(t, "email", err.Details[0].Field)
}
