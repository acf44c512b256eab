// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package apperr is the error vocabulary shared by services and handlers.

Services return an [*AppError] for every outcome the client should see (bad
input, missing row, foreign resource, lockout). Anything else that reaches
respond.Error is treated as a server fault and answered with a generic 500.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Machine-readable codes sent in the "code" field.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error with a client-safe message and an HTTP status.
//
// Cause is for server logs and Sentry only; it is never serialised.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	// RetryAfter is set on RATE_LIMITED errors and becomes the Retry-After header.
	RetryAfter time.Duration `json:"-"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// ValidationError is a 400 with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, msg)
	appError.Details = details
	return appError
}

// Unauthorized is a 401: no identity, or one that could not be verified.
func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

// Forbidden is a 403: the identity is known but does not own the resource.
func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// NotFound is a 404 naming the missing resource, e.g. "Product not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// RateLimited is a 429 telling the client how long to wait.
func RateLimited(retryAfterSeconds int) *AppError {
	appError := newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
	appError.RetryAfter = time.Duration(retryAfterSeconds) * time.Second
	return appError
}

// # 5xx

// Internal is a 500 carrying the real cause for logs only.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
