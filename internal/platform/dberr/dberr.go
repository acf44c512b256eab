// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/easybuy/api/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the services react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	// Services usually replace it with a resource-specific [apperr.NotFound].
	ErrNotFound = apperr.NotFound("Resource")

	// ErrForeignKey is returned when a referenced row doesn't exist.
	ErrForeignKey = errors.New("dberr: referenced row does not exist")
)

// UniqueError reports a violated unique constraint.
type UniqueError struct {
	Constraint string
	Cause      error
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("dberr: unique constraint %q violated", e.Constraint)
}

func (e *UniqueError) Unwrap() error { return e.Cause }

// ForeignKeyError reports a violated foreign key. It matches [ErrForeignKey]
// under [errors.Is], so callers that do not care which reference failed can
// keep checking the sentinel.
type ForeignKeyError struct {
	Constraint string
	Cause      error
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("dberr: foreign key %q violated", e.Constraint)
}

func (e *ForeignKeyError) Unwrap() error { return e.Cause }

func (e *ForeignKeyError) Is(target error) bool { return target == ErrForeignKey }

// Wrap inspects a database error and classifies it.
//
//   - pgx.ErrNoRows becomes [ErrNotFound].
//   - SQLSTATE 23505 becomes a [*UniqueError] naming the constraint.
//   - SQLSTATE 23503 becomes a [*ForeignKeyError] naming the constraint.
//   - Anything else becomes an [apperr.Internal] carrying the action for logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return &UniqueError{Constraint: pgError.ConstraintName, Cause: err}
		case codeForeignKeyViolation:
			return &ForeignKeyError{Constraint: pgError.ConstraintName, Cause: err}
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is (or wraps) [ErrNotFound].
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsUnique extracts a [*UniqueError] from err's chain.
func AsUnique(err error) (*UniqueError, bool) {
	var uniqueError *UniqueError
	if errors.As(err, &uniqueError) {
		return uniqueError, true
	}
	return nil, false
}

// AsForeignKey extracts a [*ForeignKeyError] from err's chain.
func AsForeignKey(err error) (*ForeignKeyError, bool) {
	var foreignKeyError *ForeignKeyError
	if errors.As(err, &foreignKeyError) {
		return foreignKeyError, true
	}
	return nil, false
}
