// Copyright (c) 2026 EasyBuy. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for credential records.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity including the password hash
		  - error: dberr.ErrNotFound when no account matches
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		UsernameExists reports whether the username is registered.
	*/
	UsernameExists(ctx context.Context, username string) (bool, error)

	/*
		EmailExists reports whether the email is registered.
	*/
	EmailExists(ctx context.Context, email string) (bool, error)

	/*
		Create inserts the account and fills in ID and CreatedAt.

		Returns:
		  - error: *dberr.UniqueError when a concurrent registration won the race
	*/
	Create(ctx context.Context, user *User) error
}

// # Volatile Data Access

// AttemptStore counts failed logins per email within a sliding lockout window.
type AttemptStore interface {

	// Failures returns the failures recorded in the current window.
	Failures(ctx context.Context, email string) (int, error)

	// RecordFailure adds one failure and (re)starts the window.
	RecordFailure(ctx context.Context, email string, window time.Duration) (int, error)

	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}

// NoopAttemptStore disables login throttling. It is used when Redis is not configured.
type NoopAttemptStore struct{}

func (NoopAttemptStore) Failures(context.Context, string) (int, error) { return 0, nil }

func (NoopAttemptStore) RecordFailure(context.Context, string, time.Duration) (int, error) {
	return 0, nil
}

func (NoopAttemptStore) Reset(context.Context, string) error { return nil }
