// Copyright (c) 2026 EasyBuy. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/postgres"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
FindByEmail retrieves the credential record for an email.

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, password_hash, display_name, profile_image_url, created_at
		FROM users
		WHERE email = $1`

	user := &User{}
	err := repository.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.ProfileImageURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_email_failed")
	}

	return user, nil
}

// UsernameExists implements [UserRepository].
func (repository *PostgresUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return repository.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

// EmailExists implements [UserRepository].
func (repository *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return repository.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (repository *PostgresUserRepository) exists(ctx context.Context, query string, value string) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(ctx, query, value).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}
	return found, nil
}

/*
Create persists a new account.

Returns:
  - error: *dberr.UniqueError on a duplicate username or email
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := repository.db.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}
