// Copyright (c) 2026 EasyBuy. All rights reserved.

package account

import (
	"context"

	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/postgres"
)

// # Repository Implementations

// PostgresProfileRepository implements [ProfileRepository] using pgx.
type PostgresProfileRepository struct {
	db postgres.DB
}

// NewProfileRepository creates a new Postgres implementation for profile management.
func NewProfileRepository(db postgres.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// PostgresSettingsRepository implements [SettingsRepository] using pgx.
type PostgresSettingsRepository struct {
	db postgres.DB
}

// NewSettingsRepository creates a new Postgres implementation for user settings.
func NewSettingsRepository(db postgres.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// # ProfileRepository Methods

// FindByID implements [ProfileRepository].
func (repository *PostgresProfileRepository) FindByID(ctx context.Context, id int64) (*Profile, error) {
	const query = `
		SELECT id, username, email, display_name, profile_image_url, created_at
		FROM users
		WHERE id = $1`

	profile := &Profile{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.DisplayName,
		&profile.ProfileImageURL,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_profile_repo_find_failed")
	}

	return profile, nil
}

// FindPublicByID implements [ProfileRepository].
func (repository *PostgresProfileRepository) FindPublicByID(ctx context.Context, id int64) (*PublicProfile, error) {
	const query = `
		SELECT id, username, display_name, profile_image_url
		FROM users
		WHERE id = $1`

	profile := &PublicProfile{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Username,
		&profile.DisplayName,
		&profile.ProfileImageURL,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_profile_repo_find_public_failed")
	}

	return profile, nil
}

// Update implements [ProfileRepository].
func (repository *PostgresProfileRepository) Update(ctx context.Context, id int64, update ProfileUpdate) error {
	const query = `
		UPDATE users SET
			display_name      = COALESCE($2, display_name),
			profile_image_url = COALESCE($3, profile_image_url)
		WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id, update.DisplayName, update.ProfileImageURL)
	if err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// SetProfileImage implements [ProfileRepository].
func (repository *PostgresProfileRepository) SetProfileImage(ctx context.Context, id int64, url string) error {
	tag, err := repository.db.Exec(ctx, `UPDATE users SET profile_image_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_set_image_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # SettingsRepository Methods

const settingsColumns = `user_id, email_notifications, push_notifications, dark_mode, language, updated_at`

// Find implements [SettingsRepository].
func (repository *PostgresSettingsRepository) Find(ctx context.Context, userID int64) (*Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

	settings := &Settings{}
	err := repository.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.EmailNotifications,
		&settings.PushNotifications,
		&settings.DarkMode,
		&settings.Language,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_settings_repo_find_failed")
	}

	return settings, nil
}

/*
Upsert inserts the row with column defaults for omitted fields, or updates only
the provided fields of an existing row, in one statement.
*/
func (repository *PostgresSettingsRepository) Upsert(ctx context.Context, userID int64, update SettingsUpdate) (*Settings, error) {
	query := `
		INSERT INTO user_settings (user_id, email_notifications, push_notifications, dark_mode, language)
		VALUES (
			$1,
			COALESCE($2::boolean, TRUE),
			COALESCE($3::boolean, TRUE),
			COALESCE($4::boolean, FALSE),
			COALESCE($5::text, 'en')
		)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = COALESCE($2::boolean, user_settings.email_notifications),
			push_notifications  = COALESCE($3::boolean, user_settings.push_notifications),
			dark_mode           = COALESCE($4::boolean, user_settings.dark_mode),
			language            = COALESCE($5::text, user_settings.language),
			updated_at          = NOW()
		RETURNING ` + settingsColumns

	settings := &Settings{}
	err := repository.db.QueryRow(ctx, query,
		userID,
		update.EmailNotifications,
		update.PushNotifications,
		update.DarkMode,
		update.Language,
	).Scan(
		&settings.UserID,
		&settings.EmailNotifications,
		&settings.PushNotifications,
		&settings.DarkMode,
		&settings.Language,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_settings_repo_upsert_failed")
	}

	return settings, nil
}
