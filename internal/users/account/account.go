// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package account handles the signed-in user's profile and settings.

# Architecture

  - Entities: Profile (private view), PublicProfile, Settings.
  - Ownership: profile image replacement runs through guard.Owner with the
    caller's own row, so a deleted account yields 404 instead of a stray file.
  - Storage: profile images go through blob.Store; only images the store
    produced are ever deleted when replaced.
*/
package account

import (
	"context"
	"time"
)

// # Domain Entities

// Profile is the private view of the signed-in user's account.
type Profile struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	DisplayName     *string   `json:"display_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicProfile is what anyone may see about a user.
type PublicProfile struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	DisplayName     *string `json:"display_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// ProfileUpdate carries optional profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	DisplayName     *string `json:"display_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// Settings are the user's notification and UI preferences.
type Settings struct {
	UserID             int64     `json:"user_id"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	DarkMode           bool      `json:"dark_mode"`
	Language           string    `json:"language"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SettingsUpdate carries optional settings; nil keeps the stored (or default) value.
type SettingsUpdate struct {
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	DarkMode           *bool   `json:"dark_mode"`
	Language           *string `json:"language"`
}

// # Field Identifiers & Limits

const (
	FieldDisplayName     = "display_name"
	FieldProfileImageURL = "profile_image_url"
	FieldLanguage        = "language"
	FieldAvatar          = "avatar"

	DisplayNameMaxLen     = 100
	ProfileImageURLMaxLen = 512
	LanguageMaxLen        = 16
)

// # Repository Contracts

// ProfileRepository defines the persistence contract for user profiles.
type ProfileRepository interface {
	/*
		FindByID returns the private profile of a user.

		Returns:
		  - error: dberr.ErrNotFound when the user does not exist
	*/
	FindByID(ctx context.Context, id int64) (*Profile, error)

	/*
		FindPublicByID returns the public fields of a user.

		Returns:
		  - error: dberr.ErrNotFound when the user does not exist
	*/
	FindPublicByID(ctx context.Context, id int64) (*PublicProfile, error)

	/*
		Update applies the non-nil fields of the update.

		Returns:
		  - error: dberr.ErrNotFound when the user does not exist
	*/
	Update(ctx context.Context, id int64, update ProfileUpdate) error

	/*
		SetProfileImage stores a new profile image URL.

		Returns:
		  - error: dberr.ErrNotFound when the user does not exist
	*/
	SetProfileImage(ctx context.Context, id int64, url string) error
}

// SettingsRepository defines the persistence contract for user settings.
type SettingsRepository interface {
	/*
		Find returns the settings row of a user.

		Returns:
		  - error: dberr.ErrNotFound when the user never saved settings
	*/
	Find(ctx context.Context, userID int64) (*Settings, error)

	/*
		Upsert creates the row with defaults if needed, then applies the non-nil fields.
	*/
	Upsert(ctx context.Context, userID int64, update SettingsUpdate) (*Settings, error)
}
