// Copyright (c) 2026 EasyBuy. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/blob"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/guard"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/internal/platform/validate"
)

// Resource names used in 404 messages.
const (
	resourceUser     = "User"
	resourceSettings = "Settings"
)

// Service implements the profile and settings business logic.
type Service struct {
	profileRepository  ProfileRepository
	settingsRepository SettingsRepository
	blobStore          blob.Store
	avatarPolicy       upload.Policy
	logger             *slog.Logger
}

/*
NewService constructs a new account [Service].

Parameters:
  - imagePolicy: the shared image policy; avatars reuse its type and size
    limits but accept exactly one file
*/
func NewService(
	profiles ProfileRepository,
	settings SettingsRepository,
	store blob.Store,
	imagePolicy upload.Policy,
	logger *slog.Logger,
) *Service {
	avatarPolicy := imagePolicy
	avatarPolicy.MaxFiles = 1

	return &Service{
		profileRepository:  profiles,
		settingsRepository: settings,
		blobStore:          store,
		avatarPolicy:       avatarPolicy,
		logger:             logger,
	}
}

// AvatarPolicy returns the upload policy for profile images.
func (service *Service) AvatarPolicy() upload.Policy {
	return service.avatarPolicy
}

// # Profile Operations

// GetProfile returns the private profile of the caller.
func (service *Service) GetProfile(ctx context.Context, identity *sec.Identity) (*Profile, error) {
	profile, err := service.profileRepository.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, notFoundAs(err, resourceUser, "account_service_get_profile_failed")
	}
	return profile, nil
}

// GetPublic returns the public profile of any user.
func (service *Service) GetPublic(ctx context.Context, userID int64) (*PublicProfile, error) {
	profile, err := service.profileRepository.FindPublicByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, resourceUser, "account_service_get_public_failed")
	}
	return profile, nil
}

/*
UpdateProfile applies a partial update to the caller's profile.

Rules:
  - display_name: trimmed, at most 100 characters
  - profile_image_url: at most 512 characters

Returns:
  - *Profile: The profile after the update
  - error: 400 on invalid input, 404 if the account no longer exists
*/
func (service *Service) UpdateProfile(ctx context.Context, identity *sec.Identity, update ProfileUpdate) (*Profile, error) {
	if update.DisplayName != nil {
		trimmed := strings.TrimSpace(*update.DisplayName)
		update.DisplayName = &trimmed
	}

	validator := &validate.Validator{}
	if update.DisplayName != nil {
		validator.MaxLen(FieldDisplayName, *update.DisplayName, DisplayNameMaxLen)
	}
	if update.ProfileImageURL != nil {
		validator.MaxLen(FieldProfileImageURL, *update.ProfileImageURL, ProfileImageURLMaxLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.profileRepository.Update(ctx, identity.ID, update); err != nil {
		return nil, notFoundAs(err, resourceUser, "account_service_update_profile_failed")
	}

	return service.GetProfile(ctx, identity)
}

/*
ReplaceAvatar stores a new profile image and points the profile at it.

The ownership check runs before any file is written. If the database update
fails the new file is removed again. The previous image is deleted only when
this store produced it, and a failure there is logged, not returned.

Returns:
  - string: Public URL of the new image
  - error: 400 when the upload is rejected, 404 if the account is gone before
    the upload, 500 if the row update fails after it
*/
func (service *Service) ReplaceAvatar(ctx context.Context, identity *sec.Identity, files []*upload.File) (string, error) {
	if identity == nil {
		return "", apperr.Unauthorized("Missing Authorization header")
	}

	var previous *string
	lookup := func(ctx context.Context, id int64) (int64, error) {
		profile, err := service.profileRepository.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		previous = profile.ProfileImageURL
		return profile.ID, nil
	}
	if err := guard.Owner(ctx, resourceUser, identity.ID, identity, lookup); err != nil {
		return "", err
	}

	decision, err := service.avatarPolicy.Screen(files)
	if err != nil {
		return "", err
	}

	url, err := upload.Save(ctx, service.blobStore, FieldAvatar, decision.Accepted[0])
	if err != nil {
		return "", fmt.Errorf("account_service_avatar_store_failed: %w", err)
	}

	if err := service.profileRepository.SetProfileImage(ctx, identity.ID, url); err != nil {
		service.discard(ctx, url)
		return "", apperr.Internal(fmt.Errorf("account_service_avatar_update_failed: %w", err))
	}

	if previous != nil && *previous != url && service.blobStore.Owns(*previous) {
		service.discard(ctx, *previous)
	}

	service.logger.InfoContext(ctx, "profile_image_replaced", slog.Int64("user_id", identity.ID))

	return url, nil
}

func (service *Service) discard(ctx context.Context, url string) {
	if err := service.blobStore.Delete(ctx, url); err != nil {
		service.logger.WarnContext(ctx, "blob_delete_failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}

// # Settings Operations

// GetSettings returns the caller's settings, or 404 if none were ever saved.
func (service *Service) GetSettings(ctx context.Context, identity *sec.Identity) (*Settings, error) {
	settings, err := service.settingsRepository.Find(ctx, identity.ID)
	if err != nil {
		return nil, notFoundAs(err, resourceSettings, "account_service_get_settings_failed")
	}
	return settings, nil
}

/*
UpdateSettings creates or partially updates the caller's settings.

Omitted fields keep their stored value, or the default on first save
(notifications on, dark mode off, language "en").
*/
func (service *Service) UpdateSettings(ctx context.Context, identity *sec.Identity, update SettingsUpdate) (*Settings, error) {
	if update.Language != nil {
		trimmed := strings.TrimSpace(*update.Language)
		update.Language = &trimmed

		validator := &validate.Validator{}
		validator.Required(FieldLanguage, trimmed).
			MaxLen(FieldLanguage, trimmed, LanguageMaxLen)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	settings, err := service.settingsRepository.Upsert(ctx, identity.ID, update)
	if err != nil {
		// The row references users(id); a deleted account fails the FK.
		if errors.Is(err, dberr.ErrForeignKey) {
			return nil, apperr.NotFound(resourceUser)
		}
		return nil, fmt.Errorf("account_service_update_settings_failed: %w", err)
	}

	return settings, nil
}

// notFoundAs names the missing resource, or wraps anything else with event.
func notFoundAs(err error, resource, event string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return fmt.Errorf("%s: %w", event, err)
}
