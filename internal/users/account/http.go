// Copyright (c) 2026 EasyBuy. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/easybuy/api/internal/platform/request"
	"github.com/easybuy/api/internal/platform/respond"
	"github.com/easybuy/api/internal/platform/upload"
)

// # Handler Implementation

// Handler implements the HTTP layer for profiles and settings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UserRoutes returns the /api/users router.
//
// # Endpoints
//   - GET /me         : Private profile (auth).
//   - PUT /me         : Partial profile update (auth).
//   - PUT /me/avatar  : Replace the profile image (auth, multipart "avatar").
//   - GET /{id}       : Public profile.
func (handler *Handler) UserRoutes(gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Group(func(private chi.Router) {
		private.Use(gate)
		private.Get("/me", handler.getMe)
		private.Put("/me", handler.updateMe)
		private.Put("/me/avatar", handler.replaceAvatar)
	})

	router.Get("/{id}", handler.getPublic)

	return router
}

// SettingsRoutes returns the /api/settings router. Every route requires auth.
func (handler *Handler) SettingsRoutes(gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(gate)

	router.Get("/me", handler.getSettings)
	router.Put("/me", handler.updateSettings)

	return router
}

// # Profile Endpoints

/*
GET /api/users/me.

Response:
  - 200: Profile
  - 401: Missing or invalid token
  - 404: User not found
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PUT /api/users/me.

Request:
  - Body: ProfileUpdate (display_name, profile_image_url), both optional

Response:
  - 200: Updated profile
  - 400: Field too long
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ProfileUpdate
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateProfile(request.Context(), identity, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

type avatarResponse struct {
	ProfileImageURL string `json:"profile_image_url"`
}

/*
PUT /api/users/me/avatar.

Request:
  - multipart/form-data with a single image in field "avatar"

Response:
  - 200: {profile_image_url}
  - 400: No file, wrong type or too large
*/
func (handler *Handler) replaceAvatar(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, cleanup, err := upload.ParseForm(writer, request, handler.service.AvatarPolicy())
	defer cleanup()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	url, err := handler.service.ReplaceAvatar(request.Context(), identity, form.Files[FieldAvatar])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, avatarResponse{ProfileImageURL: url})
}

/*
GET /api/users/{id}.

Response:
  - 200: PublicProfile
  - 400: id is not a positive integer
  - 404: User not found
*/
func (handler *Handler) getPublic(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetPublic(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// # Settings Endpoints

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.GetSettings(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SettingsUpdate
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.UpdateSettings(request.Context(), identity, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}
