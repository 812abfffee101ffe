// Package profile serves the user profile and avatar endpoints.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// Avatars cap at 2 MiB.
const maxAvatarBytes = 2 << 20

// UserStore is the slice of user persistence the profile endpoints need.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, timezone string, preferences json.RawMessage) (*models.User, error)
}

// AvatarStore stores profile images as opaque bytes.
type AvatarStore interface {
	Upload(ctx context.Context, userID string, data []byte, contentType string) error
	Download(ctx context.Context, userID string) ([]byte, string, error)
}

type Handler struct {
	users   UserStore
	avatars AvatarStore
	log     zerolog.Logger
}

func NewHandler(users UserStore, avatars AvatarStore, log zerolog.Logger) *Handler {
	return &Handler{users: users, avatars: avatars, log: log}
}

// Routes mounts the profile endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	r.Get("/avatar", h.GetAvatar)
	r.Put("/avatar", h.PutAvatar)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get profile")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, user)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if len(req.Preferences) > 0 && !json.Valid(req.Preferences) {
		httputil.BadRequest(w, "preferences must be a JSON object")
		return
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	user, err := h.users.UpdateProfile(r.Context(), middleware.UserID(r.Context()), req.Name, req.Timezone, req.Preferences)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update profile")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, user)
}

// PutAvatar replaces the caller's profile image.
func (h *Handler) PutAvatar(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		httputil.BadRequest(w, "avatar must be image/png or image/jpeg")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxAvatarBytes+1))
	if err != nil {
		httputil.BadRequest(w, "could not read request body")
		return
	}
	if len(data) == 0 {
		httputil.BadRequest(w, "avatar image is empty")
		return
	}
	if len(data) > maxAvatarBytes {
		httputil.BadRequest(w, "avatar image is too large")
		return
	}

	if err := h.avatars.Upload(r.Context(), middleware.UserID(r.Context()), data, contentType); err != nil {
		h.log.Error().Err(err).Msg("upload avatar")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "avatar updated"})
}

// GetAvatar streams the caller's profile image.
func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.avatars.Download(r.Context(), middleware.UserID(r.Context()))
	if errors.Is(err, store.ErrNotFound) {
		httputil.NotFound(w)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("download avatar")
		httputil.Internal(w)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
