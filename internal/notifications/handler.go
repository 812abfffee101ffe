// Package notifications serves the in-app notification endpoints.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// Store defines the interface for notification persistence.
type Store interface {
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	CreateNotification(ctx context.Context, userID, kind, title, body string) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, id string) error
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Routes mounts the notification endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/read", h.MarkRead)
	r.Post("/read-all", h.MarkAllRead)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.store.ListNotifications(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.log.Error().Err(err).Msg("list notifications")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, notifications)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		httputil.BadRequest(w, "title is required")
		return
	}
	if req.Kind == "" {
		req.Kind = "general"
	}

	n, err := h.store.CreateNotification(r.Context(), middleware.UserID(r.Context()), req.Kind, req.Title, req.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("create notification")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, n)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.MarkNotificationRead(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("mark notification read")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, n)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.store.MarkAllNotificationsRead(r.Context(), middleware.UserID(r.Context())); err != nil {
		h.log.Error().Err(err).Msg("mark all notifications read")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "all read"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteNotification(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete notification")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
