// Package events serves the calendar endpoints.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// Store defines the interface for event persistence.
type Store interface {
	ListEvents(ctx context.Context, userID string, from, to *time.Time) ([]models.Event, error)
	CreateEvent(ctx context.Context, userID, title, location string, startsAt time.Time, endsAt *time.Time, allDay bool) (*models.Event, error)
	GetEvent(ctx context.Context, userID, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, userID, id, title, location string, startsAt time.Time, endsAt *time.Time, allDay bool) (*models.Event, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Routes mounts the event endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// decodeEvent validates the request body before any storage call. Times must
// be RFC3339.
func decodeEvent(r *http.Request) (title, location string, startsAt time.Time, endsAt *time.Time, allDay bool, msg string) {
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", "", time.Time{}, nil, false, "invalid request body"
	}
	if req.Title == "" {
		return "", "", time.Time{}, nil, false, "title is required"
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return "", "", time.Time{}, nil, false, "starts_at must be RFC3339"
	}
	if req.EndsAt != "" {
		end, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return "", "", time.Time{}, nil, false, "ends_at must be RFC3339"
		}
		if end.Before(startsAt) {
			return "", "", time.Time{}, nil, false, "ends_at must not be before starts_at"
		}
		endsAt = &end
	}
	return req.Title, req.Location, startsAt, endsAt, req.AllDay, ""
}

// parseRange reads optional from/to query bounds.
func parseRange(r *http.Request) (from, to *time.Time, msg string) {
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, "from must be RFC3339"
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, "to must be RFC3339"
		}
		to = &t
	}
	return from, to, ""
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, to, msg := parseRange(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	events, err := h.store.ListEvents(r.Context(), middleware.UserID(r.Context()), from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("list events")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, events)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	title, location, startsAt, endsAt, allDay, msg := decodeEvent(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	event, err := h.store.CreateEvent(r.Context(), middleware.UserID(r.Context()), title, location, startsAt, endsAt, allDay)
	if err != nil {
		h.log.Error().Err(err).Msg("create event")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, event)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.GetEvent(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get event")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, event)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	title, location, startsAt, endsAt, allDay, msg := decodeEvent(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	event, err := h.store.UpdateEvent(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), title, location, startsAt, endsAt, allDay)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update event")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, event)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteEvent(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete event")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
