// Package routines serves the habit-tracking endpoints.
package routines

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

// Store defines the interface for routine persistence.
type Store interface {
	ListRoutines(ctx context.Context, userID string) ([]models.Routine, error)
	CreateRoutine(ctx context.Context, userID string, req *models.RoutineRequest) (*models.Routine, error)
	GetRoutine(ctx context.Context, userID, id string) (*models.Routine, error)
	UpdateRoutine(ctx context.Context, userID, id string, req *models.RoutineRequest) (*models.Routine, error)
	DeleteRoutine(ctx context.Context, userID, id string) error
	CompleteRoutine(ctx context.Context, userID, id, date string) (*models.Routine, error)
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Routes mounts the routine endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/complete", h.Complete)
}

func decodeRoutine(r *http.Request) (*models.RoutineRequest, string) {
	var req models.RoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "invalid request body"
	}
	if req.Title == "" {
		return nil, "title is required"
	}
	if req.Frequency == "" {
		req.Frequency = "daily"
	}
	if req.Frequency != "daily" && req.Frequency != "weekly" {
		return nil, "frequency must be daily or weekly"
	}
	return &req, ""
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	routines, err := h.store.ListRoutines(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.log.Error().Err(err).Msg("list routines")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, routines)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeRoutine(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	routine, err := h.store.CreateRoutine(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		h.log.Error().Err(err).Msg("create routine")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, routine)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	routine, err := h.store.GetRoutine(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get routine")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, routine)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeRoutine(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	routine, err := h.store.UpdateRoutine(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update routine")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, routine)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteRoutine(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete routine")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Complete marks the routine done for today. Completing twice on the same
// day is a no-op.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC().Format("2006-01-02")
	routine, err := h.store.CompleteRoutine(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), today)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("complete routine")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, routine)
}
