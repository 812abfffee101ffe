// Package wellness serves the daily wellness log endpoints.
package wellness

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

const dateLayout = "2006-01-02"

// Store defines the interface for wellness log persistence.
type Store interface {
	UpsertWellnessLog(ctx context.Context, userID string, req *models.WellnessRequest) (*models.WellnessLog, error)
	ListWellnessLogs(ctx context.Context, userID, from, to string) ([]models.WellnessLog, error)
	DeleteWellnessLog(ctx context.Context, userID, id string) error
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Routes mounts the wellness endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Put("/", h.Upsert)
	r.Delete("/{id}", h.Delete)
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Upsert writes the log for one day, replacing any existing entry for that
// (user, date) pair.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.WellnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if !validDate(req.LogDate) {
		httputil.BadRequest(w, "log_date must be formatted YYYY-MM-DD")
		return
	}
	if req.Mood < 1 || req.Mood > 5 {
		httputil.BadRequest(w, "mood must be between 1 and 5")
		return
	}
	if req.SleepHours < 0 || req.WaterML < 0 || req.ExerciseMin < 0 {
		httputil.BadRequest(w, "values must not be negative")
		return
	}

	logEntry, err := h.store.UpsertWellnessLog(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("upsert wellness log")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, logEntry)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if (from != "" && !validDate(from)) || (to != "" && !validDate(to)) {
		httputil.BadRequest(w, "from and to must be formatted YYYY-MM-DD")
		return
	}

	logs, err := h.store.ListWellnessLogs(r.Context(), middleware.UserID(r.Context()), from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("list wellness logs")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, logs)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteWellnessLog(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete wellness log")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
