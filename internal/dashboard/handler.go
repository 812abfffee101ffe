// Package dashboard serves the aggregated home-screen view.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// Store is the slice of persistence the dashboard aggregation reads from.
type Store interface {
	ListEvents(ctx context.Context, userID string, from, to *time.Time) ([]models.Event, error)
	BudgetSummaries(ctx context.Context, userID, month string) ([]models.BudgetSummary, error)
	CountRoutinesDone(ctx context.Context, userID, date string) (done, total int, err error)
	LatestWellnessLog(ctx context.Context, userID string) (*models.WellnessLog, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}

type Handler struct {
	store Store
	log   zerolog.Logger

	now func() time.Time
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log, now: time.Now}
}

// Get runs the four aggregation queries concurrently and assembles the
// response. Reporting only: nothing here is cached or precomputed.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	now := h.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	var dash models.Dashboard
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		events, err := h.store.ListEvents(ctx, userID, &dayStart, &dayEnd)
		if err != nil {
			return err
		}
		dash.TodayEvents = events
		return nil
	})
	g.Go(func() error {
		budgets, err := h.store.BudgetSummaries(ctx, userID, month)
		if err != nil {
			return err
		}
		dash.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		done, total, err := h.store.CountRoutinesDone(ctx, userID, today)
		if err != nil {
			return err
		}
		dash.RoutinesDoneToday, dash.RoutinesTotal = done, total
		return nil
	})
	g.Go(func() error {
		latest, err := h.store.LatestWellnessLog(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		dash.LatestWellness = latest

		unread, err := h.store.CountUnreadNotifications(ctx, userID)
		if err != nil {
			return err
		}
		dash.UnreadNotifications = unread
		return nil
	})

	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("dashboard aggregation")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, dash)
}
