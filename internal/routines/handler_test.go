package routines

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"

	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

type fakeStore struct {
	routines map[string]*models.Routine
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{routines: map[string]*models.Routine{}, nextID: 1}
}

func (f *fakeStore) ListRoutines(_ context.Context, userID string) ([]models.Routine, error) {
	out := []models.Routine{}
	for _, rt := range f.routines {
		if rt.UserID == userID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRoutine(_ context.Context, userID string, req *models.RoutineRequest) (*models.Routine, error) {
	rt := &models.Routine{
		ID:             "rt-" + strconv.Itoa(f.nextID),
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Frequency:      req.Frequency,
		CompletedDates: []string{},
		CreatedAt:      time.Now(),
	}
	f.nextID++
	f.routines[rt.ID] = rt
	return rt, nil
}

func (f *fakeStore) GetRoutine(_ context.Context, userID, id string) (*models.Routine, error) {
	rt, ok := f.routines[id]
	if !ok || rt.UserID != userID {
		return nil, store.ErrNotFound
	}
	return rt, nil
}

func (f *fakeStore) UpdateRoutine(ctx context.Context, userID, id string, req *models.RoutineRequest) (*models.Routine, error) {
	rt, err := f.GetRoutine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	rt.Title, rt.Description, rt.Frequency = req.Title, req.Description, req.Frequency
	return rt, nil
}

func (f *fakeStore) DeleteRoutine(ctx context.Context, userID, id string) error {
	if _, err := f.GetRoutine(ctx, userID, id); err != nil {
		return err
	}
	delete(f.routines, id)
	return nil
}

func (f *fakeStore) CompleteRoutine(ctx context.Context, userID, id, date string) (*models.Routine, error) {
	rt, err := f.GetRoutine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	for _, d := range rt.CompletedDates {
		if d == date {
			return rt, nil
		}
	}
	rt.CompletedDates = append(rt.CompletedDates, date)
	return rt, nil
}

// testRouter mounts the handler behind a middleware that pins the user id.
func testRouter(s Store, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/routines", NewHandler(s, zerolog.Nop()).Routes)
	return r
}

func TestCreateAndGetRoutine(t *testing.T) {
	h := testRouter(newFakeStore(), "u1")

	apitest.New().
		Handler(h).
		Post("/api/routines").
		JSON(`{"title":"Morning run","frequency":"daily"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.title`, "Morning run")).
		Assert(jsonpath.Equal(`$.user_id`, "u1")).
		End()

	apitest.New().
		Handler(h).
		Get("/api/routines/rt-1").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.title`, "Morning run")).
		End()
}

func TestCreateRoutine_Validation(t *testing.T) {
	h := testRouter(newFakeStore(), "u1")

	apitest.New().
		Handler(h).
		Post("/api/routines").
		JSON(`{"frequency":"daily"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"title is required"}`).
		End()

	apitest.New().
		Handler(h).
		Post("/api/routines").
		JSON(`{"title":"x","frequency":"hourly"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestCompleteRoutine_Idempotent(t *testing.T) {
	s := newFakeStore()
	h := testRouter(s, "u1")

	apitest.New().
		Handler(h).
		Post("/api/routines").
		JSON(`{"title":"Meditate"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	for i := 0; i < 2; i++ {
		apitest.New().
			Handler(h).
			Post("/api/routines/rt-1/complete").
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Len(`$.completed_dates`, 1)).
			End()
	}
}

func TestRoutineOwnership(t *testing.T) {
	s := newFakeStore()

	owner := testRouter(s, "u1")
	apitest.New().
		Handler(owner).
		Post("/api/routines").
		JSON(`{"title":"Private"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Another user cannot see or delete it.
	intruder := testRouter(s, "u2")
	apitest.New().
		Handler(intruder).
		Get("/api/routines/rt-1").
		Expect(t).
		Status(http.StatusNotFound).
		End()
	apitest.New().
		Handler(intruder).
		Delete("/api/routines/rt-1").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}
