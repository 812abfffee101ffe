package notifications

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
	"github.com/stretchr/testify/assert"

	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

type fakeStore struct {
	notifications map[string]*models.Notification
	nextID        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{notifications: map[string]*models.Notification{}, nextID: 1}
}

func (f *fakeStore) ListNotifications(_ context.Context, userID string) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateNotification(_ context.Context, userID, kind, title, body string) (*models.Notification, error) {
	n := &models.Notification{
		ID:        "n-" + strconv.Itoa(f.nextID),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	f.nextID++
	f.notifications[n.ID] = n
	return n, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, userID, id string) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return nil, store.ErrNotFound
	}
	n.Read = true
	return n, nil
}

func (f *fakeStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeStore) DeleteNotification(_ context.Context, userID, id string) error {
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.notifications, id)
	return nil
}

func testRouter(f *fakeStore, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/notifications", NewHandler(f, zerolog.Nop()).Routes)
	return r
}

func TestCreateAndMarkRead(t *testing.T) {
	f := newFakeStore()
	h := testRouter(f, "u1")

	apitest.New().
		Handler(h).
		Post("/api/notifications").
		JSON(`{"title":"Welcome"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.kind`, "general")).
		Assert(jsonpath.Equal(`$.read`, false)).
		End()

	apitest.New().
		Handler(h).
		Post("/api/notifications/n-1/read").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.read`, true)).
		End()
}

func TestMarkAllRead(t *testing.T) {
	f := newFakeStore()
	h := testRouter(f, "u1")

	for i := 0; i < 3; i++ {
		apitest.New().
			Handler(h).
			Post("/api/notifications").
			JSON(`{"title":"n"}`).
			Expect(t).
			Status(http.StatusCreated).
			End()
	}

	apitest.New().
		Handler(h).
		Post("/api/notifications/read-all").
		Expect(t).
		Status(http.StatusOK).
		End()

	for _, n := range f.notifications {
		assert.True(t, n.Read)
	}
}

func TestNotificationOwnership(t *testing.T) {
	f := newFakeStore()
	owner := testRouter(f, "u1")
	intruder := testRouter(f, "u2")

	apitest.New().
		Handler(owner).
		Post("/api/notifications").
		JSON(`{"title":"mine"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(intruder).
		Post("/api/notifications/n-1/read").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}
