package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"

	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id, name, timezone string, preferences json.RawMessage) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Name, u.Timezone = name, timezone
	if len(preferences) > 0 {
		u.Preferences = preferences
	}
	return u, nil
}

type fakeAvatars struct {
	data        map[string][]byte
	contentType map[string]string
	downloadErr error
}

func newFakeAvatars() *fakeAvatars {
	return &fakeAvatars{data: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeAvatars) Upload(_ context.Context, userID string, data []byte, contentType string) error {
	f.data[userID] = data
	f.contentType[userID] = contentType
	return nil
}

func (f *fakeAvatars) Download(_ context.Context, userID string) ([]byte, string, error) {
	if f.downloadErr != nil {
		return nil, "", f.downloadErr
	}
	data, ok := f.data[userID]
	if !ok {
		return nil, "", store.ErrNotFound
	}
	return data, f.contentType[userID], nil
}

func testRouter(users *fakeUsers, avatars *fakeAvatars, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/profile", NewHandler(users, avatars, zerolog.Nop()).Routes)
	return r
}

func TestUpdateProfile(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "a@b.com", Timezone: "UTC"},
	}}
	h := testRouter(users, newFakeAvatars(), "u1")

	apitest.New().
		Handler(h).
		Put("/api/profile").
		JSON(`{"name":"Ada","timezone":"Europe/Berlin","preferences":{"theme":"dark","week_start":"monday"}}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.name`, "Ada")).
		Assert(jsonpath.Equal(`$.timezone`, "Europe/Berlin")).
		Assert(jsonpath.Equal(`$.preferences.theme`, "dark")).
		End()
}

func TestAvatarRoundTrip(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{"u1": {ID: "u1"}}}
	avatars := newFakeAvatars()
	h := testRouter(users, avatars, "u1")

	png := []byte{0x89, 'P', 'N', 'G'}
	apitest.New().
		Handler(h).
		Put("/api/profile/avatar").
		Body(string(png)).
		Header("Content-Type", "image/png").
		Expect(t).
		Status(http.StatusOK).
		End()

	assert.Equal(t, png, avatars.data["u1"])

	apitest.New().
		Handler(h).
		Get("/api/profile/avatar").
		Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "image/png").
		End()
}

func TestPutAvatar_RejectsBadContentType(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{"u1": {ID: "u1"}}}
	h := testRouter(users, newFakeAvatars(), "u1")

	apitest.New().
		Handler(h).
		Put("/api/profile/avatar").
		Body("<svg/>").
		Header("Content-Type", "image/svg+xml").
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestGetAvatar_Errors(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{"u1": {ID: "u1"}}}
	avatars := newFakeAvatars()
	h := testRouter(users, avatars, "u1")

	// Nothing uploaded yet.
	apitest.New().
		Handler(h).
		Get("/api/profile/avatar").
		Expect(t).
		Status(http.StatusNotFound).
		End()

	// A storage outage is a server fault, not a missing image.
	avatars.downloadErr = errors.New("connection refused")
	apitest.New().
		Handler(h).
		Get("/api/profile/avatar").
		Expect(t).
		Status(http.StatusInternalServerError).
		Body(`{"error":"internal error"}`).
		End()
}
