package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, email, name, passwordHash string) (*models.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, store.ErrDuplicate
	}
	u := &models.User{
		ID:           "user-" + strconv.Itoa(f.nextID),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func newTestHandler() (*Handler, *Tokens) {
	tokens := NewTokens("test-secret", time.Hour)
	return NewHandler(newFakeUserStore(), tokens, zerolog.Nop()), tokens
}

func TestSignup_ReturnsVerifiableToken(t *testing.T) {
	h, tokens := newTestHandler()

	result := apitest.New().
		HandlerFunc(h.Signup).
		Post("/api/auth/signup").
		JSON(`{"email":"a@b.com","password":"hunter2secret","name":"Ada"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Present(`$.token`)).
		Assert(jsonpath.Equal(`$.user.email`, "a@b.com")).
		End()

	// The token's subject must be the created user's id.
	var resp models.AuthResponse
	result.JSON(&resp)
	subject, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, subject)
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"email":"a@b.com","password":"hunter2secret"}`
	apitest.New().
		HandlerFunc(h.Signup).
		Post("/api/auth/signup").
		JSON(body).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		HandlerFunc(h.Signup).
		Post("/api/auth/signup").
		JSON(body).
		Expect(t).
		Status(http.StatusConflict).
		Body(`{"error":"user already exists"}`).
		End()
}

func TestSignup_Validation(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email":"a@b.com"}`},
		{"bad email", `{"email":"nope","password":"hunter2secret"}`},
		{"short password", `{"email":"a@b.com","password":"short"}`},
		{"not json", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apitest.New().
				HandlerFunc(h.Signup).
				Post("/api/auth/signup").
				Body(tt.body).
				Header("Content-Type", "application/json").
				Expect(t).
				Status(http.StatusBadRequest).
				End()
		})
	}
}

func TestLogin_CorrectPassword(t *testing.T) {
	h, tokens := newTestHandler()

	apitest.New().
		HandlerFunc(h.Signup).
		Post("/api/auth/signup").
		JSON(`{"email":"a@b.com","password":"hunter2secret"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	result := apitest.New().
		HandlerFunc(h.Login).
		Post("/api/auth/login").
		JSON(`{"email":"a@b.com","password":"hunter2secret"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present(`$.token`)).
		End()

	var resp models.AuthResponse
	result.JSON(&resp)
	_, err := tokens.Verify(resp.Token)
	assert.NoError(t, err)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	h, _ := newTestHandler()

	apitest.New().
		HandlerFunc(h.Signup).
		Post("/api/auth/signup").
		JSON(`{"email":"a@b.com","password":"hunter2secret"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Wrong password and unknown email must be byte-identical, and the
	// message must not name anything internal (password, hash, query text).
	for _, body := range []string{
		`{"email":"a@b.com","password":"wrong-password"}`,
		`{"email":"nobody@b.com","password":"hunter2secret"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		h.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
		lower := strings.ToLower(rec.Body.String())
		for _, forbidden := range []string{"password", "hash", "bcrypt", "select", "from"} {
			assert.NotContains(t, lower, forbidden)
		}
	}
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	users := newFakeUserStore()
	u, err := users.CreateUser(context.Background(), "a@b.com", "Ada", "hash")
	require.NoError(t, err)
	h := NewHandler(users, tokens, zerolog.Nop())

	apitest.New().
		HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.Me(w, r.WithContext(middleware.WithUserID(r.Context(), u.ID)))
		}).
		Get("/api/auth/me").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.email`, "a@b.com")).
		Assert(jsonpath.NotPresent(`$.password_hash`)).
		End()
}
