package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds the auth HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *Tokens
	log    zerolog.Logger
}

func NewHandler(users UserStore, tokens *Tokens, log zerolog.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, log: log}
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}

// Signup creates a new user and returns a bearer token for it.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.BadRequest(w, "email and password are required")
		return
	}
	if !validEmail(req.Email) {
		httputil.BadRequest(w, "invalid email")
		return
	}
	if len(req.Password) < 8 {
		httputil.BadRequest(w, "password must be at least 8 characters")
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("hash password")
		httputil.Internal(w)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Name, hashed)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httputil.Conflict(w, "user already exists")
			return
		}
		h.log.Error().Err(err).Msg("create user")
		httputil.Internal(w)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("issue token")
		httputil.Internal(w)
		return
	}

	httputil.JSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login checks credentials and returns a bearer token. Unknown email and
// wrong password produce identical responses.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		httputil.InvalidCredentials(w)
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		httputil.InvalidCredentials(w)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("issue token")
		httputil.Internal(w)
		return
	}

	httputil.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httputil.NotFound(w)
		return
	}
	httputil.JSON(w, http.StatusOK, user)
}
