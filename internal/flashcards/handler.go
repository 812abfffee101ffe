// Package flashcards serves the spaced-repetition deck endpoints.
package flashcards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

// Store defines the interface for deck persistence.
type Store interface {
	Insert(ctx context.Context, deck *models.Deck) (*models.Deck, error)
	ListByUser(ctx context.Context, userID string) ([]models.Deck, error)
	GetByID(ctx context.Context, userID, id string) (*models.Deck, error)
	Update(ctx context.Context, userID, id, name, description string) (*models.Deck, error)
	Delete(ctx context.Context, userID, id string) error
	AddCard(ctx context.Context, userID, id string, card models.Card) (*models.Deck, error)
	DeleteCard(ctx context.Context, userID, id, cardID string) (*models.Deck, error)
	UpdateCard(ctx context.Context, userID, id string, card models.Card) (*models.Deck, error)
}

type Handler struct {
	store Store
	log   zerolog.Logger

	now func() time.Time
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log, now: time.Now}
}

// Routes mounts the flashcard endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/cards", h.AddCard)
	r.Delete("/{id}/cards/{cardID}", h.DeleteCard)
	r.Post("/{id}/cards/{cardID}/review", h.Review)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	decks, err := h.store.ListByUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.log.Error().Err(err).Msg("list decks")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, decks)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}

	deck, err := h.store.Insert(r.Context(), &models.Deck{
		UserID:      middleware.UserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create deck")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, deck)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	deck, err := h.store.GetByID(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get deck")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, deck)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}

	deck, err := h.store.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update deck")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, deck)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete deck")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req models.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Front == "" || req.Back == "" {
		httputil.BadRequest(w, "front and back are required")
		return
	}

	card := models.Card{
		ID:           uuid.New().String(),
		Front:        req.Front,
		Back:         req.Back,
		IntervalDays: 1,
		DueAt:        h.now().Add(24 * time.Hour),
	}
	deck, err := h.store.AddCard(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), card)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("add card")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, deck)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deck, err := h.store.DeleteCard(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "cardID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete card")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, deck)
}

// nextInterval applies the review grade to the card's current interval.
func nextInterval(current int, grade string) (int, bool) {
	if current < 1 {
		current = 1
	}
	switch grade {
	case "again":
		return 1, true
	case "good":
		return max(current*2, 1), true
	case "easy":
		return max(current*3, 2), true
	default:
		return 0, false
	}
}

// Review grades a card and reschedules it.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}

	userID := middleware.UserID(r.Context())
	deckID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	deck, err := h.store.GetByID(r.Context(), userID, deckID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get deck")
		httputil.Internal(w)
		return
	}

	var card *models.Card
	for i := range deck.Cards {
		if deck.Cards[i].ID == cardID {
			card = &deck.Cards[i]
			break
		}
	}
	if card == nil {
		httputil.NotFound(w)
		return
	}

	interval, ok := nextInterval(card.IntervalDays, req.Grade)
	if !ok {
		httputil.BadRequest(w, "grade must be again, good, or easy")
		return
	}
	card.IntervalDays = interval
	card.DueAt = h.now().Add(time.Duration(interval) * 24 * time.Hour)
	card.Reviews++

	updated, err := h.store.UpdateCard(r.Context(), userID, deckID, *card)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update card")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}
