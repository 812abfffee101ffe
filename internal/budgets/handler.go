// Package budgets serves the monthly budget and expense endpoints.
package budgets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/models"
	"github.com/lifehubapp/backend/internal/store"
)

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Store defines the interface for budget persistence.
type Store interface {
	ListBudgets(ctx context.Context, userID, month string) ([]models.Budget, error)
	CreateBudget(ctx context.Context, userID string, req *models.BudgetRequest) (*models.Budget, error)
	GetBudget(ctx context.Context, userID, id string) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, id string, req *models.BudgetRequest) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error
	AddExpense(ctx context.Context, userID, budgetID string, req *models.ExpenseRequest) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID, budgetID string) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

// Notifier creates in-app notifications, used when an expense pushes a
// budget over its limit.
type Notifier interface {
	CreateNotification(ctx context.Context, userID, kind, title, body string) (*models.Notification, error)
}

type Handler struct {
	store    Store
	notifier Notifier
	log      zerolog.Logger
}

func NewHandler(store Store, notifier Notifier, log zerolog.Logger) *Handler {
	return &Handler{store: store, notifier: notifier, log: log}
}

// Routes mounts the budget endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/expenses", h.ListExpenses)
	r.Post("/{id}/expenses", h.AddExpense)
	r.Delete("/expenses/{expenseID}", h.DeleteExpense)
}

func decodeBudget(r *http.Request) (*models.BudgetRequest, string) {
	var req models.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "invalid request body"
	}
	if req.Category == "" {
		return nil, "category is required"
	}
	if req.LimitAmount <= 0 {
		return nil, "limit_amount must be positive"
	}
	if !monthRe.MatchString(req.Month) {
		return nil, "month must be formatted YYYY-MM"
	}
	return &req, ""
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" && !monthRe.MatchString(month) {
		httputil.BadRequest(w, "month must be formatted YYYY-MM")
		return
	}

	budgets, err := h.store.ListBudgets(r.Context(), middleware.UserID(r.Context()), month)
	if err != nil {
		h.log.Error().Err(err).Msg("list budgets")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, budgets)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeBudget(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	budget, err := h.store.CreateBudget(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httputil.Conflict(w, "budget already exists for that category and month")
			return
		}
		h.log.Error().Err(err).Msg("create budget")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusCreated, budget)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	budget, err := h.store.GetBudget(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("get budget")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, budget)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeBudget(r)
	if msg != "" {
		httputil.BadRequest(w, msg)
		return
	}

	budget, err := h.store.UpdateBudget(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("update budget")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, budget)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteBudget(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete budget")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error().Err(err).Msg("list expenses")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, expenses)
}

// AddExpense records a spend and, if it pushes the budget past its limit,
// leaves an over-limit notification for the user.
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req models.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Label == "" {
		httputil.BadRequest(w, "label is required")
		return
	}
	if req.Amount <= 0 {
		httputil.BadRequest(w, "amount must be positive")
		return
	}

	userID := middleware.UserID(r.Context())
	budgetID := chi.URLParam(r, "id")

	expense, err := h.store.AddExpense(r.Context(), userID, budgetID, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("add expense")
		httputil.Internal(w)
		return
	}

	if budget, err := h.store.GetBudget(r.Context(), userID, budgetID); err == nil &&
		budget.Spent > budget.LimitAmount {
		title := fmt.Sprintf("Budget %q is over its limit", budget.Category)
		body := fmt.Sprintf("Spent %.2f of %.2f for %s.", budget.Spent, budget.LimitAmount, budget.Month)
		if _, err := h.notifier.CreateNotification(r.Context(), userID, "budget_over_limit", title, body); err != nil {
			h.log.Warn().Err(err).Msg("over-limit notification")
		}
	}

	httputil.JSON(w, http.StatusCreated, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteExpense(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "expenseID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.NotFound(w)
			return
		}
		h.log.Error().Err(err).Msg("delete expense")
		httputil.Internal(w)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
