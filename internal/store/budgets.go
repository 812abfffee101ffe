package store

import (
	"context"

	"github.com/lifehubapp/backend/internal/models"
)

const budgetColumns = `id, user_id, category, limit_amount, month, created_at`

func scanBudget(row interface{ Scan(...any) error }) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Month, &b.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *PostgresStore) ListBudgets(ctx context.Context, userID, month string) ([]models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY category`
	args := []any{userID}
	if month != "" {
		query = `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2 ORDER BY category`
		args = append(args, month)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

// CreateBudget inserts a budget. ErrDuplicate when the (category, month)
// pair already exists for the user.
func (s *PostgresStore) CreateBudget(ctx context.Context, userID string, req *models.BudgetRequest) (*models.Budget, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO budgets (user_id, category, limit_amount, month)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+budgetColumns,
		userID, req.Category, req.LimitAmount, req.Month,
	)
	return scanBudget(row)
}

// GetBudget returns a budget with its spent total filled in.
func (s *PostgresStore) GetBudget(ctx context.Context, userID, id string) (*models.Budget, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT b.id, b.user_id, b.category, b.limit_amount, b.month, b.created_at,
		        COALESCE(SUM(e.amount), 0)
		 FROM budgets b
		 LEFT JOIN expenses e ON e.budget_id = b.id
		 WHERE b.id = $1 AND b.user_id = $2
		 GROUP BY b.id`,
		id, userID,
	)
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Month, &b.CreatedAt, &b.Spent)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *PostgresStore) UpdateBudget(ctx context.Context, userID, id string, req *models.BudgetRequest) (*models.Budget, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE budgets SET category = $3, limit_amount = $4, month = $5
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+budgetColumns,
		id, userID, req.Category, req.LimitAmount, req.Month,
	)
	return scanBudget(row)
}

func (s *PostgresStore) DeleteBudget(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddExpense(ctx context.Context, userID, budgetID string, req *models.ExpenseRequest) (*models.Expense, error) {
	// Ownership check before the insert: the budget must belong to the caller.
	if _, err := s.GetBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	var e models.Expense
	err := s.pool.QueryRow(ctx,
		`INSERT INTO expenses (budget_id, user_id, label, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, budget_id, user_id, label, amount, spent_at`,
		budgetID, userID, req.Label, req.Amount,
	).Scan(&e.ID, &e.BudgetID, &e.UserID, &e.Label, &e.Amount, &e.SpentAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (s *PostgresStore) ListExpenses(ctx context.Context, userID, budgetID string) ([]models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, budget_id, user_id, label, amount, spent_at
		 FROM expenses WHERE budget_id = $1 AND user_id = $2
		 ORDER BY spent_at DESC`,
		budgetID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.BudgetID, &e.UserID, &e.Label, &e.Amount, &e.SpentAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *PostgresStore) DeleteExpense(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BudgetSummaries returns per-category limit and spend for one month.
func (s *PostgresStore) BudgetSummaries(ctx context.Context, userID, month string) ([]models.BudgetSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT b.category, b.limit_amount, COALESCE(SUM(e.amount), 0)
		 FROM budgets b
		 LEFT JOIN expenses e ON e.budget_id = b.id
		 WHERE b.user_id = $1 AND b.month = $2
		 GROUP BY b.id
		 ORDER BY b.category`,
		userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.BudgetSummary{}
	for rows.Next() {
		var sm models.BudgetSummary
		if err := rows.Scan(&sm.Category, &sm.LimitAmount, &sm.Spent); err != nil {
			return nil, err
		}
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}
