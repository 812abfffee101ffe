package models

import "time"

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	LimitAmount float64   `json:"limit_amount"`
	Month       string    `json:"month"` // YYYY-MM
	Spent       float64   `json:"spent"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expense is a single spend recorded against a budget.
type Expense struct {
	ID       string    `json:"id"`
	BudgetID string    `json:"budget_id"`
	UserID   string    `json:"user_id"`
	Label    string    `json:"label"`
	Amount   float64   `json:"amount"`
	SpentAt  time.Time `json:"spent_at"`
}

// BudgetRequest is the JSON body for creating or updating a budget.
type BudgetRequest struct {
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit_amount"`
	Month       string  `json:"month"`
}

// ExpenseRequest is the JSON body for recording an expense.
type ExpenseRequest struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}
