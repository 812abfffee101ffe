package models

// BudgetSummary is the aggregated spend for one budget category.
type BudgetSummary struct {
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit_amount"`
	Spent       float64 `json:"spent"`
}

// Dashboard is the aggregation returned by GET /api/dashboard.
type Dashboard struct {
	TodayEvents         []Event         `json:"today_events"`
	Budgets             []BudgetSummary `json:"budgets"`
	RoutinesDoneToday   int             `json:"routines_done_today"`
	RoutinesTotal       int             `json:"routines_total"`
	LatestWellness      *WellnessLog    `json:"latest_wellness"`
	UnreadNotifications int             `json:"unread_notifications"`
}
