package models

import "time"

// Routine is a recurring habit tracked by the user.
type Routine struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Frequency      string    `json:"frequency"` // daily or weekly
	CompletedDates []string  `json:"completed_dates"`
	CreatedAt      time.Time `json:"created_at"`
}

// RoutineRequest is the JSON body for creating or updating a routine.
type RoutineRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}
