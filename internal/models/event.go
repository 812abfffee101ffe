package models

import "time"

// Event is a calendar entry.
type Event struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Location  string     `json:"location"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	AllDay    bool       `json:"all_day"`
	CreatedAt time.Time  `json:"created_at"`
}

// EventRequest is the JSON body for creating or updating an event.
// Times are RFC3339 strings, validated before any storage call.
type EventRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	AllDay   bool   `json:"all_day"`
}
