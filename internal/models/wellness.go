package models

import "time"

// WellnessLog is one day's wellness record. One row per user per date.
type WellnessLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	LogDate     string    `json:"log_date"` // YYYY-MM-DD
	Mood        int       `json:"mood"`     // 1..5
	SleepHours  float64   `json:"sleep_hours"`
	WaterML     int       `json:"water_ml"`
	ExerciseMin int       `json:"exercise_min"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// WellnessRequest is the JSON body for upserting a day's log.
type WellnessRequest struct {
	LogDate     string  `json:"log_date"`
	Mood        int     `json:"mood"`
	SleepHours  float64 `json:"sleep_hours"`
	WaterML     int     `json:"water_ml"`
	ExerciseMin int     `json:"exercise_min"`
	Note        string  `json:"note"`
}
