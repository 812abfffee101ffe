package store

import (
	"context"

	"github.com/lifehubapp/backend/internal/models"
)

const wellnessColumns = `id, user_id, to_char(log_date, 'YYYY-MM-DD'), mood, sleep_hours, water_ml, exercise_min, note, created_at`

func scanWellness(row interface{ Scan(...any) error }) (*models.WellnessLog, error) {
	var l models.WellnessLog
	err := row.Scan(&l.ID, &l.UserID, &l.LogDate, &l.Mood, &l.SleepHours, &l.WaterML, &l.ExerciseMin, &l.Note, &l.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &l, nil
}

// UpsertWellnessLog inserts or replaces the log for (user, date).
func (s *PostgresStore) UpsertWellnessLog(ctx context.Context, userID string, req *models.WellnessRequest) (*models.WellnessLog, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO wellness_logs (user_id, log_date, mood, sleep_hours, water_ml, exercise_min, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, log_date) DO UPDATE SET
		     mood = EXCLUDED.mood,
		     sleep_hours = EXCLUDED.sleep_hours,
		     water_ml = EXCLUDED.water_ml,
		     exercise_min = EXCLUDED.exercise_min,
		     note = EXCLUDED.note
		 RETURNING `+wellnessColumns,
		userID, req.LogDate, req.Mood, req.SleepHours, req.WaterML, req.ExerciseMin, req.Note,
	)
	return scanWellness(row)
}

// ListWellnessLogs returns logs in [from, to], most recent first. Empty
// bounds are ignored.
func (s *PostgresStore) ListWellnessLogs(ctx context.Context, userID, from, to string) ([]models.WellnessLog, error) {
	query := `SELECT ` + wellnessColumns + ` FROM wellness_logs WHERE user_id = $1`
	args := []any{userID}
	if from != "" {
		args = append(args, from)
		query += ` AND log_date >= $2`
	}
	if to != "" {
		args = append(args, to)
		if from != "" {
			query += ` AND log_date <= $3`
		} else {
			query += ` AND log_date <= $2`
		}
	}
	query += ` ORDER BY log_date DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.WellnessLog{}
	for rows.Next() {
		l, err := scanWellness(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// LatestWellnessLog returns the most recent log, or ErrNotFound.
func (s *PostgresStore) LatestWellnessLog(ctx context.Context, userID string) (*models.WellnessLog, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+wellnessColumns+` FROM wellness_logs
		 WHERE user_id = $1 ORDER BY log_date DESC LIMIT 1`, userID)
	return scanWellness(row)
}

func (s *PostgresStore) DeleteWellnessLog(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM wellness_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
