package store

import (
	"context"

	"github.com/lifehubapp/backend/internal/models"
)

const routineColumns = `id, user_id, title, description, frequency, completed_dates, created_at`

func scanRoutine(row interface{ Scan(...any) error }) (*models.Routine, error) {
	var rt models.Routine
	err := row.Scan(&rt.ID, &rt.UserID, &rt.Title, &rt.Description, &rt.Frequency, &rt.CompletedDates, &rt.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rt, nil
}

func (s *PostgresStore) ListRoutines(ctx context.Context, userID string) ([]models.Routine, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+routineColumns+` FROM routines WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, *rt)
	}
	return routines, rows.Err()
}

func (s *PostgresStore) CreateRoutine(ctx context.Context, userID string, req *models.RoutineRequest) (*models.Routine, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO routines (user_id, title, description, frequency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+routineColumns,
		userID, req.Title, req.Description, req.Frequency,
	)
	return scanRoutine(row)
}

func (s *PostgresStore) GetRoutine(ctx context.Context, userID, id string) (*models.Routine, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+routineColumns+` FROM routines WHERE id = $1 AND user_id = $2`, id, userID)
	return scanRoutine(row)
}

func (s *PostgresStore) UpdateRoutine(ctx context.Context, userID, id string, req *models.RoutineRequest) (*models.Routine, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE routines SET title = $3, description = $4, frequency = $5
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+routineColumns,
		id, userID, req.Title, req.Description, req.Frequency,
	)
	return scanRoutine(row)
}

func (s *PostgresStore) DeleteRoutine(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM routines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteRoutine appends date to the routine's completed dates if not
// already present, so repeated completions on the same day are idempotent.
func (s *PostgresStore) CompleteRoutine(ctx context.Context, userID, id, date string) (*models.Routine, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE routines
		 SET completed_dates = CASE
		     WHEN $3 = ANY(completed_dates) THEN completed_dates
		     ELSE array_append(completed_dates, $3)
		 END
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+routineColumns,
		id, userID, date,
	)
	return scanRoutine(row)
}

// CountRoutinesDone returns how many of the user's routines were completed
// on the given date, along with the total number of routines.
func (s *PostgresStore) CountRoutinesDone(ctx context.Context, userID, date string) (done, total int, err error) {
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE $2 = ANY(completed_dates)), COUNT(*)
		 FROM routines WHERE user_id = $1`,
		userID, date,
	).Scan(&done, &total)
	return done, total, err
}
