package store

import (
	"context"
	"time"

	"github.com/lifehubapp/backend/internal/models"
)

const eventColumns = `id, user_id, title, location, starts_at, ends_at, all_day, created_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Location, &e.StartsAt, &e.EndsAt, &e.AllDay, &e.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

// ListEvents returns the user's events, optionally bounded by [from, to).
func (s *PostgresStore) ListEvents(ctx context.Context, userID string, from, to *time.Time) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += ` AND starts_at >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND starts_at < $3`
		} else {
			query += ` AND starts_at < $2`
		}
	}
	query += ` ORDER BY starts_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *PostgresStore) CreateEvent(ctx context.Context, userID, title, location string, startsAt time.Time, endsAt *time.Time, allDay bool) (*models.Event, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO events (user_id, title, location, starts_at, ends_at, all_day)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+eventColumns,
		userID, title, location, startsAt, endsAt, allDay,
	)
	return scanEvent(row)
}

func (s *PostgresStore) GetEvent(ctx context.Context, userID, id string) (*models.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	return scanEvent(row)
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, userID, id, title, location string, startsAt time.Time, endsAt *time.Time, allDay bool) (*models.Event, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE events SET title = $3, location = $4, starts_at = $5, ends_at = $6, all_day = $7
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+eventColumns,
		id, userID, title, location, startsAt, endsAt, allDay,
	)
	return scanEvent(row)
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
