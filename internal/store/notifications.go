package store

import (
	"context"

	"github.com/lifehubapp/backend/internal/models"
)

const notificationColumns = `id, user_id, kind, title, body, read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

// ListNotifications returns the user's notifications, unread first.
func (s *PostgresStore) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 ORDER BY read, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *PostgresStore) CreateNotification(ctx context.Context, userID, kind, title, body string) (*models.Notification, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, kind, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+notificationColumns,
		userID, kind, title, body,
	)
	return scanNotification(row)
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE notifications SET read = TRUE
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+notificationColumns,
		id, userID,
	)
	return scanNotification(row)
}

func (s *PostgresStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`, userID)
	return err
}

func (s *PostgresStore) DeleteNotification(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID).Scan(&n)
	return n, err
}
