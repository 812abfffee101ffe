package store

import (
	"context"
	"encoding/json"

	"github.com/lifehubapp/backend/internal/models"
)

const userColumns = `id, email, name, password_hash, timezone, preferences, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Timezone, &u.Preferences, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// CreateUser inserts a new user. Returns ErrDuplicate if the email is taken.
func (s *PostgresStore) CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, name, passwordHash,
	)
	return scanUser(row)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateProfile updates name, timezone and preferences for one user.
func (s *PostgresStore) UpdateProfile(ctx context.Context, id, name, timezone string, preferences json.RawMessage) (*models.User, error) {
	if len(preferences) == 0 {
		preferences = json.RawMessage(`{}`)
	}
	row := s.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, timezone = $3, preferences = $4
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, name, timezone, preferences,
	)
	return scanUser(row)
}
