package models

import (
	"encoding/json"
	"time"
)

// User represents a row in the PostgreSQL users table.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // never serialize
	Timezone     string          `json:"timezone"`
	Preferences  json.RawMessage `json:"preferences"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SignupRequest is the JSON body for POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the JSON body for PUT /api/profile.
type UpdateProfileRequest struct {
	Name        string          `json:"name"`
	Timezone    string          `json:"timezone"`
	Preferences json.RawMessage `json:"preferences"`
}
