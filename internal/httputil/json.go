// Package httputil holds the JSON response helpers shared by all handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope. The message must be a fixed
// literal chosen by the caller, never text taken from an internal error.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Common error responses used across handlers.

func Unauthenticated(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "not authenticated")
}

func InvalidCredentials(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "invalid credentials")
}

func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "not found")
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal error")
}

func Conflict(w http.ResponseWriter, msg string) {
	Error(w, http.StatusConflict, msg)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "too many requests")
}
