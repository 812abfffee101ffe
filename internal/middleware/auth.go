package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lifehubapp/backend/internal/httputil"
)

// TokenVerifier resolves a bearer token string to a user id.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type ctxKey int

const userIDKey ctxKey = 1

// UserID returns the authenticated user id injected by RequireAuth,
// or "" if the request did not pass through it.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// WithUserID injects a user id into the context. Exported for handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireAuth validates the bearer token from the Authorization header and
// injects the resolved user id into the request context. The client always
// gets a generic 401; the internal rejection reason goes to the log only.
func RequireAuth(tokens TokenVerifier, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				httputil.Unauthenticated(w)
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected")
				httputil.Unauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
