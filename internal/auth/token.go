package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Internal token failure reasons. Handlers never surface these to clients;
// they exist so logs can say why a token was rejected.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
)

// Tokens issues and verifies signed bearer tokens. Tokens are self-contained:
// subject and expiry live in the claims, there is no server-side session state.
type Tokens struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token whose subject is the user id, valid for the configured TTL.
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the encoded user id.
// The returned error distinguishes malformed, expired, and bad-signature
// tokens for logging only.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
