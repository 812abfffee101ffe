package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of the plaintext password.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// A malformed stored hash fails closed.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
