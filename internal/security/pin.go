package security

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPin hashes a teacher PIN with bcrypt
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// IsPinHash reports whether a stored PIN is a bcrypt hash rather than plain text
func IsPinHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil && strings.HasPrefix(stored, "$2")
}

// MatchPin compares an entered PIN with the stored one, which may be plain or hashed.
// Plain PINs must match exactly.
func MatchPin(stored, entered string) bool {
	if IsPinHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(entered)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(entered)) == 1
}
