package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a bcrypt hash for new and reset credentials.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a candidate password against a stored hash. Stored
// hashes come in two shapes: bcrypt for anything written by this code, and
// a legacy unsalted SHA-256 (base64 of the digest) inherited from the
// previous credential store. Legacy rows verify but are never written.
func VerifyPassword(password, stored string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return verifyLegacy(password, stored)
}

// IsLegacyHash reports whether a stored hash still uses the legacy scheme,
// so callers can rehash after a successful login.
func IsLegacyHash(stored string) bool {
	return !strings.HasPrefix(stored, "$2")
}

func verifyLegacy(password, stored string) bool {
	sum := sha256.Sum256([]byte(password))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(stored)) == 1
}
