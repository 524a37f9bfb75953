package security

import (
	"crypto/rand"
	"encoding/base64"
)

// NewRandomString returns n random bytes URL-safe base64 encoded. Password
// reset tokens use n=32.
func NewRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
