package security

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("taller123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if IsLegacyHash(hash) {
		t.Fatal("new hashes must not look legacy")
	}
	if !VerifyPassword("taller123", hash) {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword("taller124", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestVerifyLegacySHA256Hash(t *testing.T) {
	sum := sha256.Sum256([]byte("clave-vieja"))
	stored := base64.StdEncoding.EncodeToString(sum[:])

	if !IsLegacyHash(stored) {
		t.Fatal("expected legacy hash to be detected")
	}
	if !VerifyPassword("clave-vieja", stored) {
		t.Fatal("expected legacy hash to verify")
	}
	if VerifyPassword("clave-nueva", stored) {
		t.Fatal("expected wrong password to fail against legacy hash")
	}
}

func TestNewRandomStringLengthAndUniqueness(t *testing.T) {
	a, err := NewRandomString(32)
	if err != nil {
		t.Fatalf("random string: %v", err)
	}
	b, err := NewRandomString(32)
	if err != nil {
		t.Fatalf("random string: %v", err)
	}
	if a == b {
		t.Fatal("two random tokens must differ")
	}
	// 32 bytes raw-URL encoded: ceil(32*8/6) characters.
	if len(a) != 43 {
		t.Fatalf("unexpected encoded length: %d", len(a))
	}
}
