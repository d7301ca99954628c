package security

import (
	"strings"
	"testing"

	"github.com/personal/coffee-catalog-backend/pkg/config"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("espresso-secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("espresso-secret", hash)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("espresso-secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	ok, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same-input", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("same-input", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct digests for identical inputs")
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("anything", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestVerifyRejectsUnknownVersion(t *testing.T) {
	hash, err := HashPassword("espresso-secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	for _, bad := range []string{"v=20", "v=", "19"} {
		tampered := strings.Replace(hash, "v=19", bad, 1)
		if _, err := VerifyPassword("espresso-secret", tampered); err == nil {
			t.Fatalf("expected error for version segment %q", bad)
		}
	}
}
