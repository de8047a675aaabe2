package identity

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Cost 10 keeps the test fast while staying inside the allowed range.
	hash, err := HashPassword("pw12345678", 10)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("not a bcrypt hash: %q", hash)
	}

	ok, err := VerifyPassword("pw12345678", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("pw12345678", "not-a-hash"); err == nil {
		t.Fatal("malformed hash should error")
	}
}

func TestHashPassword_CostClamped(t *testing.T) {
	// Costs below the interactive-login floor are raised, not honored.
	hash, err := HashPassword("pw12345678", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$10$") && !strings.HasPrefix(hash, "$2b$10$") {
		t.Fatalf("cost not clamped to 10: %q", hash)
	}
}
