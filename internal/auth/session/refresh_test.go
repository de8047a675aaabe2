package session

import "testing"

func TestNewOpaqueRefreshToken(t *testing.T) {
	plain, hash, err := newOpaqueRefreshToken(32, nil)
	if err != nil {
		t.Fatalf("newOpaqueRefreshToken: %v", err)
	}
	if plain == "" {
		t.Fatal("empty token")
	}
	if len(hash) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(hash))
	}
	if hash != hashRefreshTokenHex(plain, nil) {
		t.Fatal("hash does not round-trip")
	}

	plain2, _, err := newOpaqueRefreshToken(32, nil)
	if err != nil {
		t.Fatalf("newOpaqueRefreshToken: %v", err)
	}
	if plain == plain2 {
		t.Fatal("two tokens should not collide")
	}
}

func TestHashRefreshTokenHex_HMACMode(t *testing.T) {
	plain := "some-refresh-token"
	sha := hashRefreshTokenHex(plain, nil)
	mac := hashRefreshTokenHex(plain, []byte("cookie-secret-of-enough-length"))

	if len(mac) != 64 {
		t.Fatalf("hmac hash length = %d", len(mac))
	}
	if sha == mac {
		t.Fatal("keyed and unkeyed hashes must differ")
	}
	if mac != hashRefreshTokenHex(plain, []byte("cookie-secret-of-enough-length")) {
		t.Fatal("hmac hash must be deterministic for a fixed key")
	}
	if mac == hashRefreshTokenHex(plain, []byte("another-cookie-secret-value")) {
		t.Fatal("different keys must produce different hashes")
	}
}
