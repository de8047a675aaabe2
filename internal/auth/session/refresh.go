package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// hashRefreshTokenHex reduces a refresh token to its storable hash:
// HMAC-SHA256(token, key) when key is set, SHA-256(token) otherwise.
// Stable 64-char hex output either way.
func hashRefreshTokenHex(token string, key []byte) string {
	if len(key) == 0 {
		sum := sha256.Sum256([]byte(token))
		return hex.EncodeToString(sum[:])
	}
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}

func newOpaqueRefreshToken(nBytes int, key []byte) (plain string, hashHex string, err error) {
	b := make([]byte, nBytes)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}

	// URL-safe, no padding.
	plain = base64.RawURLEncoding.EncodeToString(b)

	return plain, hashRefreshTokenHex(plain, key), nil
}
