package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the seed data and login path assume.
const DefaultBcryptCost = 12

// minBcryptCost is the floor for interactive logins; anything weaker is
// clamped up at hash time.
const minBcryptCost = 10

// HashPassword produces a bcrypt hash of password. The plaintext must never
// be stored or logged.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks password against a stored bcrypt hash.
// Returns (true, nil) on match, (false, nil) on mismatch, and a non-nil
// error only for malformed hashes.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
