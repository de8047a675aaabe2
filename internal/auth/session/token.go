package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/identity"
)

// AccessClaims is the identity envelope carried by access tokens and
// propagated through request context by the authorization gate.
type AccessClaims struct {
	UserID    string
	Email     string
	Name      string
	Role      identity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// TokenManager issues and verifies short-lived access tokens.
type TokenManager interface {
	Issue(u identity.User, now time.Time) (token string, exp time.Time, err error)
	Verify(token string, now time.Time) (AccessClaims, error)
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type hs256Manager struct {
	issuer string
	ttl    time.Duration
	secret []byte
}

// NewHS256Manager builds a TokenManager signing HS256 JWTs with the
// configured process-wide secret.
func NewHS256Manager(cfg Config) (TokenManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &hs256Manager{
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTokenTTL,
		secret: []byte(cfg.JWTSecret),
	}, nil
}

func (m *hs256Manager) Issue(u identity.User, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.ttl)

	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature, issuer, and expiry against the provided clock.
// Returns ErrTokenExpired for an elapsed expiry and ErrTokenInvalid for
// everything else; callers must not let the distinction leak to clients.
func (m *hs256Manager) Verify(token string, now time.Time) (AccessClaims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AccessClaims{}, ErrTokenExpired
		}
		return AccessClaims{}, ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return AccessClaims{}, ErrTokenInvalid
	}

	role := identity.Role(claims.Role)
	if !role.Valid() {
		return AccessClaims{}, ErrTokenInvalid
	}

	out := AccessClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
		Issuer: claims.Issuer,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
