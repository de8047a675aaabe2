package session

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config defines runtime configuration for the session subsystem.
//
// It is environment-driven so deployments can tune security parameters
// without code changes. The JWT secret is process-wide and loaded once;
// rotating it invalidates all outstanding access tokens, which is
// acceptable because they are short-lived.
type Config struct {
	// Issuer is the value set in the "iss" claim of access tokens.
	Issuer string

	// AccessTokenTTL defines the lifetime of access tokens.
	AccessTokenTTL time.Duration

	// RefreshTTL defines the lifetime of refresh sessions.
	RefreshTTL time.Duration

	// RefreshTokenBytes defines the number of random bytes used to
	// generate opaque refresh tokens.
	RefreshTokenBytes int

	// JWTSecret signs HS256 access tokens. Required, min 20 bytes.
	JWTSecret string

	// CookieSecret, when set (min 20 bytes), keys HMAC-SHA256 hashing of
	// refresh tokens; when empty, plain SHA-256 is used.
	CookieSecret string
}

// DefaultConfig returns defaults matching the documented protocol:
// 15-minute access tokens and 30-day refresh sessions.
func DefaultConfig() Config {
	return Config{
		Issuer:            "taskflow",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTTL:        30 * 24 * time.Hour,
		RefreshTokenBytes: 32,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - TASKFLOW_JWT_SECRET
//
// Optional:
//   - TASKFLOW_AUTH_ISSUER
//   - TASKFLOW_ACCESS_TOKEN_TTL (Go duration)
//   - TASKFLOW_REFRESH_TTL_DAYS (positive integer)
//   - TASKFLOW_REFRESH_TOKEN_BYTES (32..64)
//   - TASKFLOW_COOKIE_SECRET
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("TASKFLOW_AUTH_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := strings.TrimSpace(os.Getenv("TASKFLOW_ACCESS_TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTokenTTL = d
	}

	if v := strings.TrimSpace(os.Getenv("TASKFLOW_REFRESH_TTL_DAYS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTTL = time.Duration(n) * 24 * time.Hour
	}

	if v := strings.TrimSpace(os.Getenv("TASKFLOW_REFRESH_TOKEN_BYTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 64 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTokenBytes = n
	}

	cfg.JWTSecret = strings.TrimSpace(os.Getenv("TASKFLOW_JWT_SECRET"))
	cfg.CookieSecret = strings.TrimSpace(os.Getenv("TASKFLOW_COOKIE_SECRET"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the secret-length policy. Fail-fast is intentional:
// silently running with a weak signing secret is unacceptable.
func (c Config) Validate() error {
	if len(c.JWTSecret) < 20 {
		return ErrConfig
	}
	if c.CookieSecret != "" && len(c.CookieSecret) < 20 {
		return ErrConfig
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTTL <= 0 {
		return ErrConfig
	}
	if c.RefreshTokenBytes < 32 || c.RefreshTokenBytes > 64 {
		return ErrConfig
	}
	return nil
}

func (c Config) refreshHashKey() []byte {
	if c.CookieSecret == "" {
		return nil
	}
	return []byte(c.CookieSecret)
}
