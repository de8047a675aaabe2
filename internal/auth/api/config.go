package authapi

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Config defines runtime configuration for the auth HTTP surface.
type Config struct {
	// Env is the deployment environment ("development" or "production").
	// Production turns on Secure cookies with SameSite=None so the refresh
	// cookie survives cross-site requests from the hosted frontend.
	Env string

	// MaxBodyBytes caps request body size for JSON decoding.
	MaxBodyBytes int64

	// RefreshCookieName is the name of the httpOnly refresh cookie.
	RefreshCookieName string

	// CookiePath scopes the refresh cookie.
	CookiePath string

	// CookieDomain optionally scopes the refresh cookie to a domain.
	CookieDomain string

	// BcryptCost is the cost used when hashing new passwords.
	BcryptCost int
}

// DefaultConfig returns development-friendly defaults.
func DefaultConfig() Config {
	return Config{
		Env:               "development",
		MaxBodyBytes:      1 << 20,
		RefreshCookieName: "refresh_token",
		CookiePath:        "/",
		BcryptCost:        12,
	}
}

// LoadConfigFromEnv loads auth API configuration from environment variables.
//
// Optional:
//   - TASKFLOW_ENV ("development" | "production")
//   - TASKFLOW_MAX_BODY_BYTES
//   - TASKFLOW_REFRESH_COOKIE_NAME
//   - TASKFLOW_COOKIE_DOMAIN
//   - TASKFLOW_BCRYPT_COST
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("TASKFLOW_ENV")); v != "" {
		cfg.Env = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_REFRESH_COOKIE_NAME")); v != "" {
		cfg.RefreshCookieName = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_COOKIE_DOMAIN")); v != "" {
		cfg.CookieDomain = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_BCRYPT_COST")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BcryptCost = n
		}
	}
	return cfg
}

func (c Config) production() bool {
	return c.Env == "production"
}

func (c Config) cookieSecure() bool {
	return c.production()
}

// cookieSameSite is None in production (cross-site frontend) and Lax in
// development, where Secure is off and None would be rejected by browsers.
func (c Config) cookieSameSite() http.SameSite {
	if c.production() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
