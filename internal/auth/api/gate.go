package authapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"taskflow/internal/auth/session"
	"taskflow/internal/httpapi"
)

type ctxKey int

const identityKey ctxKey = 0

// IdentityFromContext returns the access claims the gate attached to the
// request. ok is false on requests that never passed through the gate.
func IdentityFromContext(ctx context.Context) (session.AccessClaims, bool) {
	claims, ok := ctx.Value(identityKey).(session.AccessClaims)
	return claims, ok
}

// Gate is the authorization middleware for protected routes. It validates
// the bearer access token and attaches the caller's claims to the request
// context. Every failure mode is the same generic 401; clients learn
// nothing about why a token was rejected.
type Gate struct {
	log      *slog.Logger
	sessions *session.Service
}

// NewGate constructs the gate.
func NewGate(log *slog.Logger, sessions *session.Service) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{log: log, sessions: sessions}
}

// Require wraps next so it only runs for requests carrying a valid access
// token.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpapi.WriteErr(w, g.log, httpapi.Unauthorized())
			return
		}

		claims, err := g.sessions.VerifyAccess(token, time.Now().UTC())
		if err != nil {
			httpapi.WriteErr(w, g.log, httpapi.Unauthorized())
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
