package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"taskflow/internal/auth/session"
	"taskflow/internal/httpapi"
	"taskflow/internal/identity"
)

// Handler wires the auth HTTP endpoints to the identity and session
// services.
type Handler struct {
	log      *slog.Logger
	cfg      Config
	users    identity.Store
	sessions *session.Service

	dummyHash string
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, sessions *session.Service) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if users == nil || sessions == nil {
		return nil, errors.New("auth: nil dependency")
	}

	h := &Handler{
		log:      log,
		cfg:      cfg,
		users:    users,
		sessions: sessions,
	}

	// Dummy hash for timing-resistant login checks when the email is
	// unknown.
	if hash, err := identity.HashPassword("dummy-password-for-timing-only", cfg.BcryptCost); err == nil {
		h.dummyHash = hash
	}

	return h, nil
}

// Register wires auth routes onto the provided mux. The /me route is
// protected by the gate; everything else is public.
func (h *Handler) Register(mux *http.ServeMux, gate *Gate) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/refresh", h.handleRefresh)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.Handle("GET /me", gate.Require(http.HandlerFunc(h.handleMe)))
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.DecodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	hash, err := identity.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		h.log.Error("auth.register.hash.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	user, err := h.users.CreateUser(ctx, identity.CreateUserInput{
		Name:         strings.TrimSpace(req.Name),
		Email:        identity.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         identity.RoleUser,
		Now:          now,
	})
	if err != nil {
		if identity.IsConflict(err) {
			httpapi.WriteErr(w, h.log, httpapi.Conflict("EMAIL_TAKEN", "Email already registered"))
			return
		}
		h.log.Error("auth.register.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	issued, err := h.sessions.Issue(ctx, now, user)
	if err != nil {
		h.log.Error("auth.register.issue_session.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("auth.register.ok", "user_id", user.ID)
	h.setRefreshCookie(w, issued.RefreshToken, issued.RefreshExp)
	httpapi.WriteData(w, http.StatusOK, authResponse{
		User:        toUserResponse(user),
		AccessToken: issued.AccessToken,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.DecodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	user, err := h.users.GetUserByEmail(ctx, identity.NormalizeEmail(req.Email))
	if err != nil {
		if identity.IsNotFound(err) {
			// Timing resistance: run a dummy verify so unknown emails
			// cost the same as wrong passwords.
			if h.dummyHash != "" {
				_, _ = identity.VerifyPassword(req.Password, h.dummyHash)
			}
			h.log.Info("auth.login.fail", "reason", "not_found")
			httpapi.WriteErr(w, h.log, httpapi.InvalidCredentials())
			return
		}
		h.log.Error("auth.login.lookup.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	okPw, err := identity.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !okPw {
		h.log.Info("auth.login.fail", "reason", "bad_password", "user_id", user.ID)
		httpapi.WriteErr(w, h.log, httpapi.InvalidCredentials())
		return
	}

	issued, err := h.sessions.Issue(ctx, now, user)
	if err != nil {
		h.log.Error("auth.login.issue_session.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("auth.login.ok", "user_id", user.ID, "session_id", issued.SessionID)
	h.setRefreshCookie(w, issued.RefreshToken, issued.RefreshExp)
	httpapi.WriteData(w, http.StatusOK, authResponse{
		User:        toUserResponse(user),
		AccessToken: issued.AccessToken,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromCookie(r)
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	issued, _, err := h.sessions.Rotate(ctx, now, refreshToken)
	if err != nil {
		// The cookie is left untouched on failure; a stale cookie is
		// harmless and the client decides when to drop it.
		if errors.Is(err, session.ErrSessionNotFound) {
			h.log.Info("auth.refresh.fail", "reason", "session_not_found")
			httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
			return
		}
		h.log.Error("auth.refresh.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("auth.refresh.ok", "session_id", issued.SessionID)
	h.setRefreshCookie(w, issued.RefreshToken, issued.RefreshExp)
	httpapi.WriteData(w, http.StatusOK, refreshResponse{
		AccessToken: issued.AccessToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	// Best effort: revoke the session behind the cookie when present.
	// Logout always succeeds, even with no cookie or a stale one.
	if refreshToken, ok := h.refreshTokenFromCookie(r); ok {
		if err := h.sessions.Revoke(ctx, now, refreshToken); err != nil {
			h.log.Error("auth.logout.revoke.fail", "err", err)
		}
	}

	h.clearRefreshCookie(w)
	httpapi.WriteData(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}

	ctx := r.Context()
	user, err := h.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		// Token outlived the account; treat as unauthenticated.
		if identity.IsNotFound(err) {
			httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
			return
		}
		h.log.Error("auth.me.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	httpapi.WriteData(w, http.StatusOK, struct {
		User userResponse `json:"user"`
	}{User: toUserResponse(user)})
}
