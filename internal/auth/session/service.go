package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskflow/internal/identity"
)

// Service implements the session rotation protocol: it issues sessions
// (access + refresh), rotates refresh tokens, and revokes sessions on
// logout. Rotation is strictly forward-moving: a consumed refresh token
// is never revived.
type Service struct {
	cfg     Config
	store   Store
	tokens  TokenManager
	users   identity.Store
	hashKey []byte
}

// Issued is the result of issuing or rotating a session.
// RefreshToken is the only place the raw token ever exists server-side;
// it must go straight into the response cookie and nowhere else.
type Issued struct {
	SessionID    string
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// NewService constructs a Service. The user store is needed during
// rotation to rebuild access-token claims from the session's owner.
func NewService(cfg Config, store Store, tokens TokenManager, users identity.Store) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil || tokens == nil || users == nil {
		return nil, errors.New("session: nil dependency")
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		tokens:  tokens,
		users:   users,
		hashKey: cfg.refreshHashKey(),
	}, nil
}

// Issue creates a new session lineage for an authenticated user: a stored
// refresh grant plus a fresh access token.
func (s *Service) Issue(ctx context.Context, now time.Time, user identity.User) (Issued, error) {
	refreshPlain, refreshHash, err := newOpaqueRefreshToken(s.cfg.RefreshTokenBytes, s.hashKey)
	if err != nil {
		return Issued{}, err
	}

	refreshExp := now.Add(s.cfg.RefreshTTL)

	sessionID, err := s.store.Create(ctx, now, user.ID, refreshHash, refreshExp)
	if err != nil {
		return Issued{}, err
	}

	accessToken, accessExp, err := s.tokens.Issue(user, now)
	if err != nil {
		return Issued{}, err
	}

	return Issued{
		SessionID:    sessionID,
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: refreshPlain,
		RefreshExp:   refreshExp,
	}, nil
}

// Rotate consumes a presented refresh token and, when it matched an active
// session, issues its single replacement in the same lineage.
//
// Each successful call deletes exactly one session row and creates exactly
// one, so the active-session count per user never grows across refreshes.
// Any non-matching token (unknown, expired, already consumed) fails with
// ErrSessionNotFound and creates nothing.
func (s *Service) Rotate(ctx context.Context, now time.Time, refreshPlain string) (Issued, identity.User, error) {
	refreshPlain = strings.TrimSpace(refreshPlain)
	// Sanity bounds to avoid hashing pathological inputs.
	if refreshPlain == "" || len(refreshPlain) > 4096 {
		return Issued{}, identity.User{}, ErrSessionNotFound
	}

	refreshHash := hashRefreshTokenHex(refreshPlain, s.hashKey)

	row, err := s.store.ConsumeActiveByRefreshHash(ctx, now, refreshHash)
	if err != nil {
		return Issued{}, identity.User{}, err
	}

	user, err := s.users.GetUserByID(ctx, row.UserID)
	if err != nil {
		// Owner vanished after consume; the lineage simply ends here.
		if identity.IsNotFound(err) {
			return Issued{}, identity.User{}, ErrSessionNotFound
		}
		return Issued{}, identity.User{}, err
	}

	issued, err := s.Issue(ctx, now, user)
	if err != nil {
		return Issued{}, identity.User{}, err
	}
	return issued, user, nil
}

// Revoke consumes the session behind a presented refresh token (logout).
// Unknown or already-consumed tokens are ignored: logout is idempotent
// and must never fail for a client holding a stale cookie.
func (s *Service) Revoke(ctx context.Context, now time.Time, refreshPlain string) error {
	refreshPlain = strings.TrimSpace(refreshPlain)
	if refreshPlain == "" || len(refreshPlain) > 4096 {
		return nil
	}

	refreshHash := hashRefreshTokenHex(refreshPlain, s.hashKey)

	_, err := s.store.ConsumeActiveByRefreshHash(ctx, now, refreshHash)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// VerifyAccess validates an access token purely cryptographically; no
// server-side session lookup happens on the request path.
func (s *Service) VerifyAccess(token string, now time.Time) (AccessClaims, error) {
	return s.tokens.Verify(token, now)
}

// SweepExpired deletes sessions whose TTL has elapsed.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.store.DeleteExpired(ctx, now)
}
