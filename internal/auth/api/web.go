package authapi

import (
	"net/http"
	"strings"
	"time"
)

// setRefreshCookie installs the refresh token as an httpOnly cookie. The
// token never appears in a response body; the cookie is the only transport.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, value string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.RefreshCookieName,
		Value:    value,
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.cfg.cookieSecure(),
		SameSite: h.cfg.cookieSameSite(),
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.RefreshCookieName,
		Value:    "",
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.cookieSecure(),
		SameSite: h.cfg.cookieSameSite(),
	})
}

func (h *Handler) refreshTokenFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(h.cfg.RefreshCookieName)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}
