package http

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the opaque refresh token.
const RefreshCookieName = "refreshToken"

// CookieConfig controls the refresh cookie attributes. Secure must be set
// behind TLS so the opaque token never travels in clear text.
type CookieConfig struct {
	Secure bool
}

func setRefreshCookie(w http.ResponseWriter, cfg CookieConfig, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearRefreshCookie expires the cookie with an empty value so the client
// drops it immediately.
func clearRefreshCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func refreshCookieValue(r *http.Request) string {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
