package security

import (
	"net/http"
	"net/url"
	"time"
)

const (
	SessionCookieName = "session_token"
	FlashCookieName   = "flash"
)

func sessionCookieName(secure bool) string {
	if secure {
		return "__Host-" + SessionCookieName
	}
	return SessionCookieName
}

// SetSessionToken binds the opaque session token to the client. Max-Age is
// aligned with the server-side session TTL; the token is useless past it
// either way.
func SetSessionToken(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName(secure),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func ClearSessionToken(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName(secure),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func ReadSessionToken(r *http.Request) (string, error) {
	// Prefer the secure-prefixed cookie when present.
	if c, err := r.Cookie("__Host-" + SessionCookieName); err == nil {
		return c.Value, nil
	}
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// SetFlash stores a one-shot status message for the next rendered page.
// The value is URL-escaped because cookie values cannot carry spaces or '!'.
func SetFlash(w http.ResponseWriter, message string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// PopFlash reads and clears the pending flash message, if any.
func PopFlash(w http.ResponseWriter, r *http.Request, secure bool) string {
	c, err := r.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
