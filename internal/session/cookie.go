package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const (
	// CookieName is the cookie holding the session id.
	CookieName = "lantern_session"

	// FlashCookieName is the cookie holding a pending flash message.
	FlashCookieName = "lantern_flash"
)

// CookieOptions controls the attributes of the cookies set by this package.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// SetCookie points the visitor's session cookie at sess.
func SetCookie(w http.ResponseWriter, sess Session, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the visitor's session cookie.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// IDFromRequest returns the session id the request carries, or "".
func IDFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Flash is a one-time message shown on the next page the visitor sees.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const flashMaxAge = 60

// SetFlash stores f in a short-lived cookie for the next request to show.
func SetFlash(w http.ResponseWriter, f Flash) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the flash message r carries, if any, and clears it so it
// is shown only once.
func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	c, err := r.Cookie(FlashCookieName)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return Flash{}, false
	}
	return f, true
}
