// Package pendingredirect stores the guard's pending redirect in a
// browser-session cookie.
package pendingredirect

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie holding the guard's pending_redirect key.
const CookieName = cookiePrefix + "pending_redirect"

const cookiePrefix = "mc_"

// CookieStorage exposes one request/response pair as guard storage. Reads see
// writes made earlier through the same value, so a Set followed by Get in one
// request behaves like in-memory storage. Each key maps to one cookie named
// "mc_" + key.
type CookieStorage struct {
	w      http.ResponseWriter
	r      *http.Request
	policy requestmeta.SchemePolicy

	local   map[string]string
	removed map[string]bool
}

// New binds storage to w and r.
func New(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) *CookieStorage {
	return &CookieStorage{
		w:       w,
		r:       r,
		policy:  policy,
		local:   map[string]string{},
		removed: map[string]bool{},
	}
}

// Get returns the stored value for key.
func (s *CookieStorage) Get(key string) (string, bool) {
	if value, ok := s.local[key]; ok {
		return value, true
	}
	if s.removed[key] || s.r == nil {
		return "", false
	}
	cookie, err := s.r.Cookie(cookieName(key))
	if err != nil || cookie == nil {
		return "", false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

// Set stores value under key. The cookie has no expiry so it is dropped when
// the browser session ends.
func (s *CookieStorage) Set(key string, value string) {
	s.local[key] = value
	delete(s.removed, key)
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     cookieName(key),
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(s.r, s.policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// Remove deletes key.
func (s *CookieStorage) Remove(key string) {
	delete(s.local, key)
	s.removed[key] = true
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     cookieName(key),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(s.r, s.policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func cookieName(key string) string {
	return cookiePrefix + key
}
