package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
)

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatal("expected nil request to have no session cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "http://mc.example.test", nil)
	if _, ok := Read(req); ok {
		t.Fatal("expected missing cookie")
	}
	req.AddCookie(&http.Cookie{Name: Name, Value: "  ws-1  "})
	value, ok := Read(req)
	if !ok || value != "ws-1" {
		t.Fatalf("Read() = %q, %v", value, ok)
	}
}

func TestWriteIsBrowserSessionScoped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		wantSecure bool
	}{
		{name: "https", target: "https://mc.example.test", wantSecure: true},
		{name: "http", target: "http://mc.example.test", wantSecure: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			Write(rr, httptest.NewRequest(http.MethodGet, tc.target, nil), "ws-1", requestmeta.SchemePolicy{})
			cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
			if err != nil {
				t.Fatalf("ParseSetCookie() error = %v", err)
			}
			if cookie.Name != Name || cookie.Value != "ws-1" {
				t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
			}
			if cookie.Secure != tc.wantSecure {
				t.Fatalf("Secure = %v, want %v", cookie.Secure, tc.wantSecure)
			}
			if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
				t.Fatalf("unexpected attributes: %+v", cookie)
			}
			if cookie.MaxAge != 0 || !cookie.Expires.IsZero() {
				t.Fatalf("expected browser-session cookie, got MaxAge=%d Expires=%v", cookie.MaxAge, cookie.Expires)
			}
		})
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Clear(rr, httptest.NewRequest(http.MethodGet, "http://mc.example.test", nil), requestmeta.SchemePolicy{})
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != Name || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired %s cookie, got %+v", Name, cookie)
	}
	Clear(nil, nil, requestmeta.SchemePolicy{})
}
