package profile

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func TestMaskToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  string
	}{
		{token: "", want: ""},
		{token: "short", want: "••••••••"},
		{token: "eyJhbGciOiJIUzI1NiJ9.payload.sig-tail", want: "eyJh…tail"},
	}
	for _, tc := range tests {
		if got := maskToken(tc.token); got != tc.want {
			t.Fatalf("maskToken(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestProfileShowsSessionUser(t *testing.T) {
	t.Parallel()

	mount, err := New(module.Dependencies{}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	session := &redirectguard.Session{
		ID:          "sess-1",
		AccessToken: "eyJhbGciOiJIUzI1NiJ9.payload.sig-tail",
		User: &redirectguard.User{
			ID:          "user-1",
			Username:    "vera",
			Email:       "vera@example.com",
			DisplayName: "Vera Rubin",
		},
	}
	req := httptest.NewRequest(http.MethodGet, routepath.Profile, nil)
	req = req.WithContext(redirectguard.WithSession(req.Context(), redirectguard.StatusAuthenticated, session))
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"user-1", "vera@example.com", "Vera Rubin", "eyJh…tail"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "payload") {
		t.Fatalf("body leaks the full access token")
	}
}

func TestProfileWithoutSessionIsUnauthorized(t *testing.T) {
	t.Parallel()

	mount, err := New(module.Dependencies{}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Profile, nil))
	if rr.Code == http.StatusOK {
		t.Fatalf("status = %d, want an error", rr.Code)
	}
}
