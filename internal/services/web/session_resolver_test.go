package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/sessioncookie"
)

func requestWithSession(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if id != "" {
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: id})
	}
	return req
}

func TestSessionResolverWithoutCookieIsUnauthenticated(t *testing.T) {
	t.Parallel()

	auth := newFakeAuth()
	r := newSessionResolver(auth, nil, time.Minute, nil)
	status, session := r.ResolveSession(requestWithSession(""))
	if status != redirectguard.StatusUnauthenticated || session != nil {
		t.Fatalf("ResolveSession = (%q, %v), want unauthenticated", status, session)
	}
	if auth.calls() != 0 {
		t.Fatalf("backend calls = %d, want 0", auth.calls())
	}
}

func TestSessionResolverResolvesAndCachesSession(t *testing.T) {
	t.Parallel()

	auth := newFakeAuth()
	auth.addSession("sess-1", "ada")
	r := newSessionResolver(auth, nil, time.Minute, nil)

	for i := 0; i < 3; i++ {
		status, session := r.ResolveSession(requestWithSession("sess-1"))
		if status != redirectguard.StatusAuthenticated {
			t.Fatalf("status = %q, want authenticated", status)
		}
		if session == nil || session.User == nil || session.User.Username != "ada" {
			t.Fatalf("session = %+v, want user ada", session)
		}
	}
	if auth.calls() != 1 {
		t.Fatalf("backend calls = %d, want 1", auth.calls())
	}

	r.Invalidate("sess-1")
	r.ResolveSession(requestWithSession("sess-1"))
	if auth.calls() != 2 {
		t.Fatalf("backend calls after invalidate = %d, want 2", auth.calls())
	}
}

func TestSessionResolverRejectedSessionIsUnauthenticated(t *testing.T) {
	t.Parallel()

	r := newSessionResolver(newFakeAuth(), nil, time.Minute, nil)
	status, session := r.ResolveSession(requestWithSession("revoked"))
	if status != redirectguard.StatusUnauthenticated || session != nil {
		t.Fatalf("ResolveSession = (%q, %v), want unauthenticated", status, session)
	}
}

func TestSessionResolverReportsLoadingWhenUnsure(t *testing.T) {
	t.Parallel()

	down := newFakeAuth()
	down.sessionErr = errors.New("connection refused")

	notServing := newFakeAuth()
	notServing.addSession("sess-1", "ada")

	tests := []struct {
		name     string
		backend  SessionBackend
		health   HealthSource
		wantCall bool
	}{
		{name: "no backend", backend: nil},
		{name: "backend error", backend: down, wantCall: true},
		{name: "health not serving", backend: notServing, health: &fakeHealth{serving: false}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newSessionResolver(tc.backend, tc.health, time.Minute, nil)
			status, session := r.ResolveSession(requestWithSession("sess-1"))
			if status != redirectguard.StatusLoading || session != nil {
				t.Fatalf("ResolveSession = (%q, %v), want loading", status, session)
			}
			if fake, ok := tc.backend.(*fakeAuth); ok {
				if got := fake.calls() > 0; got != tc.wantCall {
					t.Fatalf("backend called = %v, want %v", got, tc.wantCall)
				}
			}
		})
	}
}

func TestSessionResolverRecoversWhenHealthReturns(t *testing.T) {
	t.Parallel()

	auth := newFakeAuth()
	auth.addSession("sess-1", "ada")
	health := &fakeHealth{}
	r := newSessionResolver(auth, health, time.Minute, nil)

	if status, _ := r.ResolveSession(requestWithSession("sess-1")); status != redirectguard.StatusLoading {
		t.Fatalf("status while down = %q, want loading", status)
	}
	health.set(true)
	if status, _ := r.ResolveSession(requestWithSession("sess-1")); status != redirectguard.StatusAuthenticated {
		t.Fatalf("status after recovery = %q, want authenticated", status)
	}
}
