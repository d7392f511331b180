package modulehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
)

func TestResolveRequestViewerDelegatesToResolver(t *testing.T) {
	t.Parallel()

	want := module.Viewer{DisplayName: "Test"}
	base := NewBase(module.Dependencies{ResolveViewer: func(*http.Request) module.Viewer { return want }})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestViewer(r); got != want {
		t.Fatalf("ResolveRequestViewer() = %+v, want %+v", got, want)
	}
}

func TestResolveRequestViewerFallsBackToSession(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestViewer(r); got != (module.Viewer{}) {
		t.Fatalf("ResolveRequestViewer() = %+v, want zero Viewer", got)
	}

	session := &redirectguard.Session{ID: "s1", User: &redirectguard.User{ID: "u1", Username: "vera", DisplayName: " Vera "}}
	r = r.WithContext(redirectguard.WithSession(r.Context(), redirectguard.StatusAuthenticated, session))
	got := base.ResolveRequestViewer(r)
	if got.DisplayName != "Vera" || got.Username != "vera" {
		t.Fatalf("ResolveRequestViewer() = %+v", got)
	}
	if sess, ok := base.Session(r); !ok || sess.ID != "s1" {
		t.Fatalf("Session() = %+v, %v", sess, ok)
	}
}

func TestResolveRequestLanguage(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{ResolveLanguage: func(*http.Request) string { return "en" }})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestLanguage(r); got != "en" {
		t.Fatalf("ResolveRequestLanguage() = %q, want %q", got, "en")
	}
	if got := NewBase(module.Dependencies{}).ResolveRequestLanguage(r); got != "" {
		t.Fatalf("ResolveRequestLanguage() = %q, want empty", got)
	}
}

func TestAuthStateWithoutGuardIsUnauthenticated(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	state := base.AuthState(httptest.NewRequest(http.MethodGet, "/", nil))
	if state.IsAuthenticated || state.IsLoading || state.User != nil {
		t.Fatalf("AuthState() = %+v", state)
	}
	if state := base.AuthState(nil); state.IsAuthenticated {
		t.Fatalf("AuthState(nil) = %+v", state)
	}
}

func TestWritePageAndNotFound(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	base.WritePage(rr, httptest.NewRequest(http.MethodGet, "/globes", nil), "Globes", 0, templ.Raw(`<p id="globe-list"></p>`))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `id="globe-list"`) {
		t.Fatalf("WritePage() = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	base.WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/globes/x", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("WriteNotFound() status = %d", rr.Code)
	}
}
