package weberror

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	"golang.org/x/text/message"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/missions/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), module.Dependencies{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="app-error-state"`) || !strings.Contains(body, "Page not found") {
		t.Fatalf("body missing app error state: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/settings/language", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), module.Dependencies{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestPublicMessageUsesLocalizationKey(t *testing.T) {
	t.Parallel()

	err := apperrors.EK(apperrors.KindUnavailable, "error.auth_unavailable", "dial tcp: refused")
	got := PublicMessage(stubLocalizer{"error.auth_unavailable": "Auth is down."}, err)
	if got != "Auth is down." {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(stubLocalizer{}, err); got != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("PublicMessage(missing key) = %q", got)
	}
}

func TestWriteAppErrorHTMXRendersFragmentOnly(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/globes", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	WriteAppError(rr, req, http.StatusInternalServerError, module.Dependencies{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") || !strings.Contains(body, `data-status="500"`) {
		t.Fatalf("unexpected htmx error body: %q", body)
	}
}

func TestSessionPendingOmitsProtectedChrome(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()
	SessionPending(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `data-status="503"`) {
		t.Fatalf("body missing 503 state: %q", body)
	}
	for _, forbidden := range []string{`class="sidebar"`, "Back to home"} {
		if strings.Contains(body, forbidden) {
			t.Fatalf("body contains %q: %q", forbidden, body)
		}
	}
}

type stubLocalizer map[string]string

func (s stubLocalizer) Sprintf(key message.Reference, _ ...any) string {
	if k, ok := key.(string); ok {
		if value, ok := s[k]; ok {
			return value
		}
		return k
	}
	return ""
}
