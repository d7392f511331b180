package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func mountDashboard(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	mount, err := New(opts...).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.DashboardPrefix {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, routepath.DashboardPrefix)
	}
	return mount.Handler
}

func signedIn(req *http.Request) *http.Request {
	session := &redirectguard.Session{
		ID:   "sess-1",
		User: &redirectguard.User{ID: "u-1", Username: "vera", DisplayName: "Vera Rubin"},
	}
	return req.WithContext(redirectguard.WithSession(req.Context(), redirectguard.StatusAuthenticated, session))
}

func TestModuleIDReturnsDashboard(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "dashboard" {
		t.Fatalf("ID() = %q, want %q", got, "dashboard")
	}
	if New().Healthy() {
		t.Fatalf("Healthy() = true without a catalog")
	}
}

func TestDashboardSummarizesCatalog(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	cat := &catalog.Catalog{
		Satellites: []catalog.Satellite{{ID: "iss", Name: "ISS"}, {ID: "hubble", Name: "Hubble"}},
		Missions: []catalog.Mission{
			{ID: "m1", Name: "Expedition", Status: catalog.MissionActive, Satellite: "iss"},
			{ID: "m2", Name: "Deep Field", Status: catalog.MissionCompleted, Satellite: "hubble"},
		},
	}
	for i := 1; i <= 7; i++ {
		cat.Discoveries = append(cat.Discoveries, catalog.Discovery{
			ID: "d" + strconv.Itoa(i), Title: "Finding " + strconv.Itoa(i), Mission: "m1", Date: day(i),
		})
	}

	for _, path := range []string{routepath.Dashboard, routepath.DashboardPrefix} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			h := mountDashboard(t, WithCatalog(catalog.NewStaticHolder(cat)))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, signedIn(httptest.NewRequest(http.MethodGet, path, nil)))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
			}
			body := rr.Body.String()
			for _, want := range []string{"Welcome back, Vera Rubin", "Finding 7", "Finding 3", `href="/missions/m1"`} {
				if !strings.Contains(body, want) {
					t.Fatalf("body missing %q", want)
				}
			}
			if strings.Contains(body, "Finding 2") {
				t.Fatalf("body lists more than %d recent discoveries", recentLimit)
			}
		})
	}
}

func TestDashboardHTMXReturnsFragment(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	h := mountDashboard(t, WithCatalog(catalog.NewStaticHolder(cat)))
	req := signedIn(httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil))
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := strings.ToLower(rr.Body.String()); strings.Contains(body, "<html") {
		t.Fatalf("expected htmx fragment without document wrapper")
	}
}

func TestDashboardWithoutCatalogIsUnavailable(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, signedIn(httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil)))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestDashboardUnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t, WithCatalog(catalog.NewStaticHolder(&catalog.Catalog{})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, signedIn(httptest.NewRequest(http.MethodGet, routepath.DashboardPrefix+"missing", nil)))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
