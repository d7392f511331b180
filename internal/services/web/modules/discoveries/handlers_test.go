package discoveries

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func TestDiscoveriesNewestFirst(t *testing.T) {
	t.Parallel()

	cat := &catalog.Catalog{
		Missions: []catalog.Mission{{ID: "42", Name: "Deep Field Revisit", Status: catalog.MissionActive}},
		Discoveries: []catalog.Discovery{
			{ID: "old", Title: "Older finding", Mission: "42", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "new", Title: "Newer finding", Mission: "42", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	mount, err := New(WithCatalog(catalog.NewStaticHolder(cat))).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Discoveries, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	newer, older := strings.Index(body, "Newer finding"), strings.Index(body, "Older finding")
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("body = %q, want newest discovery first", body)
	}
	if !strings.Contains(body, `href="/missions/42"`) {
		t.Fatalf("body missing mission link")
	}
}

func TestDiscoveriesEmptyState(t *testing.T) {
	t.Parallel()

	mount, err := New(WithCatalog(catalog.NewStaticHolder(&catalog.Catalog{}))).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.DiscoveriesPrefix, nil))
	if !strings.Contains(rr.Body.String(), "No discoveries recorded yet.") {
		t.Fatalf("body = %q, want empty state", rr.Body.String())
	}
}
