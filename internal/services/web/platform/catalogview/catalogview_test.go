package catalogview

import (
	"testing"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
)

type staticSource struct{ cat *catalog.Catalog }

func (s staticSource) Current() *catalog.Catalog { return s.cat }

func TestLoadReportsUnavailable(t *testing.T) {
	t.Parallel()

	if _, err := Load(nil); apperrors.KindOf(err) != apperrors.KindUnavailable {
		t.Fatalf("Load(nil) err = %v", err)
	}
	if _, err := Load(staticSource{}); apperrors.KindOf(err) != apperrors.KindUnavailable {
		t.Fatalf("Load(empty) err = %v", err)
	}
}

func TestMissionAndDiscoveryRows(t *testing.T) {
	t.Parallel()

	cat := &catalog.Catalog{
		Satellites: []catalog.Satellite{{ID: "hubble", Name: "Hubble Space Telescope"}},
		Missions: []catalog.Mission{
			{ID: "42", Name: "Deep Field", Status: catalog.MissionActive, Satellite: "hubble", Launched: time.Date(1990, 4, 24, 0, 0, 0, 0, time.UTC)},
		},
		Discoveries: []catalog.Discovery{
			{ID: "d1", Title: "Faint arcs", Mission: "42", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			{ID: "d2", Title: "Orphan", Mission: "gone"},
		},
	}

	row := Mission(cat, cat.Missions[0])
	if row.SatelliteName != "Hubble Space Telescope" || row.Launched != "1990-04-24" || row.URL != "/missions/42" {
		t.Fatalf("Mission() = %+v", row)
	}

	rows := Discoveries(cat, cat.Discoveries)
	if len(rows) != 2 {
		t.Fatalf("Discoveries() len = %d", len(rows))
	}
	if rows[0].MissionName != "Deep Field" || rows[0].MissionURL != "/missions/42" || rows[0].Date != "2024-01-02" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].MissionName != "" || rows[1].Date != "" {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
}
