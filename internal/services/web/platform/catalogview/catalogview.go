// Package catalogview maps observatory catalog entries to page view models
// shared by the catalog-backed modules.
package catalogview

import (
	"time"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// DateLayout is how catalog dates are shown.
const DateLayout = "2006-01-02"

// Source publishes the current catalog snapshot.
type Source interface {
	Current() *catalog.Catalog
}

// Load returns the current snapshot or an unavailable error.
func Load(src Source) (*catalog.Catalog, error) {
	if src == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "catalog is not configured")
	}
	cat := src.Current()
	if cat == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "catalog is not loaded")
	}
	return cat, nil
}

// FormatDate renders t as a calendar date, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// Mission maps a mission to a table row.
func Mission(cat *catalog.Catalog, mission catalog.Mission) webtemplates.MissionRow {
	row := webtemplates.MissionRow{
		Name:          mission.Name,
		Status:        mission.Status,
		SatelliteName: mission.Satellite,
		Launched:      FormatDate(mission.Launched),
		URL:           routepath.Mission(mission.ID),
	}
	if sat, ok := cat.Satellite(mission.Satellite); ok {
		row.SatelliteName = sat.Name
	}
	return row
}

// Discoveries maps discoveries to list rows, keeping their order.
func Discoveries(cat *catalog.Catalog, discoveries []catalog.Discovery) []webtemplates.DiscoveryRow {
	rows := make([]webtemplates.DiscoveryRow, 0, len(discoveries))
	for _, discovery := range discoveries {
		row := webtemplates.DiscoveryRow{
			Title:   discovery.Title,
			Date:    FormatDate(discovery.Date),
			Summary: discovery.Summary,
		}
		if mission, ok := cat.Mission(discovery.Mission); ok {
			row.MissionName = mission.Name
			row.MissionURL = routepath.Mission(mission.ID)
		}
		rows = append(rows, row)
	}
	return rows
}
