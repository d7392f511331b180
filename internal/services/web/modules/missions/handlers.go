package missions

import (
	"net/http"
	"strings"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	catalog catalogview.Source
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	cat, err := catalogview.Load(h.catalog)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	rows := listRows(cat, statusFilter(r))
	h.WritePage(w, r, webtemplates.T(loc, "title.missions"), http.StatusOK, webtemplates.MissionsPage(loc, rows))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	cat, err := catalogview.Load(h.catalog)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	mission, ok := cat.Mission(strings.TrimSpace(r.PathValue("missionID")))
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	view := webtemplates.MissionDetailView{
		Mission:        catalogview.Mission(cat, mission),
		Summary:        mission.Summary,
		TelemetryURL:   routepath.TelemetryFor(mission.Satellite),
		ObservatoryURL: routepath.ObservatoryFocus(mission.Satellite),
		Discoveries:    catalogview.Discoveries(cat, cat.DiscoveriesFor(mission.ID)),
	}
	h.WritePage(w, r, mission.Name, http.StatusOK, webtemplates.MissionDetailPage(loc, view))
}

// statusFilter returns the requested mission status, or "" when the query
// names no known status.
func statusFilter(r *http.Request) string {
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	switch status {
	case catalog.MissionActive, catalog.MissionPlanned, catalog.MissionCompleted:
		return status
	default:
		return ""
	}
}

func listRows(cat *catalog.Catalog, status string) []webtemplates.MissionRow {
	missions := cat.Missions
	if status != "" {
		missions = cat.MissionsByStatus(status)
	}
	rows := make([]webtemplates.MissionRow, 0, len(missions))
	for _, mission := range missions {
		rows = append(rows, catalogview.Mission(cat, mission))
	}
	return rows
}
