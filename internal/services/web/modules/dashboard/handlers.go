package dashboard

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// recentLimit caps the discoveries listed on the dashboard.
const recentLimit = 5

type handlers struct {
	modulehandler.Base
	catalog catalogview.Source
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat, err := catalogview.Load(h.catalog)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	viewer := h.ResolveRequestViewer(r)
	name := viewer.DisplayName
	if name == "" {
		name = viewer.Username
	}
	h.WritePage(w, r, webtemplates.T(loc, "title.dashboard"), http.StatusOK, webtemplates.DashboardPage(loc, buildView(cat, name)))
}

func buildView(cat *catalog.Catalog, name string) webtemplates.DashboardView {
	recent := cat.RecentDiscoveries()
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return webtemplates.DashboardView{
		Name:           name,
		ActiveMissions: len(cat.MissionsByStatus(catalog.MissionActive)),
		Satellites:     len(cat.Satellites),
		Discoveries:    len(cat.Discoveries),
		Recent:         catalogview.Discoveries(cat, recent),
	}
}
