package discoveries

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

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
	rows := catalogview.Discoveries(cat, cat.RecentDiscoveries())
	h.WritePage(w, r, webtemplates.T(loc, "title.discoveries"), http.StatusOK, webtemplates.DiscoveriesPage(loc, rows))
}
