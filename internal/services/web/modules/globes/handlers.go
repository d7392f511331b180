package globes

import (
	"net/http"
	"strconv"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
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
	h.WritePage(w, r, webtemplates.T(loc, "title.globes"), http.StatusOK, webtemplates.GlobesPage(loc, globeRows(cat.Globes)))
}

func globeRows(globes []catalog.Globe) []webtemplates.GlobeRow {
	rows := make([]webtemplates.GlobeRow, 0, len(globes))
	for _, globe := range globes {
		rows = append(rows, webtemplates.GlobeRow{
			Name:    globe.Name,
			Radius:  strconv.FormatFloat(globe.Radius, 'f', -1, 64),
			Texture: globe.Texture,
		})
	}
	return rows
}
