package telemetry

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/observatory/orbit"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	catalog catalogview.Source
	now     func() time.Time
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat, err := catalogview.Load(h.catalog)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	selected := strings.TrimSpace(r.URL.Query().Get("satellite"))
	view := buildView(cat, h.now().UTC(), selected)
	h.WritePage(w, r, webtemplates.T(loc, "title.telemetry"), http.StatusOK, webtemplates.TelemetryPage(loc, view))
}

func buildView(cat *catalog.Catalog, at time.Time, selected string) webtemplates.TelemetryView {
	bodies := orbit.Snapshot(cat, at)
	rows := make([]webtemplates.TelemetryRow, 0, len(bodies))
	for i, body := range bodies {
		sat := cat.Satellites[i]
		rows = append(rows, webtemplates.TelemetryRow{
			ID:          body.ID,
			Name:        body.Name,
			Radius:      fmt.Sprintf("%.2f", sat.Radius),
			Period:      sat.Period.String(),
			Inclination: fmt.Sprintf("%.1f°", sat.Inclination),
			Position:    fmt.Sprintf("(%.2f, %.2f, %.2f)", body.Position.X(), body.Position.Y(), body.Position.Z()),
			Selected:    body.ID == selected,
		})
	}
	return webtemplates.TelemetryView{
		SampledAt: at.Format(time.RFC3339),
		Rows:      rows,
	}
}
