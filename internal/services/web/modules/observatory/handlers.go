package observatory

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// focusParam names the satellite to follow on the page and the stream.
const focusParam = "focus"

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

	focus := strings.TrimSpace(r.URL.Query().Get(focusParam))
	if _, ok := cat.Satellite(focus); !ok {
		focus = ""
	}
	view := webtemplates.ObservatoryView{
		StreamURL:  streamURL(focus),
		Focus:      focus,
		Satellites: make([]webtemplates.SatelliteOption, 0, len(cat.Satellites)),
	}
	for _, sat := range cat.Satellites {
		view.Satellites = append(view.Satellites, webtemplates.SatelliteOption{ID: sat.ID, Name: sat.Name, Color: sat.Color})
	}
	h.WritePage(w, r, webtemplates.T(loc, "title.observatory"), http.StatusOK, webtemplates.ObservatoryPage(loc, view))
}

func streamURL(focus string) string {
	if focus == "" {
		return routepath.ObservatoryStream
	}
	return routepath.ObservatoryStream + "?" + url.Values{focusParam: {focus}}.Encode()
}
