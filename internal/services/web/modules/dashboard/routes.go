package dashboard

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Dashboard, h.handleIndex)
	mux.HandleFunc("GET "+routepath.DashboardPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.DashboardPrefix, h.WriteNotFound)
}
