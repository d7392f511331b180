package missions

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Missions, h.handleList)
	mux.HandleFunc("GET "+routepath.MissionsPrefix+"{$}", h.handleList)
	mux.HandleFunc("GET "+routepath.MissionPattern, h.handleDetail)
	mux.HandleFunc(routepath.MissionsPrefix, h.WriteNotFound)
}
