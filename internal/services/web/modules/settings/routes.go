package settings

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Settings, h.handleIndex)
	mux.HandleFunc("GET "+routepath.SettingsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc("POST "+routepath.SettingsLanguage, h.handleLanguage)
	mux.HandleFunc(routepath.SettingsLanguage, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.SettingsPrefix, h.WriteNotFound)
}
