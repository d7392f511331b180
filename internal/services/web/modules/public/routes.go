package public

import (
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Root+"{$}", h.handleLanding)
	mux.HandleFunc("GET "+routepath.Login, h.handleLoginGet)
	mux.HandleFunc("POST "+routepath.Login, h.handleLoginPost)
	mux.HandleFunc(routepath.Login, httpx.MethodNotAllowed("GET, POST"))
	mux.HandleFunc("GET "+routepath.Signup, h.handleSignupGet)
	mux.HandleFunc("POST "+routepath.Signup, h.handleSignupPost)
	mux.HandleFunc(routepath.Signup, httpx.MethodNotAllowed("GET, POST"))
	mux.HandleFunc("GET "+routepath.AuthCallback, h.handleCallback)
	mux.HandleFunc("POST "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(routepath.Logout, httpx.MethodNotAllowed("POST"))
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
