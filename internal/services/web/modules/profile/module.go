// Package profile shows the signed-in account as reported by the session
// query.
package profile

import (
	"net/http"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// Module provides the profile route.
type Module struct {
	deps module.Dependencies
}

// New returns a profile module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "profile" }

// Mount wires profile route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: modulehandler.NewBase(m.deps)}
	mux.HandleFunc("GET "+routepath.Profile, h.handleIndex)
	mux.HandleFunc("GET "+routepath.ProfilePrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.ProfilePrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.ProfilePrefix, Handler: mux}, nil
}
