// Package globes renders the globe gallery.
package globes

import (
	"net/http"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// Option configures the module.
type Option func(*Module)

// WithCatalog sets the catalog source.
func WithCatalog(src catalogview.Source) Option {
	return func(m *Module) { m.catalog = src }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// Module provides the globes route.
type Module struct {
	catalog catalogview.Source
	deps    module.Dependencies
}

// New returns a module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "globes" }

// Healthy reports whether a catalog source is wired.
func (m Module) Healthy() bool { return m.catalog != nil }

// Mount wires globes route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: modulehandler.NewBase(m.deps), catalog: m.catalog}
	mux.HandleFunc("GET "+routepath.Globes, h.handleIndex)
	mux.HandleFunc("GET "+routepath.GlobesPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.GlobesPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.GlobesPrefix, Handler: mux}, nil
}
