// Package dashboard renders the signed-in overview of the catalog.
package dashboard

import (
	"net/http"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// Option configures a dashboard module.
type Option func(*Module)

// WithCatalog sets the catalog source.
func WithCatalog(src catalogview.Source) Option {
	return func(m *Module) { m.catalog = src }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// Module provides dashboard routes.
type Module struct {
	catalog catalogview.Source
	deps    module.Dependencies
}

// New returns a dashboard module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether a catalog source is wired.
func (m Module) Healthy() bool { return m.catalog != nil }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.deps), catalog: m.catalog})
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
