// Package missions lists catalog missions and renders mission detail pages.
package missions

import (
	"net/http"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// Option configures a missions module.
type Option func(*Module)

// WithCatalog sets the catalog source.
func WithCatalog(src catalogview.Source) Option {
	return func(m *Module) { m.catalog = src }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// Module provides mission routes.
type Module struct {
	catalog catalogview.Source
	deps    module.Dependencies
}

// New returns a missions module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "missions" }

// Healthy reports whether a catalog source is wired.
func (m Module) Healthy() bool { return m.catalog != nil }

// Mount wires mission route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.deps), catalog: m.catalog})
	return module.Mount{Prefix: routepath.MissionsPrefix, Handler: mux}, nil
}
