// Package telemetry renders propagated satellite positions.
package telemetry

import (
	"net/http"
	"time"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// Option configures a telemetry module.
type Option func(*Module)

// WithCatalog sets the catalog source.
func WithCatalog(src catalogview.Source) Option {
	return func(m *Module) { m.catalog = src }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// WithClock sets the time source used to sample positions.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// Module provides the telemetry route.
type Module struct {
	catalog catalogview.Source
	deps    module.Dependencies
	now     func() time.Time
}

// New returns a telemetry module configured by opts.
func New(opts ...Option) Module {
	m := Module{now: time.Now}
	for _, opt := range opts {
		opt(&m)
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "telemetry" }

// Healthy reports whether a catalog source is wired.
func (m Module) Healthy() bool { return m.catalog != nil }

// Mount wires telemetry route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: modulehandler.NewBase(m.deps), catalog: m.catalog, now: m.now}
	mux.HandleFunc("GET "+routepath.Telemetry, h.handleIndex)
	mux.HandleFunc("GET "+routepath.TelemetryPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.TelemetryPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.TelemetryPrefix, Handler: mux}, nil
}
