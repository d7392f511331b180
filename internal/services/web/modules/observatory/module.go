// Package observatory serves the live orbit viewer and its frame stream.
package observatory

import (
	"net/http"
	"time"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// DefaultFrameRate is the stream rate when none is configured.
const DefaultFrameRate = 30

// Option configures an observatory module.
type Option func(*Module)

// WithCatalog sets the catalog source.
func WithCatalog(src catalogview.Source) Option {
	return func(m *Module) { m.catalog = src }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// WithFrameRate sets the frames per second sent on each stream.
func WithFrameRate(fps int) Option {
	return func(m *Module) { m.frameRate = fps }
}

// WithClock sets the time source used to propagate orbits.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// WithSchemePolicy sets the scheme policy used by the stream origin check.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// Module provides the observatory page and stream.
type Module struct {
	catalog   catalogview.Source
	deps      module.Dependencies
	frameRate int
	now       func() time.Time
	policy    requestmeta.SchemePolicy
}

// New returns an observatory module configured by opts.
func New(opts ...Option) Module {
	m := Module{frameRate: DefaultFrameRate, now: time.Now}
	for _, opt := range opts {
		opt(&m)
	}
	if m.frameRate <= 0 {
		m.frameRate = DefaultFrameRate
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "observatory" }

// Healthy reports whether a catalog source is wired.
func (m Module) Healthy() bool { return m.catalog != nil }

// Mount wires the observatory page and stream routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: modulehandler.NewBase(m.deps), catalog: m.catalog}
	s := &streamer{
		catalog:  m.catalog,
		interval: time.Second / time.Duration(m.frameRate),
		now:      m.now,
		policy:   m.policy,
	}
	mux.HandleFunc("GET "+routepath.Observatory, h.handleIndex)
	mux.HandleFunc("GET "+routepath.ObservatoryPrefix+"{$}", h.handleIndex)
	mux.Handle("GET "+routepath.ObservatoryStream, s.handler())
	mux.HandleFunc(routepath.ObservatoryPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.ObservatoryPrefix, Handler: mux}, nil
}
