// Package settings lets the signed-in user change their language preference.
package settings

import (
	"context"
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// ProfileGateway stores the preference on the account.
type ProfileGateway interface {
	UpdateProfile(ctx context.Context, sessionID string, displayName string, locale string) (authclient.User, error)
}

// Option configures a settings module.
type Option func(*Module)

// WithGateway sets the account gateway. Without one the preference is only
// kept in the language cookie.
func WithGateway(g ProfileGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithDependencies sets the shared request resolvers.
func WithDependencies(deps module.Dependencies) Option {
	return func(m *Module) { m.deps = deps }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// WithProfileUpdated registers a callback run after the account changed.
func WithProfileUpdated(fn func(sessionID string)) Option {
	return func(m *Module) { m.profileUpdated = fn }
}

// Module provides settings routes.
type Module struct {
	gateway        ProfileGateway
	deps           module.Dependencies
	policy         requestmeta.SchemePolicy
	profileUpdated func(string)
}

// New returns a settings module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "settings" }

// Healthy reports whether preferences reach the account.
func (m Module) Healthy() bool { return m.gateway != nil }

// Mount wires settings route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{
		Base:           modulehandler.NewBase(m.deps),
		gateway:        m.gateway,
		policy:         m.policy,
		profileUpdated: m.profileUpdated,
	})
	return module.Mount{Prefix: routepath.SettingsPrefix, Handler: mux}, nil
}
