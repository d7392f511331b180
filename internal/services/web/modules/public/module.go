// Package public serves the unauthenticated surface: landing, login,
// signup, the auth callback and logout.
package public

import (
	"context"
	"net/http"

	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// AuthGateway is the subset of the auth service the public surface calls.
type AuthGateway interface {
	Signup(ctx context.Context, input authclient.SignupInput) (authclient.User, error)
	Login(ctx context.Context, username string, password string) (authclient.Session, error)
	Session(ctx context.Context, sessionID string) (authclient.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// Option configures a public module.
type Option func(*Module)

// WithGateway sets the auth gateway.
func WithGateway(g AuthGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithGuard sets the redirect guard applied after sign-in.
func WithGuard(g redirectguard.Guard) Option {
	return func(m *Module) { m.guard = g; m.hasGuard = true }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// WithLanguage sets the request language resolver.
func WithLanguage(resolve module.ResolveLanguage) Option {
	return func(m *Module) { m.resolveLanguage = resolve }
}

// WithSessionEnded registers a callback run after a session is revoked.
func WithSessionEnded(fn func(sessionID string)) Option {
	return func(m *Module) { m.sessionEnded = fn }
}

// Module provides unauthenticated root and auth routes.
type Module struct {
	gateway         AuthGateway
	guard           redirectguard.Guard
	hasGuard        bool
	policy          requestmeta.SchemePolicy
	resolveLanguage module.ResolveLanguage
	sessionEnded    func(string)
}

// New returns a public module configured by the given options. Without a
// gateway every auth call reports the service as unavailable.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Healthy reports whether the module has an auth gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	guard := m.guard
	if !m.hasGuard {
		guard = redirectguard.New(redirectguard.DefaultOptions())
	}
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), guard, m.policy, m.resolveLanguage, m.sessionEnded)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
