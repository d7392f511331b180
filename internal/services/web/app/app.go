// Package app mounts web feature modules into one root handler.
//
// Public modules are served as-is. Protected modules must live under a path
// the redirect guard treats as protected, and are additionally gated on the
// session state the guard attached to the request, so a module can never
// be reachable without the guard having run for its prefix.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/sessioncookie"
)

// Config lists the modules to mount and the policy around them.
type Config struct {
	PublicModules    []module.Module
	ProtectedModules []module.Module
	// Routes is the guard's classification. Zero uses the default routes.
	Routes redirectguard.Routes
	// LoginPath receives protected requests that reach a module without a
	// session. Empty uses the guard default.
	LoginPath    string
	SchemePolicy requestmeta.SchemePolicy
	// Authenticated overrides the session check; nil reads the guard state.
	Authenticated func(*http.Request) bool
}

// Root is the composed handler plus the modules behind it.
type Root struct {
	mux     *http.ServeMux
	modules []module.Module
}

// ServeHTTP dispatches to the owning module.
func (r *Root) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Degraded returns the IDs of modules whose backing dependency is missing.
func (r *Root) Degraded() []string {
	var ids []string
	for _, m := range r.modules {
		if reporter, ok := m.(module.HealthReporter); ok && !reporter.Healthy() {
			ids = append(ids, m.ID())
		}
	}
	return ids
}

type group int

const (
	groupPublic group = iota
	groupProtected
)

type composer struct {
	mux       *http.ServeMux
	owners    map[string]string
	protected map[string]bool
	gate      func(http.Handler) http.Handler
}

// Build validates and mounts every module.
func Build(cfg Config) (*Root, error) {
	routes := cfg.Routes.OrDefault()
	loginPath := strings.TrimSpace(cfg.LoginPath)
	if loginPath == "" {
		loginPath = redirectguard.DefaultFallbackURL
	}
	authenticated := cfg.Authenticated
	if authenticated == nil {
		authenticated = func(r *http.Request) bool {
			return redirectguard.StateFromContext(r.Context()).IsAuthenticated
		}
	}

	c := composer{
		mux:       http.NewServeMux(),
		owners:    map[string]string{},
		protected: map[string]bool{},
		gate:      protectedGate(authenticated, loginPath, cfg.SchemePolicy),
	}
	for _, prefix := range routes.Protected {
		c.protected[strings.TrimSuffix(prefix, "/")+"/"] = true
	}

	root := &Root{mux: c.mux}
	for _, m := range cfg.PublicModules {
		if err := c.add(groupPublic, m); err != nil {
			return nil, err
		}
		root.modules = append(root.modules, m)
	}
	for _, m := range cfg.ProtectedModules {
		if err := c.add(groupProtected, m); err != nil {
			return nil, err
		}
		root.modules = append(root.modules, m)
	}
	return root, nil
}

func (c composer) add(g group, m module.Module) error {
	if m == nil {
		if g == groupProtected {
			return fmt.Errorf("protected module is nil")
		}
		return fmt.Errorf("public module is nil")
	}
	mount, err := m.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", m.ID(), err)
	}
	if err := checkPrefix(mount.Prefix); err != nil {
		return fmt.Errorf("module %q has invalid prefix %q: %w", m.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", m.ID())
	}

	guarded := c.protected[mount.Prefix]
	switch {
	case g == groupPublic && guarded:
		return fmt.Errorf("module %q has protected prefix %q in public group", m.ID(), mount.Prefix)
	case g == groupProtected && !guarded:
		return fmt.Errorf("module %q must mount under a protected prefix, got %q", m.ID(), mount.Prefix)
	}

	handler := mount.Handler
	patterns := []string{mount.Prefix}
	if g == groupProtected {
		handler = c.gate(handler)
		// "/missions" would otherwise fall through to the public "/" module.
		patterns = append(patterns, strings.TrimSuffix(mount.Prefix, "/"))
	}
	for _, pattern := range patterns {
		if owner, ok := c.owners[pattern]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", m.ID(), pattern, owner)
		}
		c.owners[pattern] = m.ID()
		c.mux.Handle(pattern, handler)
	}
	return nil
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return fmt.Errorf("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// protectedGate wraps protected modules: responses are never cached, a
// request without a session is sent to login, and cookie-authenticated
// mutations need a same-origin proof.
func protectedGate(authenticated func(*http.Request) bool, loginPath string, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	noStore := httpx.NoStore()
	return func(next http.Handler) http.Handler {
		return noStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, loginPath)
				return
			}
			if isMutation(r.Method) && hasSessionCookie(r) && !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
