package redirectguard

import "strings"

const (
	// DefaultFallbackURL is where unauthenticated visitors of protected views go.
	DefaultFallbackURL = "/login"
	// DefaultAuthenticatedRedirect is used after login when nothing is pending.
	DefaultAuthenticatedRedirect = "/telemetry"
	// PendingRedirectKey is the single storage key holding the pending path.
	PendingRedirectKey = "pending_redirect"
)

// Routes declares path prefixes by access class. The two sets are meant to
// be disjoint; see Evaluate for what happens when they are not.
type Routes struct {
	Protected []string
	AuthOnly  []string
}

// DefaultRoutes returns the dashboard's route classification.
func DefaultRoutes() Routes {
	return Routes{
		Protected: []string{
			"/dashboard",
			"/missions",
			"/telemetry",
			"/observatory",
			"/discoveries",
			"/globes",
			"/profile",
			"/settings",
		},
		AuthOnly: []string{
			"/login",
			"/signup",
			"/auth/callback",
		},
	}
}

// OrDefault returns DefaultRoutes when neither set is declared.
func (r Routes) OrDefault() Routes {
	if len(r.Protected) == 0 && len(r.AuthOnly) == 0 {
		return DefaultRoutes()
	}
	return r
}

// Options configures guard destinations.
type Options struct {
	Routes                Routes
	FallbackURL           string
	AuthenticatedRedirect string
}

// DefaultOptions returns the default routes and destinations.
func DefaultOptions() Options {
	return Options{
		Routes:                DefaultRoutes(),
		FallbackURL:           DefaultFallbackURL,
		AuthenticatedRedirect: DefaultAuthenticatedRedirect,
	}
}

func (o Options) normalized() Options {
	o.Routes = o.Routes.OrDefault()
	if strings.TrimSpace(o.FallbackURL) == "" {
		o.FallbackURL = DefaultFallbackURL
	}
	if strings.TrimSpace(o.AuthenticatedRedirect) == "" {
		o.AuthenticatedRedirect = DefaultAuthenticatedRedirect
	}
	return o
}

// Classify reports whether path starts with any protected or auth-only
// prefix. An empty path matches neither set.
func Classify(path string, routes Routes) (protected bool, authOnly bool) {
	if path == "" {
		return false, false
	}
	return hasAnyPrefix(path, routes.Protected), hasAnyPrefix(path, routes.AuthOnly)
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsLocalPath reports whether value is a same-site absolute path that is safe
// to navigate to.
func IsLocalPath(value string) bool {
	if !strings.HasPrefix(value, "/") {
		return false
	}
	if strings.HasPrefix(value, "//") || strings.HasPrefix(value, "/\\") {
		return false
	}
	return !strings.ContainsAny(value, "\r\n")
}
