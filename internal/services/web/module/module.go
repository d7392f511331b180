// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer contains user-facing chrome data for authenticated app pages.
type Viewer struct {
	DisplayName string
	Username    string
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Dependencies carries request-scoped resolvers shared by module handlers
// and error pages.
type Dependencies struct {
	ResolveViewer   ResolveViewer
	ResolveLanguage ResolveLanguage
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules whose backing
// dependency can be unavailable.
type HealthReporter interface {
	Healthy() bool
}
