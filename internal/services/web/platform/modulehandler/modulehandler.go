// Package modulehandler provides a composable base for protected web module handlers.
//
// Protected modules share common handler infrastructure for session access,
// localization, page rendering, and error handling. Modules embed Base rather
// than duplicating that scaffold.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pagerender"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/weberror"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// Base carries the shared request-scoped resolvers used by protected module handlers.
type Base struct {
	resolveLanguage module.ResolveLanguage
	resolveViewer   module.ResolveViewer
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{resolveLanguage: deps.ResolveLanguage, resolveViewer: deps.ResolveViewer}
}

// Dependencies returns the resolvers as module dependencies.
func (b Base) Dependencies() module.Dependencies {
	return module.Dependencies{ResolveLanguage: b.resolveLanguage, ResolveViewer: b.ResolveRequestViewer}
}

// ResolveRequestViewer resolves app chrome viewer state for a request. Without
// a configured resolver the viewer is derived from the guard's session state.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.resolveViewer != nil {
		return b.resolveViewer(r)
	}
	return ViewerFromState(b.AuthState(r))
}

// ResolveRequestLanguage returns the effective request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	if b.resolveLanguage == nil {
		return ""
	}
	return b.resolveLanguage(r)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolveLanguage)
}

// AuthState returns the session query attached by the redirect guard.
func (Base) AuthState(r *http.Request) redirectguard.AuthState {
	if r == nil {
		return redirectguard.State(redirectguard.StatusUnauthenticated, nil)
	}
	return redirectguard.StateFromContext(r.Context())
}

// Session returns the authenticated session attached by the redirect guard.
func (Base) Session(r *http.Request) (*redirectguard.Session, bool) {
	if r == nil {
		return nil, false
	}
	return redirectguard.SessionFromContext(r.Context())
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.Dependencies())
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.Dependencies())
}

// WritePage renders a full module page (HTMX-aware) with the given title and
// content fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, b, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// ViewerFromState maps the session query to sidebar viewer data.
func ViewerFromState(state redirectguard.AuthState) module.Viewer {
	if !state.IsAuthenticated || state.User == nil {
		return module.Viewer{}
	}
	return module.Viewer{
		DisplayName: strings.TrimSpace(state.User.DisplayName),
		Username:    state.User.Username,
	}
}
