// Package publichandler provides a shared base for unauthenticated web module handlers.
// It centralizes error handling, localization, and page rendering that would
// otherwise be duplicated across public modules.
package publichandler

import (
	"net/http"

	"github.com/a-h/templ"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pagerender"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/weberror"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// Base provides shared error handling and page rendering for public modules.
type Base struct {
	resolveLanguage module.ResolveLanguage
}

// NewBase builds a public handler base.
func NewBase(resolveLanguage module.ResolveLanguage) Base {
	return Base{resolveLanguage: resolveLanguage}
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

// IsViewerSignedIn reports whether the current request is authenticated.
func (b Base) IsViewerSignedIn(r *http.Request) bool {
	return b.AuthState(r).IsAuthenticated
}

// WritePublicPage renders a full public page using the auth layout.
func (Base) WritePublicPage(w http.ResponseWriter, r *http.Request, title string, lang string, loc webtemplates.Localizer, statusCode int, body templ.Component) {
	pagerender.WritePublicPage(w, r, pagerender.PageContext(r, title, lang, loc), statusCode, body)
}

// WriteNotFound renders a localized 404 error page using the public layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	b.writeErrorPage(w, r, http.StatusNotFound)
}

// WriteError renders a user-safe error response: app error pages for not-found
// and server errors, plain-text status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if weberror.ShouldRenderAppError(statusCode) {
		b.writeErrorPage(w, r, statusCode)
		return
	}
	loc, _ := b.PageLocalizer(w, r)
	http.Error(w, weberror.PublicMessage(loc, err), statusCode)
}

func (b Base) writeErrorPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	loc, lang := b.PageLocalizer(w, r)
	b.WritePublicPage(
		w,
		r,
		webtemplates.AppErrorPageTitle(statusCode, loc),
		lang,
		loc,
		statusCode,
		webtemplates.AppErrorState(statusCode, loc),
	)
}
