// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pagerender"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized app-shell error response for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	fragment := webtemplates.AppErrorState(statusCode, loc)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.AppMainContent("", nil).Render(ctx, w); err != nil {
			http.Error(w, PublicMessage(loc, err), statusCode)
		}
		return
	}

	viewer := module.Viewer{}
	if deps.ResolveViewer != nil {
		viewer = deps.ResolveViewer(r)
	}
	title := webtemplates.AppErrorPageTitle(statusCode, loc)
	layout := webtemplates.AppLayout(
		pagerender.PageContext(r, title, lang, loc),
		webtemplates.Viewer{DisplayName: viewer.DisplayName, Username: viewer.Username},
		nil,
	)
	if err := layout.Render(ctx, w); err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	http.Error(w, PublicMessage(loc, err), statusCode)
}

// SessionPending renders the page shown for a protected view while the
// session status is still loading. It uses the public layout so no protected
// chrome or viewer data is rendered.
func SessionPending(resolveLanguage module.ResolveLanguage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
		title := webtemplates.AppErrorPageTitle(http.StatusServiceUnavailable, loc)
		pagerender.WritePublicPage(
			w,
			r,
			pagerender.PageContext(r, title, lang, loc),
			http.StatusServiceUnavailable,
			webtemplates.AppErrorState(http.StatusServiceUnavailable, loc),
		)
	})
}
