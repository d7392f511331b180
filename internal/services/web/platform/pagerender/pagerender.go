// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	flashnotice "github.com/orbitwatch/missioncontrol/internal/services/web/platform/flash"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// RequestResolver resolves viewer and language state from a request.
// This decouples platform rendering from the module-layer Dependencies type.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	ResolveRequestLanguage(r *http.Request) string
}

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	var resolveLanguage module.ResolveLanguage
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	toast := resolveFlashToast(w, r, loc)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.AppMainContent(page.Title, toast).Render(ctx, &buf); err != nil {
			return err
		}
		return writeHTML(w, statusCode, buf.Bytes())
	}

	viewer := module.Viewer{}
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
	}
	layout := webtemplates.AppLayout(
		PageContext(r, page.Title, lang, loc),
		webtemplates.Viewer{DisplayName: viewer.DisplayName, Username: viewer.Username},
		toast,
	)
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	return writeHTML(w, statusCode, buf.Bytes())
}

// PageContext builds the shared page chrome for r.
func PageContext(r *http.Request, title string, lang string, loc webtemplates.Localizer) webtemplates.PageContext {
	page := webtemplates.PageContext{Title: title, Lang: lang, Loc: loc}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		message = notice.Key
	}
	return &webtemplates.AppToast{Kind: string(notice.Kind), Message: message}
}

// FlashMessage returns the pending flash notice localized for a public page.
func FlashMessage(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) string {
	toast := resolveFlashToast(w, r, loc)
	if toast == nil {
		return ""
	}
	return toast.Message
}

// WritePublicPage writes a public (unauthenticated) page using the auth layout.
// HTMX requests receive only the body.
func WritePublicPage(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, statusCode int, body templ.Component) {
	if w == nil {
		return
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if body == nil {
		body = templ.NopComponent
	}

	ctx := httpx.RequestContext(r)
	var rendered bytes.Buffer
	var err error
	if httpx.IsHTMXRequest(r) {
		err = body.Render(ctx, &rendered)
	} else {
		err = webtemplates.AuthLayout(page).Render(templ.WithChildren(ctx, body), &rendered)
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_ = writeHTML(w, statusCode, rendered.Bytes())
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(body)
	return err
}
