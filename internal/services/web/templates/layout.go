package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// MainID is the element HTMX swaps for in-app navigation.
const MainID = "main"

// PageContext is the request-scoped chrome shared by every page.
type PageContext struct {
	Title        string
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
}

// Viewer is the signed-in user shown in the app shell.
type Viewer struct {
	DisplayName string
	Username    string
}

// AppToast is a one-time notice rendered above the page content.
type AppToast struct {
	Kind    string
	Message string
}

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// SidebarItems lists the protected sections with the current one marked.
func SidebarItems(loc Localizer, currentPath string) []NavItem {
	prefixes := routepath.ProtectedPrefixes()
	items := make([]NavItem, 0, len(prefixes))
	for _, prefix := range prefixes {
		items = append(items, NavItem{
			Label:  T(loc, "nav."+strings.TrimPrefix(prefix, "/")),
			Path:   prefix,
			Active: currentPath == prefix || strings.HasPrefix(currentPath, prefix+"/"),
		})
	}
	return items
}

// AppLayout renders the full document with the sidebar shell around the
// children.
func AppLayout(page PageContext, viewer Viewer, toast *AppToast) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		documentHead(h, page)
		h.raw(`<body class="app">`)
		h.open("aside", "class", "sidebar")
		h.open("a", "class", "brand", "href", routepath.Dashboard)
		h.text(T(page.Loc, "core.app_name"))
		h.close("a")
		h.open("nav", "aria-label", T(page.Loc, "nav.dashboard"))
		h.raw("<ul>")
		for _, item := range SidebarItems(page.Loc, page.CurrentPath) {
			class := "nav-link"
			if item.Active {
				class += " active"
			}
			h.raw("<li>")
			h.open("a", "class", class, "href", item.Path, "hx-get", item.Path, "hx-target", "#"+MainID, "hx-push-url", "true")
			h.text(item.Label)
			h.close("a")
			h.raw("</li>")
		}
		h.raw("</ul>")
		h.close("nav")
		h.open("div", "class", "viewer")
		name := strings.TrimSpace(viewer.DisplayName)
		if name == "" {
			name = viewer.Username
		}
		h.element("span", name, "class", "viewer-name")
		logoutForm(h, page.Loc)
		h.close("div")
		languageSwitch(h, page)
		h.close("aside")

		h.open("main", "id", MainID)
		mainContent(ctx, h, page.Title, toast)
		h.close("main")
		h.raw(`</body></html>`)
	})
}

// AppMainContent renders only the main region for HTMX navigation.
func AppMainContent(title string, toast *AppToast) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		mainContent(ctx, h, title, toast)
	})
}

func mainContent(ctx context.Context, h *htmlWriter, title string, toast *AppToast) {
	if title != "" {
		h.element("h1", title)
	}
	if toast != nil && toast.Message != "" {
		h.element("div", toast.Message, "class", "toast toast-"+toast.Kind, "role", "status")
	}
	h.children(ctx)
}

// AuthLayout renders public pages without the sidebar.
func AuthLayout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		documentHead(h, page)
		h.raw(`<body class="public">`)
		h.raw("<header>")
		h.open("a", "class", "brand", "href", routepath.Root)
		h.text(T(page.Loc, "core.app_name"))
		h.close("a")
		languageSwitch(h, page)
		h.raw("</header>")
		h.open("main", "id", MainID, "class", "public-main")
		h.children(ctx)
		h.close("main")
		h.raw(`</body></html>`)
	})
}

func documentHead(h *htmlWriter, page PageContext) {
	lang := page.Lang
	if lang == "" {
		lang = "en-US"
	}
	h.raw("<!DOCTYPE html>")
	h.open("html", "lang", lang)
	h.raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	title := T(page.Loc, "core.app_name")
	if page.Title != "" {
		title = page.Title + " · " + title
	}
	h.element("title", title)
	h.open("link", "rel", "stylesheet", "href", routepath.StaticPrefix+"app.css")
	h.open("script", "src", routepath.StaticPrefix+"htmx.js", "defer", "defer")
	h.close("script")
	h.open("script", "src", routepath.StaticPrefix+"app.js", "defer", "defer")
	h.close("script")
	h.raw("</head>")
}

func logoutForm(h *htmlWriter, loc Localizer) {
	h.open("form", "method", "post", "action", routepath.Logout, "class", "logout")
	h.element("button", T(loc, "nav.logout"), "type", "submit")
	h.close("form")
}

func languageSwitch(h *htmlWriter, page PageContext) {
	h.open("nav", "class", "languages")
	for _, option := range webi18n.LanguageOptions(page.Loc, page.Lang) {
		attrs := []string{"href", webi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, option.Tag), "hreflang", option.Tag}
		if option.Active {
			attrs = append(attrs, "aria-current", "true")
		}
		h.element("a", option.Label, attrs...)
	}
	h.close("nav")
}
