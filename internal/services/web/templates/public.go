package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// LandingView is the public landing page state.
type LandingView struct {
	SignedIn bool
}

// LandingPage renders the public entry page.
func LandingPage(loc Localizer, view LandingView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("section", "class", "landing")
		h.element("h1", T(loc, "title.landing"))
		h.element("p", T(loc, "landing.tagline"), "class", "tagline")
		h.open("div", "class", "actions")
		if view.SignedIn {
			h.element("a", T(loc, "landing.open_console"), "class", "button primary", "href", routepath.Dashboard)
		} else {
			h.element("a", T(loc, "landing.sign_in"), "class", "button primary", "href", routepath.Login)
			h.element("a", T(loc, "landing.sign_up"), "class", "button", "href", routepath.Signup)
		}
		h.close("div")
		h.close("section")
	})
}

// LoginView is the sign-in form state.
type LoginView struct {
	Username string
	Error    string
	Notice   string
}

// LoginPage renders the sign-in form.
func LoginPage(loc Localizer, view LoginView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("section", "class", "auth-card")
		h.element("h1", T(loc, "login.heading", T(loc, "core.app_name")))
		formMessages(h, view.Error, view.Notice)
		h.open("form", "method", "post", "action", routepath.Login)
		textField(h, "username", "text", T(loc, "login.username"), view.Username, "username")
		textField(h, "password", "password", T(loc, "login.password"), "", "current-password")
		h.element("button", T(loc, "login.submit"), "type", "submit", "class", "button primary")
		h.close("form")
		h.open("p", "class", "alt")
		h.text(T(loc, "login.no_account") + " ")
		h.element("a", T(loc, "login.signup_link"), "href", routepath.Signup)
		h.close("p")
		h.close("section")
	})
}

// SignupView is the account creation form state. Error holds the auth
// service's message verbatim.
type SignupView struct {
	Username string
	Email    string
	Error    string
}

// SignupPage renders the account creation form.
func SignupPage(loc Localizer, view SignupView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("section", "class", "auth-card")
		h.element("h1", T(loc, "signup.heading", T(loc, "core.app_name")))
		formMessages(h, view.Error, "")
		h.open("form", "method", "post", "action", routepath.Signup)
		textField(h, "username", "text", T(loc, "signup.username"), view.Username, "username")
		textField(h, "email", "email", T(loc, "signup.email"), view.Email, "email")
		textField(h, "password", "password", T(loc, "signup.password"), "", "new-password")
		h.element("button", T(loc, "signup.submit"), "type", "submit", "class", "button primary")
		h.close("form")
		h.open("p", "class", "alt")
		h.text(T(loc, "signup.have_account") + " ")
		h.element("a", T(loc, "signup.login_link"), "href", routepath.Login)
		h.close("p")
		h.close("section")
	})
}

func formMessages(h *htmlWriter, errorMessage string, notice string) {
	if errorMessage != "" {
		h.element("p", errorMessage, "class", "form-error", "role", "alert")
	}
	if notice != "" {
		h.element("p", notice, "class", "form-notice", "role", "status")
	}
}

func textField(h *htmlWriter, name string, inputType string, label string, value string, autocomplete string) {
	h.open("label", "for", name)
	h.text(label)
	h.close("label")
	attrs := []string{"id", name, "name", name, "type", inputType, "autocomplete", autocomplete, "required", "required"}
	if value != "" {
		attrs = append(attrs, "value", value)
	}
	h.open("input", attrs...)
}
