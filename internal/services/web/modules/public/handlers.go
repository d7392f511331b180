package public

import (
	"log"
	"net/http"
	"strings"

	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	flashnotice "github.com/orbitwatch/missioncontrol/internal/services/web/platform/flash"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pagerender"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pendingredirect"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/publichandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/sessioncookie"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service      service
	guard        redirectguard.Guard
	policy       requestmeta.SchemePolicy
	sessionEnded func(string)
}

func newHandlers(s service, guard redirectguard.Guard, policy requestmeta.SchemePolicy, resolveLanguage module.ResolveLanguage, sessionEnded func(string)) handlers {
	return handlers{
		Base:         publichandler.NewBase(resolveLanguage),
		service:      s,
		guard:        guard,
		policy:       policy,
		sessionEnded: sessionEnded,
	}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	view := webtemplates.LandingView{SignedIn: h.IsViewerSignedIn(r)}
	h.WritePublicPage(w, r, webtemplates.T(loc, "title.landing"), lang, loc, http.StatusOK, webtemplates.LandingPage(loc, view))
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	h.renderLogin(w, r, http.StatusOK, webtemplates.LoginView{Notice: pagerender.FlashMessage(w, r, loc)})
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "", apperrors.EK(apperrors.KindInvalidInput, keyRequiredFields, "failed to parse login form"))
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	session, err := h.service.login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		h.renderLoginError(w, r, username, err)
		return
	}
	sessioncookie.Write(w, r, session.ID, h.policy)
	h.completeSignIn(w, r, routepath.Login)
}

func (h handlers) renderLoginError(w http.ResponseWriter, r *http.Request, username string, err error) {
	loc, _ := h.PageLocalizer(w, r)
	h.renderLogin(w, r, apperrors.HTTPStatus(err), webtemplates.LoginView{
		Username: username,
		Error:    webtemplates.T(loc, formErrorKey(err)),
	})
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, statusCode int, view webtemplates.LoginView) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "title.login"), lang, loc, statusCode, webtemplates.LoginPage(loc, view))
}

func (h handlers) handleSignupGet(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, http.StatusOK, webtemplates.SignupView{})
}

// handleSignupPost forwards the form to the auth service. A rejected signup
// shows the service's response body as the form error, unchanged.
func (h handlers) handleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		loc, _ := h.PageLocalizer(w, r)
		h.renderSignup(w, r, http.StatusBadRequest, webtemplates.SignupView{Error: webtemplates.T(loc, keyRequiredFields)})
		return
	}
	_, lang := h.PageLocalizer(w, r)
	input := authclient.SignupInput{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Locale:   lang,
	}
	if err := h.service.signup(r.Context(), input); err != nil {
		loc, _ := h.PageLocalizer(w, r)
		message, ok := authclient.ResponseBody(err)
		if !ok {
			message = webtemplates.T(loc, formErrorKey(err))
		}
		h.renderSignup(w, r, apperrors.HTTPStatus(err), webtemplates.SignupView{
			Username: input.Username,
			Email:    input.Email,
			Error:    message,
		})
		return
	}
	flashnotice.Write(w, r, flashnotice.Success("notice.signup_success"), h.policy)
	httpx.WriteRedirect(w, r, h.guard.Options().FallbackURL)
}

func (h handlers) renderSignup(w http.ResponseWriter, r *http.Request, statusCode int, view webtemplates.SignupView) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "title.signup"), lang, loc, statusCode, webtemplates.SignupPage(loc, view))
}

// handleCallback adopts a session opened elsewhere, for example by a
// sign-in flow on another origin, after validating it with the auth service.
func (h handlers) handleCallback(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.session(r.Context(), r.URL.Query().Get(routepath.CallbackSessionParam))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized || apperrors.KindOf(err) == apperrors.KindNotFound {
			httpx.WriteRedirect(w, r, h.guard.Options().FallbackURL)
			return
		}
		h.WriteError(w, r, err)
		return
	}
	sessioncookie.Write(w, r, session.ID, h.policy)
	h.completeSignIn(w, r, routepath.AuthCallback)
}

// completeSignIn runs the guard as an authenticated session on an auth-only
// path, which navigates to the pending redirect (consuming it) or the
// authenticated default.
func (h handlers) completeSignIn(w http.ResponseWriter, r *http.Request, path string) {
	target := h.guard.Options().AuthenticatedRedirect
	h.guard.Apply(
		r.Context(),
		redirectguard.Input{Status: redirectguard.StatusAuthenticated, Path: path},
		pendingredirect.New(w, r, h.policy),
		redirectguard.NavigatorFunc(func(next string) { target = next }),
	)
	httpx.WriteRedirect(w, r, target)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID, hasSession := sessioncookie.Read(r)
	if hasSession && !requestmeta.HasSameOriginProof(r, h.policy) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	sessioncookie.Clear(w, r, h.policy)
	if hasSession {
		if err := h.service.logout(r.Context(), sessionID); err != nil {
			log.Printf("logout revoke failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		}
		if h.sessionEnded != nil {
			h.sessionEnded(sessionID)
		}
	}
	flashnotice.Write(w, r, flashnotice.Info("notice.signed_out"), h.policy)
	httpx.WriteRedirect(w, r, h.guard.Options().FallbackURL)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
