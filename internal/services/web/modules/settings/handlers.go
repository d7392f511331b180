package settings

import (
	"log"
	"net/http"

	platformi18n "github.com/orbitwatch/missioncontrol/internal/platform/i18n"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	flashnotice "github.com/orbitwatch/missioncontrol/internal/services/web/platform/flash"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	gateway        ProfileGateway
	policy         requestmeta.SchemePolicy
	profileUpdated func(string)
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	options := webi18n.LanguageOptions(loc, lang)
	view := webtemplates.SettingsView{Languages: make([]webtemplates.LanguageChoice, 0, len(options))}
	for _, option := range options {
		view.Languages = append(view.Languages, webtemplates.LanguageChoice{
			Tag:    option.Tag,
			Label:  option.Label,
			Active: option.Active,
		})
	}
	h.WritePage(w, r, webtemplates.T(loc, "title.settings"), http.StatusOK, webtemplates.SettingsPage(loc, view))
}

func (h handlers) handleLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse settings form"))
		return
	}
	tag, ok := platformi18n.ParseTag(r.PostFormValue("language"))
	if !ok {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "unsupported language"))
		return
	}
	webi18n.SetLanguageCookie(w, tag)

	// Account sync is best effort; the cookie is authoritative.
	if session, ok := h.Session(r); ok && h.gateway != nil {
		if _, err := h.gateway.UpdateProfile(r.Context(), session.ID, "", tag.String()); err != nil {
			log.Printf("settings locale update failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		} else if h.profileUpdated != nil {
			h.profileUpdated(session.ID)
		}
	}

	flashnotice.Write(w, r, flashnotice.Success("notice.language_saved"), h.policy)
	httpx.WriteRedirect(w, r, routepath.Settings)
}
