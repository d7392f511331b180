package profile

import (
	"net/http"
	"strings"

	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/modulehandler"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	webtemplates "github.com/orbitwatch/missioncontrol/internal/services/web/templates"
)

// visibleTokenChars is how many characters of the token stay readable at
// each end.
const visibleTokenChars = 4

type handlers struct {
	modulehandler.Base
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := h.AuthState(r)
	if !state.IsAuthenticated || state.User == nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindUnauthorized, "profile requires a session"))
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "title.profile"), http.StatusOK, webtemplates.ProfilePage(loc, buildView(state)))
}

func buildView(state redirectguard.AuthState) webtemplates.ProfileView {
	return webtemplates.ProfileView{
		UserID:      state.User.ID,
		Username:    state.User.Username,
		Email:       state.User.Email,
		DisplayName: state.User.DisplayName,
		MaskedToken: maskToken(state.Token),
	}
}

// maskToken hides all but the edges of a token. Short tokens are fully
// hidden.
func maskToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if len(token) <= visibleTokenChars*3 {
		return strings.Repeat("•", 8)
	}
	return token[:visibleTokenChars] + "…" + token[len(token)-visibleTokenChars:]
}
