package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

const (
	appErrorNotFoundTitleKey      = "error.http_404_title"
	appErrorNotFoundMessageKey    = "error.http_404_message"
	appErrorServerTitleKey        = "error.http_500_title"
	appErrorServerMessageKey      = "error.http_500_message"
	appErrorUnavailableTitleKey   = "error.http_503_title"
	appErrorUnavailableMessageKey = "error.http_503_message"
	appErrorBackHomeKey           = "error.back_home"
)

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	titleKey, _ := appErrorKeys(statusCode)
	return T(loc, titleKey)
}

// AppErrorState renders the error body for statusCode.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		titleKey, messageKey := appErrorKeys(statusCode)
		h.open("section", "id", "app-error-state", "class", "error-state", "data-status", itoa(normalizeAppErrorStatus(statusCode)))
		h.element("h2", T(loc, titleKey))
		h.element("p", T(loc, messageKey))
		if normalizeAppErrorStatus(statusCode) != http.StatusServiceUnavailable {
			h.element("a", T(loc, appErrorBackHomeKey), "class", "button", "href", routepath.Root)
		}
		h.close("section")
	})
}

func appErrorKeys(statusCode int) (string, string) {
	switch normalizeAppErrorStatus(statusCode) {
	case http.StatusNotFound:
		return appErrorNotFoundTitleKey, appErrorNotFoundMessageKey
	case http.StatusServiceUnavailable:
		return appErrorUnavailableTitleKey, appErrorUnavailableMessageKey
	default:
		return appErrorServerTitleKey, appErrorServerMessageKey
	}
}

func normalizeAppErrorStatus(statusCode int) int {
	switch statusCode {
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return statusCode
	default:
		return http.StatusInternalServerError
	}
}
