// Package i18n resolves the request language and builds message printers.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/orbitwatch/missioncontrol/internal/platform/i18n"
	_ "github.com/orbitwatch/missioncontrol/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "mc_lang"
)

// Localizer provides translated strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one selectable language.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the best language tag for the request. The bool
// reports whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// ResolveLanguage returns the effective request language as a tag string.
func ResolveLanguage(r *http.Request) string {
	tag, _ := ResolveTag(r)
	return tag.String()
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request language, persists an explicit
// ?lang= choice, and returns the printer plus the resolved tag string.
// resolveLanguage overrides request-derived resolution when non-nil.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolveLanguage func(*http.Request) string) (*message.Printer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	} else if resolveLanguage != nil {
		if resolved, ok := platformi18n.ParseTag(resolveLanguage(r)); ok {
			tag = resolved
		}
	}
	return Printer(tag), tag.String()
}

// LanguageOptions lists supported languages with the active one marked.
func LanguageOptions(loc Localizer, active string) []LanguageOption {
	activeTag, ok := platformi18n.ParseTag(active)
	if !ok {
		activeTag = platformi18n.DefaultTag()
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if loc != nil {
			if value := strings.TrimSpace(loc.Sprintf(languageLabelKey(tag))); value != "" {
				label = value
			}
		}
		options = append(options, LanguageOption{Tag: tag.String(), Label: label, Active: tag == activeTag})
	}
	return options
}

func languageLabelKey(tag language.Tag) string {
	if tag.String() == "pt-BR" {
		return "core.lang_pt_br"
	}
	return "core.lang_en"
}

// LanguageURL returns path with the language query param replaced.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
