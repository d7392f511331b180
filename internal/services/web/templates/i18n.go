package templates

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "github.com/orbitwatch/missioncontrol/internal/platform/i18n/catalog"
)

// Localizer provides translated strings for page components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var fallbackPrinter = message.NewPrinter(language.AmericanEnglish)

// T translates key. Components rendered without a localizer, such as
// fragments built in tests, fall back to American English; unknown keys
// render as themselves.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if _, ok := key.(string); !ok {
		return ""
	}
	return fallbackPrinter.Sprintf(key, args...)
}
