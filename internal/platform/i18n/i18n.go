// Package i18n declares the supported locales and tag matching rules.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	tagEnUS = language.MustParse("en-US")
	tagPtBR = language.MustParse("pt-BR")

	supportedTags = []language.Tag{tagEnUS, tagPtBR}
	matcher       = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported locales, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the default locale.
func DefaultTag() language.Tag {
	return tagEnUS
}

// ParseTag parses value and reports whether it names a supported locale.
// Bare base languages resolve to their regional default (pt -> pt-BR).
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	base, _ := tag.Base()
	for _, supported := range supportedTags {
		if tag == supported {
			return supported, true
		}
		supportedBase, _ := supported.Base()
		if base == supportedBase {
			return supported, true
		}
	}
	return language.Und, false
}

// MatchTags returns the best supported locale for the preferred tags.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}
