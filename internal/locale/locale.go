package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported UI language code. The set is fixed: the property's
// translations exist for exactly these five.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
	French  Locale = "fr"
	German  Locale = "de"
	Italian Locale = "it"

	// Fallback is used when nothing persisted or detected matches.
	Fallback = English
)

// Supported lists the selectable locales in display order.
func Supported() []Locale {
	return []Locale{English, Spanish, French, German, Italian}
}

// IsSupported reports whether code names one of the five locales.
func IsSupported(code string) bool {
	switch Locale(code) {
	case English, Spanish, French, German, Italian:
		return true
	}
	return false
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first tag is the matcher fallback
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
})

// Detect maps arbitrary BCP-47-ish inputs ("es-MX", "de_AT.UTF-8") onto a
// supported locale. ok is false when nothing matched better than the
// matcher's fallback position.
func Detect(candidates ...string) (Locale, bool) {
	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || c == "C" || c == "POSIX" {
			continue
		}
		// Strip encoding suffixes like ".UTF-8" and normalize underscores.
		if idx := strings.IndexAny(c, ".@"); idx >= 0 {
			c = c[:idx]
		}
		cleaned = append(cleaned, strings.ReplaceAll(c, "_", "-"))
	}
	if len(cleaned) == 0 {
		return Fallback, false
	}

	tags, _, err := language.ParseAcceptLanguage(strings.Join(cleaned, ","))
	if err != nil || len(tags) == 0 {
		return Fallback, false
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return Fallback, false
	}
	return Supported()[index], true
}

// DetectEnvironment applies Detect to the process locale environment, the
// terminal counterpart of the original's browser-language heuristic.
func DetectEnvironment() (Locale, bool) {
	return Detect(
		os.Getenv("LANGUAGE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
	)
}
