// Package lang holds the read-only per-language data the differ needs:
// namespace aliases for media and category links, and the set of languages
// whose text is not whitespace delimited.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is used when no language is given or it cannot be parsed.
const Default = "en"

// Normalize maps a wiki language code to the key used by the tables in
// this package: the lower case base language, e.g. "en-GB" -> "en".
// Codes x/text does not know are lower cased and returned as is.
func Normalize(code string) string {
	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return Default
	}
	if _, ok := characterLanguages[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, conf := tag.Base()
	if conf == language.No {
		return code
	}
	return base.String()
}

// IsCharacterLanguage reports whether text in lang should be counted in
// characters rather than words.
func IsCharacterLanguage(lang string) bool {
	_, ok := characterLanguages[Normalize(lang)]
	return ok
}

// MediaPrefixes returns the namespace names that mark a link as media in
// lang. English names are always included.
func MediaPrefixes(lang string) []string {
	return withEnglish(mediaAliases, lang)
}

// CategoryPrefixes returns the namespace names that mark a link as a
// category in lang. English names are always included.
func CategoryPrefixes(lang string) []string {
	return withEnglish(categoryAliases, lang)
}

func withEnglish(table map[string][]string, lang string) []string {
	lang = Normalize(lang)
	res := append([]string(nil), table[Default]...)
	if lang == Default {
		return res
	}
	return append(res, table[lang]...)
}

// HasPrefix reports whether target, a link target such as "Datei:X.png",
// starts with one of prefixes followed by a colon. Matching ignores case
// and surrounding whitespace, as namespace names do.
func HasPrefix(target string, prefixes []string) bool {
	ns, _, ok := strings.Cut(target, ":")
	if !ok {
		return false
	}
	ns = strings.TrimSpace(ns)
	for _, p := range prefixes {
		if strings.EqualFold(ns, p) {
			return true
		}
	}
	return false
}
