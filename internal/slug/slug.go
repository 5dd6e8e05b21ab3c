// Package slug builds the per-language SEO slugs for profiles.
//
// A slug reads "<name>-<from>-<location>-<country>" in each supported
// language, for example "maria-de-santo-domingo-republica-dominicana".
// Everything here is a pure function over its inputs except Index, which a
// single backfill run owns and grows as it assigns slugs.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

var (
	// invalidChars matches anything that is not a lowercase ASCII letter,
	// digit, whitespace, or hyphen. \p{Z} covers non-ASCII spaces such as
	// NBSP, which \s does not.
	invalidChars    = regexp.MustCompile(`[^a-z0-9\s\p{Z}-]`)
	whitespaceRun   = regexp.MustCompile(`[\s\p{Z}]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Input is the profile data a slug is derived from.
type Input struct {
	FirstName string
	Location  string
}

// Normalize converts arbitrary text into a slug fragment containing only
// lowercase ASCII letters, digits, and single hyphens, with no leading or
// trailing hyphen. Diacritics are stripped ("María" → "maria"); characters
// with no ASCII base letter are dropped. Empty input yields "".
func Normalize(text string) string {
	s := strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = invalidChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ResolveLocation returns the location fragment for lang. Curated
// translations win when location matches a known key exactly (case
// sensitive); anything else is normalized.
func ResolveLocation(location string, lang domain.Language) string {
	if byLang, ok := locationTranslations[location]; ok {
		if fragment, ok := byLang[lang]; ok {
			return fragment
		}
	}
	return Normalize(location)
}

// Compose builds the base slug for every supported language without any
// uniqueness resolution.
//
// A first name or location that normalizes to "" is not rejected here and
// produces a slug with a leading or doubled hyphen; ProfileService rejects
// such input before it reaches Compose.
func Compose(in Input) domain.SlugBundle {
	name := Normalize(in.FirstName)
	bundle := make(domain.SlugBundle, len(domain.Languages))
	for _, l := range domain.Languages {
		bundle[l] = strings.Join([]string{
			name,
			fromPrepositions[l],
			ResolveLocation(in.Location, l),
			countryTranslations[l],
		}, "-")
	}
	return bundle
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return domain.IsSlug(s)
}
