package slug

import (
	"strings"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

// Parsed is the best-effort inverse of Compose. Diacritics and case are
// lost during normalization, so FirstName and Location are for display and
// debugging only and must never be used to look a profile up.
type Parsed struct {
	FirstName string `json:"first_name,omitempty"`
	Location  string `json:"location,omitempty"`
	OK        bool   `json:"ok"`
}

// Parse splits a slug back into name and location for lang. It strips the
// country fragment (and any numeric uniqueness suffix after it), then
// splits on the first "-<from>-". A slug without the separator yields a
// zero Parsed.
func Parse(s string, lang domain.Language) Parsed {
	prep, ok := fromPrepositions[lang]
	if !ok {
		return Parsed{}
	}
	country := "-" + countryTranslations[lang]

	rest := stripCounterSuffix(s, country)
	rest = strings.TrimSuffix(rest, country)

	parts := strings.SplitN(rest, "-"+prep+"-", 2)
	if len(parts) != 2 {
		return Parsed{}
	}
	return Parsed{
		FirstName: strings.ReplaceAll(parts[0], "-", " "),
		Location:  strings.ReplaceAll(parts[1], "-", " "),
		OK:        true,
	}
}

// stripCounterSuffix removes a trailing "-<digits>" added by EnsureUnique,
// but only when it directly follows the country fragment.
func stripCounterSuffix(s, country string) string {
	i := strings.LastIndexByte(s, '-')
	if i <= 0 || i == len(s)-1 {
		return s
	}
	for _, r := range s[i+1:] {
		if r < '0' || r > '9' {
			return s
		}
	}
	if !strings.HasSuffix(s[:i], country) {
		return s
	}
	return s[:i]
}
