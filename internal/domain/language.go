package domain

import (
	"fmt"
	"strings"
)

// Language is one of the site languages a profile slug is generated for.
type Language string

const (
	English    Language = "en"
	Spanish    Language = "es"
	German     Language = "de"
	Italian    Language = "it"
	Dutch      Language = "nl"
	Portuguese Language = "pt"
)

// Languages lists every supported language in display order.
// Slug generation and lookup are defined for exactly this set.
var Languages = []Language{English, Spanish, German, Italian, Dutch, Portuguese}

// ParseLanguage converts a language code such as "es" or "DE" into a Language.
// Returns an error wrapping ErrValidation for codes outside the supported set.
func ParseLanguage(code string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: unsupported language %q", ErrValidation, code)
	}
	return l, nil
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case English, Spanish, German, Italian, Dutch, Portuguese:
		return true
	}
	return false
}

func (l Language) String() string { return string(l) }
