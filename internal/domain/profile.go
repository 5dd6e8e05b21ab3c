// Package domain contains the core data types for the HolaCupid profile API.
// This package has zero external dependencies and is imported by every other
// internal package (slug, repo, service, handler).
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Profile is a user-submitted dating profile.
// Slugs is empty for profiles created before slug support existed; the
// backfill command fills it in.
type Profile struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	Location  string     `json:"location"`
	Age       int        `json:"age,omitempty"`
	About     string     `json:"about,omitempty"`
	Slugs     SlugBundle `json:"slugs,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasAllSlugs reports whether the profile carries a slug for every language.
func (p Profile) HasAllSlugs() bool {
	for _, l := range Languages {
		if p.Slugs[l] == "" {
			return false
		}
	}
	return true
}

// SlugBundle maps each supported language to the profile's slug in that language.
type SlugBundle map[Language]string

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks that b holds exactly one well-formed slug per supported language.
func (b SlugBundle) Validate() error {
	if len(b) != len(Languages) {
		return fmt.Errorf("%w: expected %d slugs, got %d", ErrValidation, len(Languages), len(b))
	}
	for _, l := range Languages {
		s, ok := b[l]
		if !ok {
			return fmt.Errorf("%w: missing slug for %s", ErrValidation, l)
		}
		if !slugPattern.MatchString(s) {
			return fmt.Errorf("%w: malformed %s slug %q", ErrValidation, l, s)
		}
	}
	return nil
}

// IsSlug reports whether s is a well-formed slug: lowercase ASCII letters and
// digits in runs separated by single hyphens.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
