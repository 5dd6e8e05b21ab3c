// Package service contains the business logic for the HolaCupid profile API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/repo"
	"github.com/firnco-tech/holacupid/backend/internal/slug"
)

// createAttempts bounds how often Create regenerates slugs after losing a
// race for one of them to a concurrent insert.
const createAttempts = 3

const (
	minAge = 18
	maxAge = 99
)

// ProfileService implements business logic for Profile operations, including
// slug generation on profile creation.
type ProfileService struct {
	profiles    repo.ProfileRepo
	maxAttempts int
}

// NewProfileService constructs a ProfileService backed by the provided repo.
// maxAttempts is passed to slug.EnsureUnique; <= 0 selects the default.
func NewProfileService(r repo.ProfileRepo, maxAttempts int) *ProfileService {
	return &ProfileService{profiles: r, maxAttempts: maxAttempts}
}

// Create validates a new profile, generates its six slugs, and persists it.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrConflict if slugs kept colliding with concurrent inserts.
func (s *ProfileService) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.Location = strings.TrimSpace(p.Location)
	p.About = strings.TrimSpace(p.About)
	if err := validateProfile(p); err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", err)
	}

	in := slug.Input{FirstName: p.FirstName, Location: p.Location}
	var lastErr error
	for range createAttempts {
		existing, err := s.takenSlugs(ctx, slug.Compose(in))
		if err != nil {
			return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", err)
		}
		p.Slugs = slug.Generate(in, existing, s.maxAttempts)

		result, err := s.profiles.Create(ctx, p)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", err)
		}
		lastErr = err
	}
	return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", lastErr)
}

// GetByID returns a single profile by ID.
// Returns domain.ErrNotFound if no profile with that ID exists.
func (s *ProfileService) GetByID(ctx context.Context, id int64) (domain.Profile, error) {
	result, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug returns the profile that owns slug in lang.
// Malformed slugs short-circuit to domain.ErrNotFound without a query.
func (s *ProfileService) GetBySlug(ctx context.Context, lang domain.Language, value string) (domain.Profile, error) {
	if !lang.Valid() {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.GetBySlug: %w: unsupported language %q", domain.ErrValidation, lang)
	}
	if !slug.Valid(value) {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.GetBySlug: %w", domain.ErrNotFound)
	}
	result, err := s.profiles.GetBySlug(ctx, lang, value)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.GetBySlug: %w", err)
	}
	return result, nil
}

// List returns one page of profiles and its pagination metadata.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ProfileService) List(ctx context.Context, params domain.PaginationParams) ([]domain.Profile, domain.Pagination, error) {
	profiles, total, err := s.profiles.ListPaged(ctx, params)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("service.ProfileService.List: %w", err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, domain.NewPagination(params, total), nil
}

// Alternates returns the profile's slug in every language it has one for,
// used to render hreflang links between language versions of a page.
func (s *ProfileService) Alternates(ctx context.Context, id int64) (domain.SlugBundle, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ProfileService.Alternates: %w", err)
	}
	if len(p.Slugs) == 0 {
		return nil, fmt.Errorf("service.ProfileService.Alternates: %w: profile %d has no slugs yet", domain.ErrNotFound, id)
	}
	return p.Slugs, nil
}

// takenSlugs loads, per language, the persisted slugs that could collide
// with base or one of its numeric variants.
func (s *ProfileService) takenSlugs(ctx context.Context, base domain.SlugBundle) (slug.Index, error) {
	ix := slug.NewIndex()
	for _, l := range domain.Languages {
		taken, err := s.profiles.SlugsWithPrefix(ctx, l, base[l])
		if err != nil {
			return nil, err
		}
		ix.Seed(l, taken...)
	}
	return ix, nil
}

// validateProfile enforces the rules for a new profile.
//   - FirstName and Location must contain at least one letter or digit once
//     normalized, otherwise the generated slug would be malformed.
//   - Age, when set, must be between 18 and 99.
func validateProfile(p domain.Profile) error {
	if p.FirstName == "" {
		return fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	}
	if slug.Normalize(p.FirstName) == "" {
		return fmt.Errorf("%w: first_name must contain letters or digits", domain.ErrValidation)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if slug.Normalize(p.Location) == "" {
		return fmt.Errorf("%w: location must contain letters or digits", domain.ErrValidation)
	}
	if p.Age != 0 && (p.Age < minAge || p.Age > maxAge) {
		return fmt.Errorf("%w: age must be between %d and %d", domain.ErrValidation, minAge, maxAge)
	}
	return nil
}
