package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/service"
	"github.com/firnco-tech/holacupid/backend/internal/slug"
)

func validProfile() domain.Profile {
	return domain.Profile{
		FirstName: "Juan",
		Location:  "Puerto Plata",
		Age:       30,
		About:     "  Me gusta la playa.  ",
	}
}

// echoRepo returns a repo whose Create echoes its input with an ID and whose
// uniqueness snapshot is always empty.
func echoRepo() *mockProfileRepo {
	return &mockProfileRepo{
		create: func(_ context.Context, p domain.Profile) (domain.Profile, error) {
			p.ID = 1
			return p, nil
		},
		slugsWithPrefix: noSlugsTaken,
	}
}

// ---- Create tests ----------------------------------------------------------

func TestProfileService_Create_GeneratesSlugs(t *testing.T) {
	svc := service.NewProfileService(echoRepo(), slug.DefaultMaxAttempts)

	got, err := svc.Create(context.Background(), validProfile())

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "juan-de-puerto-plata-republica-dominicana", got.Slugs[domain.Portuguese])
	assert.Equal(t, "juan-from-puerto-plata-dominican-republic", got.Slugs[domain.English])
	assert.Equal(t, "Me gusta la playa.", got.About)
	require.NoError(t, got.Slugs.Validate())
}

func TestProfileService_Create_AvoidsTakenSlugs(t *testing.T) {
	r := echoRepo()
	r.slugsWithPrefix = func(_ context.Context, lang domain.Language, base string) ([]string, error) {
		if lang == domain.German {
			return []string{base, base + "-2"}, nil
		}
		return nil, nil
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	got, err := svc.Create(context.Background(), validProfile())

	require.NoError(t, err)
	assert.Equal(t, "juan-aus-puerto-plata-dominikanische-republik-3", got.Slugs[domain.German])
	assert.Equal(t, "juan-da-puerto-plata-repubblica-dominicana", got.Slugs[domain.Italian])
}

func TestProfileService_Create_QueriesSnapshotPerLanguage(t *testing.T) {
	seen := map[domain.Language]string{}
	r := echoRepo()
	r.slugsWithPrefix = func(_ context.Context, lang domain.Language, base string) ([]string, error) {
		seen[lang] = base
		return nil, nil
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	_, err := svc.Create(context.Background(), validProfile())

	require.NoError(t, err)
	assert.Len(t, seen, len(domain.Languages))
	assert.Equal(t, "juan-uit-puerto-plata-dominicaanse-republiek", seen[domain.Dutch])
}

func TestProfileService_Create_RetriesOnConflict(t *testing.T) {
	calls := 0
	r := echoRepo()
	r.create = func(_ context.Context, p domain.Profile) (domain.Profile, error) {
		calls++
		if calls == 1 {
			return domain.Profile{}, fmt.Errorf("repo: %w", domain.ErrConflict)
		}
		return p, nil
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	_, err := svc.Create(context.Background(), validProfile())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestProfileService_Create_GivesUpAfterRepeatedConflicts(t *testing.T) {
	calls := 0
	r := echoRepo()
	r.create = func(_ context.Context, _ domain.Profile) (domain.Profile, error) {
		calls++
		return domain.Profile{}, domain.ErrConflict
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	_, err := svc.Create(context.Background(), validProfile())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, calls)
}

func TestProfileService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Profile)
	}{
		{name: "missing first name", mutate: func(p *domain.Profile) { p.FirstName = "   " }},
		{name: "symbols-only first name", mutate: func(p *domain.Profile) { p.FirstName = "!!!" }},
		{name: "missing location", mutate: func(p *domain.Profile) { p.Location = "" }},
		{name: "symbols-only location", mutate: func(p *domain.Profile) { p.Location = "***" }},
		{name: "under age", mutate: func(p *domain.Profile) { p.Age = 17 }},
		{name: "over age", mutate: func(p *domain.Profile) { p.Age = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewProfileService(echoRepo(), slug.DefaultMaxAttempts)
			p := validProfile()
			tt.mutate(&p)

			_, err := svc.Create(context.Background(), p)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestProfileService_Create_AgeOptional(t *testing.T) {
	svc := service.NewProfileService(echoRepo(), slug.DefaultMaxAttempts)
	p := validProfile()
	p.Age = 0

	_, err := svc.Create(context.Background(), p)

	assert.NoError(t, err)
}

func TestProfileService_Create_SnapshotError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := echoRepo()
	r.slugsWithPrefix = func(_ context.Context, _ domain.Language, _ string) ([]string, error) {
		return nil, repoErr
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	_, err := svc.Create(context.Background(), validProfile())

	assert.ErrorIs(t, err, repoErr)
}

func TestProfileService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := echoRepo()
	r.create = func(_ context.Context, _ domain.Profile) (domain.Profile, error) {
		return domain.Profile{}, repoErr
	}
	svc := service.NewProfileService(r, slug.DefaultMaxAttempts)

	_, err := svc.Create(context.Background(), validProfile())

	assert.ErrorIs(t, err, repoErr)
}

// ---- Lookup tests ----------------------------------------------------------

func TestProfileService_GetByID_NotFound(t *testing.T) {
	r := &mockProfileRepo{
		getByID: func(_ context.Context, _ int64) (domain.Profile, error) {
			return domain.Profile{}, domain.ErrNotFound
		},
	}
	svc := service.NewProfileService(r, 0)

	_, err := svc.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_GetBySlug_Found(t *testing.T) {
	want := domain.Profile{ID: 42, FirstName: "María"}
	r := &mockProfileRepo{
		getBySlug: func(_ context.Context, lang domain.Language, s string) (domain.Profile, error) {
			assert.Equal(t, domain.Spanish, lang)
			assert.Equal(t, "maria-de-santo-domingo-republica-dominicana", s)
			return want, nil
		},
	}
	svc := service.NewProfileService(r, 0)

	got, err := svc.GetBySlug(context.Background(), domain.Spanish, "maria-de-santo-domingo-republica-dominicana")

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestProfileService_GetBySlug_MalformedSkipsRepo(t *testing.T) {
	// getBySlug is nil: calling it would panic.
	svc := service.NewProfileService(&mockProfileRepo{}, 0)

	_, err := svc.GetBySlug(context.Background(), domain.English, "Not A Slug")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_GetBySlug_UnsupportedLanguage(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{}, 0)

	_, err := svc.GetBySlug(context.Background(), domain.Language("fr"), "maria")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- List tests ------------------------------------------------------------

func TestProfileService_List(t *testing.T) {
	r := &mockProfileRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Profile, int64, error) {
			assert.Equal(t, 2, p.Page)
			return []domain.Profile{{ID: 3}, {ID: 4}}, 5, nil
		},
	}
	svc := service.NewProfileService(r, 0)

	got, page, err := svc.List(context.Background(), domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, page)
}

func TestProfileService_List_Empty(t *testing.T) {
	r := &mockProfileRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Profile, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewProfileService(r, 0)

	got, page, err := svc.List(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, page.TotalPages)
}

// ---- Alternates tests ------------------------------------------------------

func TestProfileService_Alternates(t *testing.T) {
	bundle := slug.Compose(slug.Input{FirstName: "Luz", Location: "La Romana"})
	r := &mockProfileRepo{
		getByID: func(_ context.Context, id int64) (domain.Profile, error) {
			return domain.Profile{ID: id, Slugs: bundle}, nil
		},
	}
	svc := service.NewProfileService(r, 0)

	got, err := svc.Alternates(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, bundle, got)
}

func TestProfileService_Alternates_NoSlugsYet(t *testing.T) {
	r := &mockProfileRepo{
		getByID: func(_ context.Context, id int64) (domain.Profile, error) {
			return domain.Profile{ID: id}, nil
		},
	}
	svc := service.NewProfileService(r, 0)

	_, err := svc.Alternates(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
