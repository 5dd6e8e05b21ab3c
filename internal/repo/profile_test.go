package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/repo"
	"github.com/firnco-tech/holacupid/backend/internal/slug"
	"github.com/firnco-tech/holacupid/backend/testutil"
)

// newTestRepo returns a ProfileRepo backed by a transaction that is rolled
// back when the test finishes.
func newTestRepo(t *testing.T) repo.ProfileRepo {
	t.Helper()
	return repo.NewProfileRepo(testutil.NewTx(t))
}

// profileFixture returns a slugged profile ready for insertion.
func profileFixture(firstName, location string) domain.Profile {
	return domain.Profile{
		FirstName: firstName,
		Location:  location,
		Age:       27,
		About:     "Me encanta bailar bachata.",
		Slugs:     slug.Compose(slug.Input{FirstName: firstName, Location: location}),
	}
}

func mustCreate(t *testing.T, r repo.ProfileRepo, p domain.Profile) domain.Profile {
	t.Helper()
	got, err := r.Create(context.Background(), p)
	require.NoError(t, err, "create profile")
	return got
}

func TestProfileRepo_Create(t *testing.T) {
	r := newTestRepo(t)

	input := profileFixture("María", "Santo Domingo")
	got := mustCreate(t, r, input)

	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.FirstName, got.FirstName)
	assert.Equal(t, input.Location, got.Location)
	assert.Equal(t, 27, got.Age)
	assert.Equal(t, input.Slugs, got.Slugs)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestProfileRepo_Create_WithoutSlugsOrAge(t *testing.T) {
	r := newTestRepo(t)

	got := mustCreate(t, r, domain.Profile{FirstName: "Ana", Location: "Cabarete"})

	assert.Zero(t, got.Age)
	assert.Empty(t, got.Slugs)
	assert.False(t, got.HasAllSlugs())
}

func TestProfileRepo_Create_DuplicateSlugConflicts(t *testing.T) {
	r := newTestRepo(t)
	mustCreate(t, r, profileFixture("Juan", "Puerto Plata"))

	_, err := r.Create(context.Background(), profileFixture("Juan", "Puerto Plata"))

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProfileRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), -1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepo_GetBySlug(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, profileFixture("Carla", "Punta Cana"))

	for _, l := range domain.Languages {
		got, err := r.GetBySlug(context.Background(), l, created.Slugs[l])
		require.NoError(t, err, "language %s", l)
		assert.Equal(t, created.ID, got.ID)
	}

	_, err := r.GetBySlug(context.Background(), domain.English, "nobody-from-nowhere-dominican-republic")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepo_GetBySlug_UnsupportedLanguage(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetBySlug(context.Background(), domain.Language("fr"), "x")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileRepo_SlugsWithPrefix(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := mustCreate(t, r, profileFixture("Ana", "Santiago"))
	second := profileFixture("Ana", "Santiago")
	for l, s := range second.Slugs {
		second.Slugs[l] = s + "-2"
	}
	mustCreate(t, r, second)
	// Shares the text prefix but not the "base-" boundary.
	mustCreate(t, r, profileFixture("Anabel", "Santiago"))

	got, err := r.SlugsWithPrefix(ctx, domain.English, first.Slugs[domain.English])

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"ana-from-santiago-dominican-republic",
		"ana-from-santiago-dominican-republic-2",
	}, got)
}

func TestProfileRepo_ListMissingSlugs_OrderedByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, r, domain.Profile{FirstName: "Ana", Location: "Sosúa"})
	mustCreate(t, r, profileFixture("Bea", "Sosúa"))
	c := mustCreate(t, r, domain.Profile{FirstName: "Cris", Location: "Sosúa"})

	got, err := r.ListMissingSlugs(ctx)

	require.NoError(t, err)
	var ids []int64
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, c.ID)
	assert.IsIncreasing(t, ids)
}

func TestProfileRepo_AllSlugs(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, profileFixture("Luz", "La Vega"))
	mustCreate(t, r, domain.Profile{FirstName: "NoSlug", Location: "La Vega"})

	got, err := r.AllSlugs(context.Background())

	require.NoError(t, err)
	for _, l := range domain.Languages {
		assert.Contains(t, got[l], created.Slugs[l], "language %s", l)
	}
}

func TestProfileRepo_UpdateSlugs(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	created := mustCreate(t, r, domain.Profile{FirstName: "Rosa", Location: "Higüey"})

	bundle := slug.Compose(slug.Input{FirstName: "Rosa", Location: "Higüey"})
	require.NoError(t, r.UpdateSlugs(ctx, created.ID, bundle))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, bundle, got.Slugs)
	assert.True(t, got.HasAllSlugs())
}

func TestProfileRepo_UpdateSlugs_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.UpdateSlugs(context.Background(), -1, slug.Compose(slug.Input{FirstName: "X", Location: "Y"}))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepo_UpdateSlugs_Conflict(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	taken := mustCreate(t, r, profileFixture("Eva", "Bávaro"))
	other := mustCreate(t, r, domain.Profile{FirstName: "Eva", Location: "Bávaro"})

	err := r.UpdateSlugs(ctx, other.ID, taken.Slugs)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProfileRepo_ListPaged(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	for _, name := range []string{"Uno", "Dos", "Tres"} {
		mustCreate(t, r, profileFixture(name, "Boca Chica"))
	}

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.GreaterOrEqual(t, total, int64(3))

	beyond, totalBeyond, err := r.ListPaged(ctx, domain.PaginationParams{Page: 10_000, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, total, totalBeyond)
}
