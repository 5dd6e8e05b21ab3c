// Package repo contains all database access logic for the HolaCupid profile API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileRepo defines the persistence operations for Profiles and their
// per-language slug columns.
type ProfileRepo interface {
	// Create inserts a new profile, including any slugs already generated,
	// and returns the persisted record. Returns domain.ErrConflict if a slug
	// is already taken in its language.
	Create(ctx context.Context, p domain.Profile) (domain.Profile, error)

	// GetByID retrieves a single profile by primary key.
	// Returns domain.ErrNotFound if no profile with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Profile, error)

	// GetBySlug retrieves the profile whose slug in lang equals slug.
	// Returns domain.ErrNotFound if none matches.
	GetBySlug(ctx context.Context, lang domain.Language, slug string) (domain.Profile, error)

	// ListPaged returns one page of profiles ordered by id and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Profile, int64, error)

	// ListMissingSlugs returns every profile lacking a slug in at least one
	// language, ordered by id ascending.
	ListMissingSlugs(ctx context.Context) ([]domain.Profile, error)

	// SlugsWithPrefix returns the slugs in lang that equal base or start
	// with base followed by a hyphen.
	SlugsWithPrefix(ctx context.Context, lang domain.Language, base string) ([]string, error)

	// AllSlugs returns every persisted slug grouped by language.
	AllSlugs(ctx context.Context) (map[domain.Language][]string, error)

	// UpdateSlugs overwrites all six slug columns of one profile.
	// Returns domain.ErrNotFound if the profile does not exist and
	// domain.ErrConflict if a slug is already taken.
	UpdateSlugs(ctx context.Context, id int64, slugs domain.SlugBundle) error
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

const profileColumns = `id, first_name, location, age, about,
		slug_en, slug_es, slug_de, slug_it, slug_nl, slug_pt,
		created_at, updated_at`

// Create inserts a profile row and returns the full persisted record.
func (r *pgProfileRepo) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO profiles (first_name, location, age, about,
			slug_en, slug_es, slug_de, slug_it, slug_nl, slug_pt)
		VALUES (@first_name, @location, @age, @about,
			@slug_en, @slug_es, @slug_de, @slug_it, @slug_nl, @slug_pt)
		RETURNING ` + profileColumns

	args := slugArgs(p.Slugs)
	args["first_name"] = p.FirstName
	args["location"] = p.Location
	args["age"] = nullableAge(p.Age)
	args["about"] = p.About

	result, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Create: %w", mapWriteError(err))
	}
	return result, nil
}

// GetByID retrieves a profile by primary key.
func (r *pgProfileRepo) GetByID(ctx context.Context, id int64) (domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = @id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a profile by its slug in one language.
func (r *pgProfileRepo) GetBySlug(ctx context.Context, lang domain.Language, slug string) (domain.Profile, error) {
	col, err := slugColumn(lang)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetBySlug: %w", err)
	}
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + col + ` = @slug`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of profiles ordered by id ascending.
// COUNT(*) OVER() returns the total alongside each row so a single query
// serves both the page and the pagination metadata.
func (r *pgProfileRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Profile, int64, error) {
	const q = `
		SELECT ` + profileColumns + `, COUNT(*) OVER() AS total
		FROM profiles
		ORDER BY id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ProfileRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		profiles = []domain.Profile{}
		total    int64
	)
	for rows.Next() {
		prof, err := scanProfile(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ProfileRepo.ListPaged: scan: %w", err)
		}
		profiles = append(profiles, prof)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ProfileRepo.ListPaged: rows: %w", err)
	}

	// An out-of-range page returns no rows and therefore no window total.
	if len(profiles) == 0 && p.Page > 1 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.ProfileRepo.ListPaged: count: %w", err)
		}
	}
	return profiles, total, nil
}

// ListMissingSlugs returns profiles with at least one NULL slug column.
func (r *pgProfileRepo) ListMissingSlugs(ctx context.Context) ([]domain.Profile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE slug_en IS NULL OR slug_es IS NULL OR slug_de IS NULL
		   OR slug_it IS NULL OR slug_nl IS NULL OR slug_pt IS NULL
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.ListMissingSlugs: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		prof, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProfileRepo.ListMissingSlugs: scan: %w", err)
		}
		profiles = append(profiles, prof)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.ListMissingSlugs: rows: %w", err)
	}
	return profiles, nil
}

// SlugsWithPrefix returns base and every "base-…" slug taken in lang.
// Slugs only contain [a-z0-9-], so base needs no LIKE escaping.
func (r *pgProfileRepo) SlugsWithPrefix(ctx context.Context, lang domain.Language, base string) ([]string, error) {
	col, err := slugColumn(lang)
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.SlugsWithPrefix: %w", err)
	}
	q := `SELECT ` + col + ` FROM profiles WHERE ` + col + ` = @base OR ` + col + ` LIKE @base || '-%'`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"base": base})
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.SlugsWithPrefix: %w", err)
	}
	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.SlugsWithPrefix: collect: %w", err)
	}
	return slugs, nil
}

// AllSlugs loads every non-NULL slug, grouped by language.
func (r *pgProfileRepo) AllSlugs(ctx context.Context) (map[domain.Language][]string, error) {
	const q = `SELECT slug_en, slug_es, slug_de, slug_it, slug_nl, slug_pt FROM profiles`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.AllSlugs: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Language][]string, len(domain.Languages))
	for rows.Next() {
		cols := make([]pgtype.Text, len(domain.Languages))
		dest := make([]any, len(cols))
		for i := range cols {
			dest[i] = &cols[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("repo.ProfileRepo.AllSlugs: scan: %w", err)
		}
		for i, l := range domain.Languages {
			if cols[i].Valid {
				out[l] = append(out[l], cols[i].String)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.AllSlugs: rows: %w", err)
	}
	return out, nil
}

// UpdateSlugs sets all six slug columns for a profile.
func (r *pgProfileRepo) UpdateSlugs(ctx context.Context, id int64, slugs domain.SlugBundle) error {
	const q = `
		UPDATE profiles
		SET slug_en    = @slug_en,
		    slug_es    = @slug_es,
		    slug_de    = @slug_de,
		    slug_it    = @slug_it,
		    slug_nl    = @slug_nl,
		    slug_pt    = @slug_pt,
		    updated_at = now()
		WHERE id = @id`

	args := slugArgs(slugs)
	args["id"] = id

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ProfileRepo.UpdateSlugs: %w", mapWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProfileRepo.UpdateSlugs: %w", domain.ErrNotFound)
	}
	return nil
}

// slugColumn maps a language to its slug column. Column names are never
// built from unchecked input.
func slugColumn(lang domain.Language) (string, error) {
	if !lang.Valid() {
		return "", fmt.Errorf("%w: unsupported language %q", domain.ErrValidation, lang)
	}
	return "slug_" + string(lang), nil
}

// slugArgs returns named args for every slug column. Languages missing from
// b become NULL.
func slugArgs(b domain.SlugBundle) pgx.NamedArgs {
	args := pgx.NamedArgs{}
	for _, l := range domain.Languages {
		var v *string
		if s, ok := b[l]; ok && s != "" {
			v = &s
		}
		args["slug_"+string(l)] = v
	}
	return args
}

func nullableAge(age int) *int {
	if age == 0 {
		return nil
	}
	return &age
}

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// mapWriteError converts a unique index violation into domain.ErrConflict.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanProfile to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanProfile maps a row selected with profileColumns into a domain.Profile.
// extra receives any trailing columns (e.g. a window COUNT).
func scanProfile(s scanner, extra ...any) (domain.Profile, error) {
	var (
		p     domain.Profile
		age   pgtype.Int4
		slugs = make([]pgtype.Text, len(domain.Languages))
	)

	dest := []any{&p.ID, &p.FirstName, &p.Location, &age, &p.About}
	for i := range slugs {
		dest = append(dest, &slugs[i])
	}
	dest = append(dest, &p.CreatedAt, &p.UpdatedAt)
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}

	if age.Valid {
		p.Age = int(age.Int32)
	}
	p.Slugs = domain.SlugBundle{}
	for i, l := range domain.Languages {
		if slugs[i].Valid {
			p.Slugs[l] = slugs[i].String
		}
	}
	return p, nil
}
