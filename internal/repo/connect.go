package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/firnco-tech/holacupid/backend/migrations"
)

var (
	ErrOpenPool        = errors.New("repo: failed to open database pool")
	ErrApplyMigrations = errors.New("repo: failed to apply migrations")
)

// Connect opens a pgxpool and verifies it with a ping, retrying with a
// linearly growing delay (interval, 2×interval, …) so the API and the
// backfill command survive a database that is still starting up.
func Connect(ctx context.Context, dsn string, attempts int, interval time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrOpenPool, err)
	}

	var lastErr error
	for i := range max(attempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrOpenPool, ctx.Err())
			case <-time.After(time.Duration(i) * interval):
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}
	return nil, errors.Join(ErrOpenPool, lastErr)
}

// Migrate applies every pending migration embedded in migrations.FS.
// The *sql.DB bridge shares the pool's connections, so it is not closed here.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	if len(results) == 0 {
		log.DebugContext(ctx, "no pending migrations")
	}
	return nil
}

