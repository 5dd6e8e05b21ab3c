// Package main is the entry point for the one-time slug backfill.
// It assigns slugs to every profile created before slugs existed, in
// ascending id order, and prints a report. The exit code is 1 when any
// profile could not be updated; rerunning picks those profiles up again.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/firnco-tech/holacupid/backend/internal/config"
	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/repo"
	"github.com/firnco-tech/holacupid/backend/internal/service"
)

// errProfilesFailed is returned when the run finished but some profiles
// were not updated. The report already names them.
var errProfilesFailed = errors.New("some profiles could not be updated")

// runFunc executes one backfill run. main wires it to the database;
// tests substitute a fake.
type runFunc func(ctx context.Context, opts runOptions, log *slog.Logger) (domain.BackfillReport, error)

type runOptions struct {
	service.BackfillOptions
	Migrate bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(runAgainstDatabase).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errProfilesFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(run runFunc) *cobra.Command {
	var (
		opts     runOptions
		logLevel string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Assign multilingual slugs to profiles that have none",
		Long: `Generates the six per-language slugs for every profile missing one
and stores them. Slugs already present on a profile are kept.

Connection settings come from the same environment as the API server
(DATABASE_URL, SLUG_MAX_ATTEMPTS).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q", logLevel)
			}
			// Logs go to stderr so the report on stdout stays machine-readable.
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			report, err := run(cmd.Context(), opts, logger)
			if err != nil {
				// A cancelled run still has a partial report worth printing.
				if report.RunID != "" {
					_ = renderReport(cmd.OutOrStdout(), report, format)
				}
				return err
			}
			if err := renderReport(cmd.OutOrStdout(), report, format); err != nil {
				return err
			}
			if report.Failed > 0 {
				return errProfilesFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.DryRun, "dry-run", false, "compute slugs and report them without writing")
	f.IntVar(&opts.MaxAttempts, "max-attempts", 0, "highest numeric suffix to try before a timestamp suffix (0 uses SLUG_MAX_ATTEMPTS)")
	f.BoolVar(&opts.Migrate, "migrate", false, "apply pending database migrations before the run")
	f.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "minimum log level: debug, info, warn, error")
	f.StringVarP(&output, "output", "o", string(formatText), "report format: text or yaml")

	return cmd
}

// runAgainstDatabase connects using the API server's configuration and
// runs the backfill service.
func runAgainstDatabase(ctx context.Context, opts runOptions, log *slog.Logger) (domain.BackfillReport, error) {
	cfg, err := config.Load()
	if err != nil {
		return domain.BackfillReport{}, err
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = cfg.SlugMaxAttempts
	}

	pool, err := repo.Connect(ctx, cfg.DatabaseURL, 3, time.Second)
	if err != nil {
		return domain.BackfillReport{}, err
	}
	defer pool.Close()

	if opts.Migrate {
		if err := repo.Migrate(ctx, pool, log); err != nil {
			return domain.BackfillReport{}, err
		}
	}

	return service.NewBackfillService(repo.NewProfileRepo(pool), log).Run(ctx, opts.BackfillOptions)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
