package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/repo"
	"github.com/firnco-tech/holacupid/backend/internal/slug"
)

// BackfillOptions controls one backfill run.
type BackfillOptions struct {
	// DryRun computes every bundle but writes nothing.
	DryRun bool

	// MaxAttempts is passed to slug.EnsureUnique; <= 0 selects the default.
	MaxAttempts int
}

// BackfillService assigns slugs to profiles created before slugs existed.
//
// Runs are not coordinated across processes: two concurrent runs against the
// same database can pick the same slug, and the loser's write fails on the
// unique index and is reported as a failure.
type BackfillService struct {
	profiles repo.ProfileRepo
	log      *slog.Logger
}

// NewBackfillService constructs a BackfillService backed by the provided repo.
func NewBackfillService(r repo.ProfileRepo, log *slog.Logger) *BackfillService {
	return &BackfillService{profiles: r, log: log}
}

// Run processes every profile missing a slug in ascending id order.
//
// The run seeds an in-memory index with every persisted slug and claims
// each bundle before moving on, so profiles within the run never collide.
// Each profile is persisted on its own; a failed write is logged and
// recorded in the report and the run continues with the next profile.
//
// The returned error is non-nil only when the run could not start or ctx
// was cancelled; in the latter case the report covers the profiles handled
// before cancellation.
func (s *BackfillService) Run(ctx context.Context, opts BackfillOptions) (domain.BackfillReport, error) {
	report := domain.BackfillReport{RunID: uuid.NewString(), DryRun: opts.DryRun}
	log := s.log.With("run_id", report.RunID, "dry_run", opts.DryRun)

	pending, err := s.profiles.ListMissingSlugs(ctx)
	if err != nil {
		return report, fmt.Errorf("service.BackfillService.Run: %w", err)
	}
	persisted, err := s.profiles.AllSlugs(ctx)
	if err != nil {
		return report, fmt.Errorf("service.BackfillService.Run: %w", err)
	}

	index := slug.NewIndex()
	for l, slugs := range persisted {
		index.Seed(l, slugs...)
	}
	log.InfoContext(ctx, "backfill started", "pending", len(pending))

	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			log.WarnContext(ctx, "backfill cancelled", "processed", report.Processed)
			return report, fmt.Errorf("service.BackfillService.Run: %w", err)
		}

		in := slug.Input{FirstName: p.FirstName, Location: p.Location}
		bundle := index.Fill(in, p.Slugs, opts.MaxAttempts)
		report.Processed++

		if err := bundle.Validate(); err != nil {
			// Persisted anyway: a best-effort slug beats none.
			log.WarnContext(ctx, "malformed slug bundle", "profile_id", p.ID, "error", err)
		}

		if opts.DryRun {
			log.InfoContext(ctx, "slugs computed", "profile_id", p.ID, "slugs", bundle)
			continue
		}

		if err := s.profiles.UpdateSlugs(ctx, p.ID, bundle); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, domain.BackfillFailure{ProfileID: p.ID, Error: err.Error()})
			log.ErrorContext(ctx, "failed to persist slugs", "profile_id", p.ID, "error", err)
			continue
		}
		report.Updated++
		log.DebugContext(ctx, "slugs persisted", "profile_id", p.ID)
	}

	log.InfoContext(ctx, "backfill finished",
		"processed", report.Processed,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, nil
}
