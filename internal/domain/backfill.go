package domain

// BackfillReport summarises one backfill run.
// Failed profiles keep their previous (missing) slugs and are picked up
// again by the next run.
type BackfillReport struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	DryRun    bool              `json:"dry_run" yaml:"dry_run"`
	Processed int               `json:"processed" yaml:"processed"`
	Updated   int               `json:"updated" yaml:"updated"`
	Failed    int               `json:"failed" yaml:"failed"`
	Failures  []BackfillFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// BackfillFailure records a profile whose slugs could not be persisted.
type BackfillFailure struct {
	ProfileID int64  `json:"profile_id" yaml:"profile_id"`
	Error     string `json:"error" yaml:"error"`
}
