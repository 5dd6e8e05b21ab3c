package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

type reportFormat string

const (
	formatText reportFormat = "text"
	formatYAML reportFormat = "yaml"
)

func parseFormat(s string) (reportFormat, error) {
	switch f := reportFormat(strings.ToLower(s)); f {
	case formatText, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid --output %q: want text or yaml", s)
}

// renderReport writes r to w in the requested format.
func renderReport(w io.Writer, r domain.BackfillReport, format reportFormat) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}

	mode := "write"
	if r.DryRun {
		mode = "dry run"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "backfill %s (%s)\n", r.RunID, mode)
	fmt.Fprintf(&b, "  processed: %d\n", r.Processed)
	fmt.Fprintf(&b, "  updated:   %d\n", r.Updated)
	fmt.Fprintf(&b, "  failed:    %d\n", r.Failed)
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "    profile %d: %s\n", f.ProfileID, f.Error)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
