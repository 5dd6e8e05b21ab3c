// Package migrations embeds the SQL migration files so they can be applied
// by the goose provider at server start, in the backfill command, and in
// integration tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
