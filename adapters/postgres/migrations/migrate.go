// Package migrations applies the riskbook schema. The database records
// analysis runs for comparison; every stored value is recomputable from the
// source file.
package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		source_file TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		warning_count INTEGER NOT NULL DEFAULT 0,
		premium_sum DOUBLE PRECISION NOT NULL DEFAULT 0,
		claims_sum DOUBLE PRECISION NOT NULL DEFAULT 0,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS grouped_aggregates (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
		dimensions TEXT NOT NULL,
		group_labels TEXT NOT NULL,
		premium_sum DOUBLE PRECISION NOT NULL,
		claims_sum DOUBLE PRECISION NOT NULL,
		record_count INTEGER NOT NULL,
		claim_count INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_grouped_aggregates_run
		ON grouped_aggregates(run_id, dimensions)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
		test_name TEXT NOT NULL,
		dimension TEXT NOT NULL,
		metric TEXT NOT NULL,
		statistic DOUBLE PRECISION NOT NULL,
		p_value DOUBLE PRECISION NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		degrees_freedom DOUBLE PRECISION NOT NULL DEFAULT 0,
		group_sizes JSONB,
		direction TEXT NOT NULL DEFAULT 'none',
		reject_null BOOLEAN NOT NULL,
		conclusion TEXT NOT NULL,
		run_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_test_results_run
		ON test_results(run_id)`,
}

// Apply runs every schema statement in order
func Apply(db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	return nil
}
