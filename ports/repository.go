package ports

import (
	"context"
	"time"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
)

// AnalysisRun records one batch analysis over a source file. The database is
// a record of runs, not a source of truth; every value is recomputable.
type AnalysisRun struct {
	ID          core.RunID
	SourceFile  string
	RecordCount int
	WarningCount int
	PremiumSum  float64
	ClaimsSum   float64
	StartedAt   time.Time
	CompletedAt *time.Time
}

// RunRepository persists analysis runs
type RunRepository interface {
	Create(ctx context.Context, run *AnalysisRun) error
	Complete(ctx context.Context, id core.RunID, completedAt time.Time) error
	Get(ctx context.Context, id core.RunID) (*AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*AnalysisRun, error)
}

// ResultRepository persists hypothesis test results per run
type ResultRepository interface {
	SaveResults(ctx context.Context, runID core.RunID, results []*hypothesis.TestResult) error
	GetByRun(ctx context.Context, runID core.RunID) ([]*hypothesis.TestResult, error)
}

// AggregateRepository persists grouped aggregates per run and dimension
type AggregateRepository interface {
	SaveTable(ctx context.Context, runID core.RunID, table *aggregate.Table) error
	GetTable(ctx context.Context, runID core.RunID, dims []core.Dimension) (*aggregate.Table, error)
}
