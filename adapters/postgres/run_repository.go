package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"riskbook/domain/core"
	"riskbook/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements ports.RunRepository
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Create inserts a new analysis run
func (r *runRepository) Create(ctx context.Context, run *ports.AnalysisRun) error {
	query := `INSERT INTO analysis_runs (
		id, source_file, record_count, warning_count, premium_sum, claims_sum, started_at, completed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID.String(), run.SourceFile, run.RecordCount, run.WarningCount,
		run.PremiumSum, run.ClaimsSum, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis run: %w", err)
	}
	return nil
}

// Complete marks a run finished
func (r *runRepository) Complete(ctx context.Context, id core.RunID, completedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_runs SET completed_at = $2 WHERE id = $1`,
		id.String(), completedAt)
	if err != nil {
		return fmt.Errorf("failed to complete analysis run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return core.ErrRunNotFound
	}
	return nil
}

type runRow struct {
	ID           string     `db:"id"`
	SourceFile   string     `db:"source_file"`
	RecordCount  int        `db:"record_count"`
	WarningCount int        `db:"warning_count"`
	PremiumSum   float64    `db:"premium_sum"`
	ClaimsSum    float64    `db:"claims_sum"`
	StartedAt    time.Time  `db:"started_at"`
	CompletedAt  *time.Time `db:"completed_at"`
}

func (row *runRow) toDomain() *ports.AnalysisRun {
	return &ports.AnalysisRun{
		ID:           core.RunID(row.ID),
		SourceFile:   row.SourceFile,
		RecordCount:  row.RecordCount,
		WarningCount: row.WarningCount,
		PremiumSum:   row.PremiumSum,
		ClaimsSum:    row.ClaimsSum,
		StartedAt:    row.StartedAt,
		CompletedAt:  row.CompletedAt,
	}
}

// Get returns one run by ID
func (r *runRepository) Get(ctx context.Context, id core.RunID) (*ports.AnalysisRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, source_file, record_count, warning_count, premium_sum, claims_sum, started_at, completed_at
		 FROM analysis_runs WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	return row.toDomain(), nil
}

// List returns the most recent runs
func (r *runRepository) List(ctx context.Context, limit int) ([]*ports.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, source_file, record_count, warning_count, premium_sum, claims_sum, started_at, completed_at
		 FROM analysis_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	runs := make([]*ports.AnalysisRun, len(rows))
	for i := range rows {
		runs[i] = rows[i].toDomain()
	}
	return runs, nil
}
