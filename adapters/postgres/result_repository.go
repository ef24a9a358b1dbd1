package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/ports"

	"github.com/jmoiron/sqlx"
)

// resultRepository implements ports.ResultRepository
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a test result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// SaveResults stores the results of one sweep, associated with a run
func (r *resultRepository) SaveResults(ctx context.Context, runID core.RunID, results []*hypothesis.TestResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO test_results (
		id, run_id, test_name, dimension, metric, statistic, p_value, alpha,
		degrees_freedom, group_sizes, direction, reject_null, conclusion, run_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for _, result := range results {
		sizes, err := json.Marshal(result.GroupSizes)
		if err != nil {
			return fmt.Errorf("failed to marshal group sizes: %w", err)
		}
		_, err = tx.ExecContext(ctx, query,
			result.ID.String(), runID.String(), result.TestName,
			result.Dimension.String(), string(result.Metric),
			result.Statistic, result.PValue, result.Alpha, result.DF,
			sizes, string(result.Direction), result.RejectNull,
			result.Conclusion, result.RunAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert test result: %w", err)
		}
	}
	return tx.Commit()
}

type resultRow struct {
	ID         string    `db:"id"`
	RunID      string    `db:"run_id"`
	TestName   string    `db:"test_name"`
	Dimension  string    `db:"dimension"`
	Metric     string    `db:"metric"`
	Statistic  float64   `db:"statistic"`
	PValue     float64   `db:"p_value"`
	Alpha      float64   `db:"alpha"`
	DF         float64   `db:"degrees_freedom"`
	GroupSizes []byte    `db:"group_sizes"`
	Direction  string    `db:"direction"`
	RejectNull bool      `db:"reject_null"`
	Conclusion string    `db:"conclusion"`
	RunAt      time.Time `db:"run_at"`
}

// GetByRun returns every result stored for a run
func (r *resultRepository) GetByRun(ctx context.Context, runID core.RunID) ([]*hypothesis.TestResult, error) {
	var rows []resultRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, run_id, test_name, dimension, metric, statistic, p_value, alpha,
		        degrees_freedom, group_sizes, direction, reject_null, conclusion, run_at
		 FROM test_results WHERE run_id = $1 ORDER BY dimension, metric`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get test results: %w", err)
	}

	results := make([]*hypothesis.TestResult, len(rows))
	for i, row := range rows {
		result := &hypothesis.TestResult{
			ID:         core.ResultID(row.ID),
			RunID:      core.RunID(row.RunID),
			TestName:   row.TestName,
			Dimension:  core.Dimension(row.Dimension),
			Metric:     hypothesis.Metric(row.Metric),
			Statistic:  row.Statistic,
			PValue:     row.PValue,
			Alpha:      row.Alpha,
			DF:         row.DF,
			Direction:  hypothesis.Direction(row.Direction),
			RejectNull: row.RejectNull,
			Conclusion: row.Conclusion,
			RunAt:      row.RunAt,
		}
		if len(row.GroupSizes) > 0 {
			if err := json.Unmarshal(row.GroupSizes, &result.GroupSizes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal group sizes: %w", err)
			}
		}
		results[i] = result
	}
	return results, nil
}
