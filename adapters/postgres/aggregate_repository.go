package postgres

import (
	"context"
	"fmt"
	"strings"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/ports"

	"github.com/jmoiron/sqlx"
)

// aggregateRepository implements ports.AggregateRepository. Groups are
// stored flat; the dimension list identifies the table within a run.
type aggregateRepository struct {
	db *sqlx.DB
}

// NewAggregateRepository creates an aggregate repository
func NewAggregateRepository(db *sqlx.DB) ports.AggregateRepository {
	return &aggregateRepository{db: db}
}

// SaveTable stores every group of one aggregate table
func (r *aggregateRepository) SaveTable(ctx context.Context, runID core.RunID, table *aggregate.Table) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO grouped_aggregates (
		run_id, dimensions, group_labels, premium_sum, claims_sum, record_count, claim_count
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	dims := dimensionList(table.Dimensions)
	for _, key := range table.SortedKeys() {
		g := table.Groups[key]
		_, err := tx.ExecContext(ctx, query,
			runID.String(), dims, strings.Join(g.Labels, "|"),
			g.PremiumSum, g.ClaimsSum, g.RecordCount, g.ClaimCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert grouped aggregate: %w", err)
		}
	}
	return tx.Commit()
}

type aggregateRow struct {
	GroupLabels string  `db:"group_labels"`
	PremiumSum  float64 `db:"premium_sum"`
	ClaimsSum   float64 `db:"claims_sum"`
	RecordCount int     `db:"record_count"`
	ClaimCount  int     `db:"claim_count"`
}

// GetTable loads the aggregate table stored for a run and dimension list
func (r *aggregateRepository) GetTable(ctx context.Context, runID core.RunID, dims []core.Dimension) (*aggregate.Table, error) {
	var rows []aggregateRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT group_labels, premium_sum, claims_sum, record_count, claim_count
		 FROM grouped_aggregates WHERE run_id = $1 AND dimensions = $2`,
		runID.String(), dimensionList(dims))
	if err != nil {
		return nil, fmt.Errorf("failed to get grouped aggregates: %w", err)
	}
	if len(rows) == 0 {
		return nil, core.ErrNotFound
	}

	table := aggregate.NewTable(dims...)
	for _, row := range rows {
		g := table.Get(aggregate.NewKey(strings.Split(row.GroupLabels, "|")))
		g.PremiumSum = row.PremiumSum
		g.ClaimsSum = row.ClaimsSum
		g.RecordCount = row.RecordCount
		g.ClaimCount = row.ClaimCount
	}
	return table, nil
}

func dimensionList(dims []core.Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}
