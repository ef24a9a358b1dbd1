// Package export writes grouped aggregates and test results to tabular
// files. Export formats are a convenience for analysts; the in-memory
// tables remain the computed source.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	apperrors "riskbook/internal/errors"
)

// summary columns appended after the dimension columns
var aggregateColumns = []string{
	"premium_sum", "claims_sum", "record_count", "claim_count", "loss_ratio", "claim_frequency",
}

// CSVExporter writes aggregates and results as CSV files
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ExportAggregates writes a grouped aggregate table. Undefined loss ratios
// are written as empty cells, not zero.
func (e *CSVExporter) ExportAggregates(path string, table *aggregate.Table) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, len(table.Dimensions)+len(aggregateColumns))
	for _, d := range table.Dimensions {
		header = append(header, d.String())
	}
	header = append(header, aggregateColumns...)
	if err := w.Write(header); err != nil {
		return apperrors.ExportError("failed to write header", err)
	}

	for _, key := range table.SortedKeys() {
		g := table.Groups[key]
		row := make([]string, 0, len(header))
		row = append(row, g.Labels...)
		row = append(row,
			formatFloat(g.PremiumSum),
			formatFloat(g.ClaimsSum),
			strconv.Itoa(g.RecordCount),
			strconv.Itoa(g.ClaimCount),
			formatOptional(g.LossRatio()),
			formatOptional(g.ClaimFrequency()),
		)
		if err := w.Write(row); err != nil {
			return apperrors.ExportError("failed to write row", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportResults writes hypothesis test results
func (e *CSVExporter) ExportResults(path string, results []*hypothesis.TestResult) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"test_name", "dimension", "metric", "statistic", "p_value", "alpha", "reject_null", "direction", "conclusion"}
	if err := w.Write(header); err != nil {
		return apperrors.ExportError("failed to write header", err)
	}
	for _, r := range results {
		row := []string{
			r.TestName,
			r.Dimension.String(),
			string(r.Metric),
			formatFloat(r.Statistic),
			formatFloat(r.PValue),
			formatFloat(r.Alpha),
			strconv.FormatBool(r.RejectNull),
			string(r.Direction),
			r.Conclusion,
		}
		if err := w.Write(row); err != nil {
			return apperrors.ExportError("failed to write row", err)
		}
	}
	w.Flush()
	return w.Error()
}

// CSVImporter reads an exported aggregate table back. Export then import
// reproduces group keys and values within float tolerance.
type CSVImporter struct{}

// NewCSVImporter creates a CSV importer
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// ImportAggregates reads a table written by ExportAggregates
func (i *CSVImporter) ImportAggregates(path string) (*aggregate.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ExportError("failed to open aggregate export", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, apperrors.ExportError("failed to read aggregate export", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ExportError("aggregate export is empty", nil)
	}

	header := rows[0]
	dimCount := len(header) - len(aggregateColumns)
	if dimCount < 0 {
		return nil, apperrors.ExportError("aggregate export header is malformed", nil)
	}
	dims := make([]core.Dimension, dimCount)
	for j := 0; j < dimCount; j++ {
		dims[j] = core.Dimension(header[j])
	}

	table := aggregate.NewTable(dims...)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, apperrors.ExportError(fmt.Sprintf("row has %d fields, expected %d", len(row), len(header)), nil)
		}
		g := table.Get(aggregate.NewKey(row[:dimCount]))
		if g.PremiumSum, err = strconv.ParseFloat(row[dimCount], 64); err != nil {
			return nil, apperrors.ExportError("bad premium_sum", err)
		}
		if g.ClaimsSum, err = strconv.ParseFloat(row[dimCount+1], 64); err != nil {
			return nil, apperrors.ExportError("bad claims_sum", err)
		}
		if g.RecordCount, err = strconv.Atoi(row[dimCount+2]); err != nil {
			return nil, apperrors.ExportError("bad record_count", err)
		}
		if g.ClaimCount, err = strconv.Atoi(row[dimCount+3]); err != nil {
			return nil, apperrors.ExportError("bad claim_count", err)
		}
		// loss_ratio and claim_frequency are derived; re-computed on access
	}
	return table, nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.ExportError("failed to create export directory", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.ExportError("failed to create export file", err)
	}
	return f, nil
}

// formatFloat writes the shortest representation that round-trips exactly
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
