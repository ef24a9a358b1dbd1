package export

import (
	"fmt"
	"path/filepath"
	"os"

	"riskbook/domain/aggregate"
	"riskbook/domain/hypothesis"
	apperrors "riskbook/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes aggregates and test results into one workbook,
// one sheet per table, for analysts who live in spreadsheets.
type ExcelExporter struct{}

// NewExcelExporter creates an Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// ExportWorkbook writes aggregate tables and test results to an xlsx file.
// tables maps sheet names to aggregate tables.
func (e *ExcelExporter) ExportWorkbook(path string, tables map[string]*aggregate.Table, results []*hypothesis.TestResult) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, table := range tables {
		if err := e.writeAggregateSheet(f, name, table, first); err != nil {
			return err
		}
		first = false
	}
	if len(results) > 0 {
		if err := e.writeResultsSheet(f, results, first); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.ExportError("failed to create export directory", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.ExportError("failed to save workbook", err)
	}
	return nil
}

func (e *ExcelExporter) writeAggregateSheet(f *excelize.File, name string, table *aggregate.Table, reuseDefault bool) error {
	sheet, err := e.addSheet(f, name, reuseDefault)
	if err != nil {
		return err
	}

	header := make([]interface{}, 0)
	for _, d := range table.Dimensions {
		header = append(header, d.String())
	}
	for _, c := range aggregateColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.ExportError("failed to write sheet header", err)
	}

	for i, key := range table.SortedKeys() {
		g := table.Groups[key]
		row := make([]interface{}, 0, len(header))
		for _, label := range g.Labels {
			row = append(row, label)
		}
		row = append(row, g.PremiumSum, g.ClaimsSum, g.RecordCount, g.ClaimCount)
		row = append(row, optionalCell(g.LossRatio()), optionalCell(g.ClaimFrequency()))
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.ExportError("failed to write sheet row", err)
		}
	}
	return nil
}

func (e *ExcelExporter) writeResultsSheet(f *excelize.File, results []*hypothesis.TestResult, reuseDefault bool) error {
	sheet, err := e.addSheet(f, "TestResults", reuseDefault)
	if err != nil {
		return err
	}

	header := []interface{}{"test_name", "dimension", "metric", "statistic", "p_value", "alpha", "reject_null", "conclusion"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.ExportError("failed to write sheet header", err)
	}
	for i, r := range results {
		row := []interface{}{
			r.TestName, r.Dimension.String(), string(r.Metric),
			r.Statistic, r.PValue, r.Alpha, r.RejectNull, r.Conclusion,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.ExportError("failed to write sheet row", err)
		}
	}
	return nil
}

// addSheet renames the default sheet for the first table, creates new
// sheets after that
func (e *ExcelExporter) addSheet(f *excelize.File, name string, reuseDefault bool) (string, error) {
	if reuseDefault {
		defaultSheet := f.GetSheetName(0)
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return "", apperrors.ExportError("failed to rename sheet", err)
		}
		return name, nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return "", apperrors.ExportError("failed to create sheet", err)
	}
	return name, nil
}

// optionalCell writes undefined values as empty cells, never zero
func optionalCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
