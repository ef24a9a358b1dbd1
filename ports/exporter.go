package ports

import (
	"riskbook/domain/aggregate"
	"riskbook/domain/hypothesis"
)

// AggregateExporter writes a grouped aggregate table to a tabular file
type AggregateExporter interface {
	ExportAggregates(path string, table *aggregate.Table) error
	ExportResults(path string, results []*hypothesis.TestResult) error
}

// AggregateImporter reads a previously exported aggregate table back.
// Export then import must reproduce keys and values within float tolerance.
type AggregateImporter interface {
	ImportAggregates(path string) (*aggregate.Table, error)
}
