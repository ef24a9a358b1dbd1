// Package app wires the loader, metric engine, test runner and trainer into
// the analysis workflows the CLI and servers expose.
package app

import (
	"context"
	"path/filepath"

	"riskbook/adapters/export"
	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
	"riskbook/internal"
	"riskbook/internal/analysis"
	"riskbook/internal/profiling"
	"riskbook/ports"
)

// EDAReport is the output of one exploratory analysis pass
type EDAReport struct {
	SourceFile string                             `json:"source_file"`
	Overall    *aggregate.Group                   `json:"overall"`
	Tables     map[core.Dimension]*aggregate.Table `json:"-"`
	Profile    *profiling.BookProfile             `json:"profile"`
	Warnings   int                                `json:"warnings"`
}

// EDAService loads the book, profiles data quality and computes grouped KPIs
type EDAService struct {
	loader     ports.LoaderPort
	aggregator *analysis.Aggregator
	profiler   *profiling.Profiler
	logger     *internal.Logger
}

// NewEDAService creates an EDA service
func NewEDAService(loader ports.LoaderPort, logger *internal.Logger) *EDAService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EDAService{
		loader:     loader,
		aggregator: analysis.NewAggregator(),
		profiler:   profiling.NewProfiler(),
		logger:     logger,
	}
}

// Load reads the source file into records
func (s *EDAService) Load(ctx context.Context, path string) (*ports.LoadResult, error) {
	return s.loader.Load(ctx, path)
}

// Analyze profiles the loaded book and aggregates it by every dimension
func (s *EDAService) Analyze(sourceFile string, loaded *ports.LoadResult, dims []core.Dimension) (*EDAReport, error) {
	profile, err := s.profiler.Profile(loaded.Records)
	if err != nil {
		return nil, err
	}

	tables := make(map[core.Dimension]*aggregate.Table, len(dims))
	for _, dim := range dims {
		tables[dim] = s.aggregator.GroupBy(loaded.Records, dim)
	}

	return &EDAReport{
		SourceFile: sourceFile,
		Overall:    s.aggregator.Overall(loaded.Records),
		Tables:     tables,
		Profile:    profile,
		Warnings:   len(loaded.Warnings),
	}, nil
}

// Aggregator exposes the metric engine for callers that group ad hoc
func (s *EDAService) Aggregator() *analysis.Aggregator {
	return s.aggregator
}

// ExportCSV writes one CSV per dimension table into dir
func (s *EDAService) ExportCSV(dir string, report *EDAReport) error {
	exporter := export.NewCSVExporter()
	for dim, table := range report.Tables {
		path := filepath.Join(dir, "lossratio_by_"+dim.String()+".csv")
		if err := exporter.ExportAggregates(path, table); err != nil {
			return err
		}
		s.logger.Info("wrote %s", path)
	}
	return nil
}

// ExportWorkbook writes every dimension table into one xlsx workbook
func (s *EDAService) ExportWorkbook(path string, report *EDAReport) error {
	tables := make(map[string]*aggregate.Table, len(report.Tables))
	for dim, table := range report.Tables {
		tables[dim.String()] = table
	}
	if err := export.NewExcelExporter().ExportWorkbook(path, tables, nil); err != nil {
		return err
	}
	s.logger.Info("wrote %s", path)
	return nil
}

// SegmentSummaries builds the per-group vs-rest comparison table for one
// dimension: loss ratio, claim frequency, and vs-rest test columns.
func (s *EDAService) SegmentSummaries(records []*policy.Record, dim core.Dimension, topN int, runner VsRestRunner) []SegmentSummary {
	table := s.aggregator.GroupBy(records, dim)
	overall := table.Totals()

	groups := table.TopN(topN)
	if topN <= 0 {
		groups = table.TopN(len(table.Groups))
	}

	summaries := make([]SegmentSummary, 0, len(groups))
	for _, g := range groups {
		summary := SegmentSummary{
			Dimension:      dim,
			Group:          g.Key.Label(),
			Records:        g.RecordCount,
			ClaimCount:     g.ClaimCount,
			PremiumSum:     g.PremiumSum,
			ClaimsSum:      g.ClaimsSum,
			LossRatio:      g.LossRatio(),
			ClaimFrequency: g.ClaimFrequency(),
		}
		if runner != nil {
			restN := overall.RecordCount - g.RecordCount
			restK := overall.ClaimCount - g.ClaimCount
			if result, err := runner.TwoProportionZ(dim, g.Key.Label(), g.ClaimCount, g.RecordCount, restK, restN); err == nil {
				summary.FreqVsRestZ = &result.Statistic
				summary.FreqVsRestP = &result.PValue
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// SegmentSummary compares one segment of the book against the rest
type SegmentSummary struct {
	Dimension      core.Dimension `json:"dimension"`
	Group          string         `json:"group"`
	Records        int            `json:"records"`
	ClaimCount     int            `json:"claim_count"`
	PremiumSum     float64        `json:"premium_sum"`
	ClaimsSum      float64        `json:"claims_sum"`
	LossRatio      *float64       `json:"loss_ratio"`
	ClaimFrequency *float64       `json:"claim_frequency"`
	FreqVsRestZ    *float64       `json:"freq_vs_rest_z,omitempty"`
	FreqVsRestP    *float64       `json:"freq_vs_rest_p,omitempty"`
}

// VsRestRunner is the slice of the test runner segment summaries need
type VsRestRunner interface {
	TwoProportionZ(dim core.Dimension, segment string, k1, n1, k2, n2 int) (*hypothesis.TestResult, error)
}
