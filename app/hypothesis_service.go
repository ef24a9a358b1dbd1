package app

import (
	"context"
	"time"

	"riskbook/domain/core"
	"riskbook/internal"
	"riskbook/internal/analysis"
	apperrors "riskbook/internal/errors"
	"riskbook/ports"
)

// HypothesisService runs the test battery over a loaded book and, when a
// database is configured, records the run for later comparison.
type HypothesisService struct {
	sweep      *analysis.Sweep
	aggregator *analysis.Aggregator
	runs       ports.RunRepository       // nil when persistence is disabled
	results    ports.ResultRepository    // nil when persistence is disabled
	aggregates ports.AggregateRepository // nil when persistence is disabled
	logger     *internal.Logger
}

// NewHypothesisService creates the service. Repositories may be nil; the
// sweep then runs without persistence.
func NewHypothesisService(sweep *analysis.Sweep, runs ports.RunRepository, results ports.ResultRepository, aggregates ports.AggregateRepository, logger *internal.Logger) *HypothesisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HypothesisService{
		sweep:      sweep,
		aggregator: analysis.NewAggregator(),
		runs:       runs,
		results:    results,
		aggregates: aggregates,
		logger:     logger,
	}
}

// RunSweep executes the battery across dimensions and persists the outcome
// when repositories are configured
func (s *HypothesisService) RunSweep(ctx context.Context, sourceFile string, loaded *ports.LoadResult, dims []core.Dimension) (*analysis.SweepResult, core.RunID, error) {
	runID := core.RunID(core.NewID())
	startedAt := time.Now().UTC()

	result, err := s.sweep.Run(ctx, loaded.Records, dims)
	if err != nil {
		return nil, runID, err
	}
	for _, r := range result.Results {
		r.RunID = runID
	}

	if s.runs != nil {
		if err := s.persist(ctx, runID, sourceFile, loaded, dims, result, startedAt); err != nil {
			return nil, runID, apperrors.Wrap(err, "failed to persist analysis run")
		}
	}
	return result, runID, nil
}

func (s *HypothesisService) persist(ctx context.Context, runID core.RunID, sourceFile string, loaded *ports.LoadResult, dims []core.Dimension, result *analysis.SweepResult, startedAt time.Time) error {
	overall := s.aggregator.Overall(loaded.Records)
	run := &ports.AnalysisRun{
		ID:           runID,
		SourceFile:   sourceFile,
		RecordCount:  len(loaded.Records),
		WarningCount: len(loaded.Warnings),
		PremiumSum:   overall.PremiumSum,
		ClaimsSum:    overall.ClaimsSum,
		StartedAt:    startedAt,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return err
	}
	if s.results != nil {
		if err := s.results.SaveResults(ctx, runID, result.Results); err != nil {
			return err
		}
	}
	if s.aggregates != nil {
		for _, dim := range dims {
			table := s.aggregator.GroupBy(loaded.Records, dim)
			if err := s.aggregates.SaveTable(ctx, runID, table); err != nil {
				return err
			}
		}
	}
	if err := s.runs.Complete(ctx, runID, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.Info("persisted analysis run %s (%d results, %d skipped)",
		runID, len(result.Results), len(result.Skipped))
	return nil
}
