package api

import (
	"context"
	"time"

	"riskbook/adapters/hypotest"
	"riskbook/adapters/ingest"
	"riskbook/app"
	"riskbook/internal"
	"riskbook/internal/analysis"
	"riskbook/internal/config"
)

// BuildState loads the configured source file and computes everything the
// servers expose: profile, aggregates and the hypothesis sweep.
func BuildState(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*State, error) {
	loader := ingest.NewLoader(cfg.Data.Delimiter, logger)
	eda := app.NewEDAService(loader, logger)

	loaded, err := eda.Load(ctx, cfg.Data.FilePath)
	if err != nil {
		return nil, err
	}
	report, err := eda.Analyze(cfg.Data.FilePath, loaded, cfg.Analysis.Dimensions)
	if err != nil {
		return nil, err
	}

	runner := hypotest.NewRunner(cfg.Analysis.Alpha, cfg.Analysis.MinGroupSize)
	sweep := analysis.NewSweep(runner, cfg.Analysis.TopPostalCodes, logger)
	service := app.NewHypothesisService(sweep, nil, nil, nil, logger)

	result, runID, err := service.RunSweep(ctx, cfg.Data.FilePath, loaded, cfg.Analysis.Dimensions)
	if err != nil {
		return nil, err
	}

	return &State{
		Report:   report,
		Sweep:    result,
		RunID:    runID,
		LoadedAt: time.Now().UTC(),
	}, nil
}
