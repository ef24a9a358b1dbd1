package analysis

import (
	"context"
	"sync"

	"riskbook/adapters/hypotest"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
	"riskbook/internal"

	"golang.org/x/sync/errgroup"
)

// SkippedTest records a test the sweep could not run, typically because a
// group fell below the minimum sample count
type SkippedTest struct {
	Dimension core.Dimension    `json:"dimension"`
	Metric    hypothesis.Metric `json:"metric"`
	Reason    string            `json:"reason"`
}

// SweepResult is the outcome of running the test battery across dimensions
type SweepResult struct {
	Results []*hypothesis.TestResult `json:"results"`
	Skipped []SkippedTest            `json:"skipped"`
}

// Sweep runs the frequency/severity/margin test battery across grouping
// dimensions. Tests are independent, so dimensions fan out concurrently.
type Sweep struct {
	runner         *hypotest.Runner
	logger         *internal.Logger
	topPostalCodes int
}

// NewSweep creates a sweep over the given runner. topPostalCodes limits
// postal-code tests to the n biggest codes; 0 disables the limit.
func NewSweep(runner *hypotest.Runner, topPostalCodes int, logger *internal.Logger) *Sweep {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Sweep{runner: runner, logger: logger, topPostalCodes: topPostalCodes}
}

// Run executes the battery for every dimension and collects results.
// Insufficient data is fatal per-test, not per-sweep: the test is reported
// as skipped with its reason and the sweep continues.
func (s *Sweep) Run(ctx context.Context, records []*policy.Record, dims []core.Dimension) (*SweepResult, error) {
	out := &SweepResult{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, dim := range dims {
		dim := dim
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results, skipped := s.runDimension(records, dim)
			mu.Lock()
			out.Results = append(out.Results, results...)
			out.Skipped = append(out.Skipped, skipped...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// runDimension runs the battery for one dimension
func (s *Sweep) runDimension(records []*policy.Record, dim core.Dimension) ([]*hypothesis.TestResult, []SkippedTest) {
	scoped := records
	if dim == policy.DimPostalCode && s.topPostalCodes > 0 {
		scoped = FilterTopGroups(records, dim, s.topPostalCodes)
	}

	var results []*hypothesis.TestResult
	var skipped []SkippedTest

	collect := func(metric hypothesis.Metric, result *hypothesis.TestResult, err error) {
		if err != nil {
			s.logger.Info("skipping %s/%s: %v", dim, metric, err)
			skipped = append(skipped, SkippedTest{Dimension: dim, Metric: metric, Reason: err.Error()})
			return
		}
		results = append(results, result)
	}

	// Claim frequency: categorical association
	counts := OccurrenceCounts(scoped, dim)
	result, err := s.runner.ChiSquareFrequency(dim, counts)
	collect(hypothesis.MetricFrequency, result, err)

	// Claim severity: continuous, conditional on occurrence
	severities := GroupedSamples(scoped, dim, (*policy.Record).ClaimSeverity)
	result, err = s.continuousTest(dim, hypothesis.MetricSeverity, severities)
	collect(hypothesis.MetricSeverity, result, err)

	// Margin: continuous over the whole segment
	margins := GroupedSamples(scoped, dim, (*policy.Record).Margin)
	result, err = s.continuousTest(dim, hypothesis.MetricMargin, margins)
	collect(hypothesis.MetricMargin, result, err)

	return results, skipped
}

// continuousTest picks Mann-Whitney for exactly two groups and
// Kruskal-Wallis otherwise. Rank-based tests suit the heavy-tailed claim
// amounts better than mean comparisons.
func (s *Sweep) continuousTest(dim core.Dimension, metric hypothesis.Metric, groups map[string][]float64) (*hypothesis.TestResult, error) {
	if len(groups) == 2 {
		return s.runner.MannWhitneyU(dim, metric, groups)
	}
	return s.runner.KruskalWallis(dim, metric, groups)
}
