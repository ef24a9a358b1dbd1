// Package hypotest runs the statistical tests that validate or reject
// hypotheses about risk drivers: claim frequency, severity and margin
// differences across segments of the policy book.
package hypotest

import (
	"sort"
	"time"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	apperrors "riskbook/internal/errors"
)

// DefaultAlpha is the significance threshold stated in every result
const DefaultAlpha = 0.05

// DefaultMinGroupSize is the smallest group a test will accept. Below it the
// runner refuses to produce a p-value rather than return a misleading one.
const DefaultMinGroupSize = 30

// Runner applies the statistically appropriate test per data type:
// categorical association via chi-square, continuous comparisons via Welch's
// t-test or rank-based equivalents.
type Runner struct {
	Alpha        float64
	MinGroupSize int
}

// NewRunner creates a test runner with the given thresholds. Zero values
// fall back to the defaults.
func NewRunner(alpha float64, minGroupSize int) *Runner {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	if minGroupSize < 2 {
		minGroupSize = DefaultMinGroupSize
	}
	return &Runner{Alpha: alpha, MinGroupSize: minGroupSize}
}

// newResult stamps the shared fields of a TestResult
func (r *Runner) newResult(testName string, dim core.Dimension, metric hypothesis.Metric) *hypothesis.TestResult {
	return &hypothesis.TestResult{
		ID:         core.ResultID(core.NewID()),
		TestName:   testName,
		Dimension:  dim,
		Metric:     metric,
		Alpha:      r.Alpha,
		GroupSizes: make(map[string]int),
		Direction:  hypothesis.DirectionNone,
		RunAt:      time.Now().UTC(),
	}
}

// checkGroupSizes rejects the test when any group is below the minimum
// sample count
func (r *Runner) checkGroupSizes(sizes map[string]int) error {
	if len(sizes) < 2 {
		return apperrors.InsufficientData("hypothesis test needs at least two groups", core.ErrTooFewGroups)
	}
	for label, n := range sizes {
		if n < r.MinGroupSize {
			return apperrors.InsufficientData("group below minimum sample count",
				core.NewInsufficientDataError(label, n, r.MinGroupSize))
		}
	}
	return nil
}

// sortedLabels returns group labels in deterministic order
func sortedLabels[V any](groups map[string]V) []string {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}

// clampP keeps p-values inside [0, 1] against CDF round-off
func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
