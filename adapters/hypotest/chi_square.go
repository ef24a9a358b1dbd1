package hypotest

import (
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareFrequency tests H0: claim frequency is the same across the levels
// of a grouping dimension. counts maps each level to [no-claim, claim]
// record counts.
func (r *Runner) ChiSquareFrequency(dim core.Dimension, counts map[string][2]int) (*hypothesis.TestResult, error) {
	result := r.newResult("chi_square", dim, hypothesis.MetricFrequency)

	labels := sortedLabels(counts)
	for _, label := range labels {
		c := counts[label]
		result.GroupSizes[label] = c[0] + c[1]
	}
	if err := r.checkGroupSizes(result.GroupSizes); err != nil {
		return nil, err
	}

	// Marginal totals of the k x 2 contingency table
	colTotals := [2]float64{}
	total := 0.0
	for _, label := range labels {
		c := counts[label]
		colTotals[0] += float64(c[0])
		colTotals[1] += float64(c[1])
		total += float64(c[0] + c[1])
	}

	chiSq := 0.0
	for _, label := range labels {
		c := counts[label]
		rowTotal := float64(c[0] + c[1])
		for j := 0; j < 2; j++ {
			expected := rowTotal * colTotals[j] / total
			if expected > 0 {
				observed := float64(c[j])
				chiSq += (observed - expected) * (observed - expected) / expected
			}
		}
	}

	df := float64(len(labels) - 1)
	dist := distuv.ChiSquared{K: df}
	result.Statistic = chiSq
	result.DF = df
	result.PValue = clampP(1 - dist.CDF(chiSq))
	result.Direction = frequencyDirection(labels, counts)
	result.Conclude("claim frequency")
	return result, nil
}

// frequencyDirection reports which of two groups claims more often; with
// more than two levels direction is not meaningful.
func frequencyDirection(labels []string, counts map[string][2]int) hypothesis.Direction {
	if len(labels) != 2 {
		return hypothesis.DirectionNone
	}
	freq := func(c [2]int) float64 {
		n := c[0] + c[1]
		if n == 0 {
			return 0
		}
		return float64(c[1]) / float64(n)
	}
	f0, f1 := freq(counts[labels[0]]), freq(counts[labels[1]])
	switch {
	case f0 > f1:
		return hypothesis.DirectionHigher
	case f0 < f1:
		return hypothesis.DirectionLower
	default:
		return hypothesis.DirectionNone
	}
}
