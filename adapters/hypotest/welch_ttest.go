package hypotest

import (
	"fmt"
	"math"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	apperrors "riskbook/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest tests H0: the metric has equal means in two groups, without
// assuming equal variances.
func (r *Runner) WelchTTest(dim core.Dimension, metric hypothesis.Metric, groups map[string][]float64) (*hypothesis.TestResult, error) {
	result := r.newResult("welch_ttest", dim, metric)

	labels := sortedLabels(groups)
	if len(labels) != 2 {
		return nil, apperrors.InsufficientData(
			fmt.Sprintf("welch t-test needs exactly two groups, got %d", len(labels)),
			core.ErrTooFewGroups)
	}
	for _, label := range labels {
		result.GroupSizes[label] = len(groups[label])
	}
	if err := r.checkGroupSizes(result.GroupSizes); err != nil {
		return nil, err
	}

	g1, g2 := groups[labels[0]], groups[labels[1]]
	n1, n2 := float64(len(g1)), float64(len(g2))
	mean1, mean2 := mean(g1), mean(g2)
	var1, var2 := variance(g1), variance(g2)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		// No variance at all: identical constant groups
		result.Statistic = 0
		result.PValue = 1
		result.Conclude(string(metric))
		return result, nil
	}
	tStat := (mean1 - mean2) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	result.Statistic = tStat
	result.DF = df
	result.PValue = clampP(2 * (1 - dist.CDF(math.Abs(tStat))))
	switch {
	case tStat > 0:
		result.Direction = hypothesis.DirectionHigher
	case tStat < 0:
		result.Direction = hypothesis.DirectionLower
	}
	result.Conclude(string(metric))
	return result, nil
}
