package hypotest

import (
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"

	"gonum.org/v1/gonum/stat/distuv"
)

// KruskalWallis tests H0: the metric has the same distribution across k
// groups. Non-parametric; the H statistic is tie-corrected and referred to a
// chi-squared distribution with k-1 degrees of freedom.
func (r *Runner) KruskalWallis(dim core.Dimension, metric hypothesis.Metric, groups map[string][]float64) (*hypothesis.TestResult, error) {
	result := r.newResult("kruskal_wallis", dim, metric)

	labels := sortedLabels(groups)
	total := 0
	for _, label := range labels {
		result.GroupSizes[label] = len(groups[label])
		total += len(groups[label])
	}
	if err := r.checkGroupSizes(result.GroupSizes); err != nil {
		return nil, err
	}

	combined := make([]float64, 0, total)
	bounds := make([][2]int, len(labels)) // [start, end) per group in combined order
	for i, label := range labels {
		start := len(combined)
		combined = append(combined, groups[label]...)
		bounds[i] = [2]int{start, len(combined)}
	}
	ranks, tieTerm := rankAll(combined)

	n := float64(total)
	h := 0.0
	for i := range labels {
		rankSum := 0.0
		for j := bounds[i][0]; j < bounds[i][1]; j++ {
			rankSum += ranks[j]
		}
		ni := float64(bounds[i][1] - bounds[i][0])
		h += rankSum * rankSum / ni
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	// tie correction
	if correction := 1 - tieTerm/(n*n*n-n); correction > 0 {
		h /= correction
	}

	df := float64(len(labels) - 1)
	dist := distuv.ChiSquared{K: df}
	result.Statistic = h
	result.DF = df
	result.PValue = clampP(1 - dist.CDF(h))
	result.Conclude(string(metric))
	return result, nil
}
