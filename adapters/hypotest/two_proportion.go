package hypotest

import (
	"math"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	apperrors "riskbook/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// TwoProportionZ tests H0: the claim rate of one segment equals the rate of
// the rest of the book. k1/n1 is the segment, k2/n2 the rest.
func (r *Runner) TwoProportionZ(dim core.Dimension, segment string, k1, n1, k2, n2 int) (*hypothesis.TestResult, error) {
	result := r.newResult("two_proportion_z", dim, hypothesis.MetricFrequency)
	result.GroupSizes[segment] = n1
	result.GroupSizes["rest"] = n2

	if n1 < r.MinGroupSize || n2 < r.MinGroupSize {
		small, n := segment, n1
		if n2 < n1 {
			small, n = "rest", n2
		}
		return nil, apperrors.InsufficientData("group below minimum sample count",
			core.NewInsufficientDataError(small, n, r.MinGroupSize))
	}

	p1 := float64(k1) / float64(n1)
	p2 := float64(k2) / float64(n2)
	pPool := float64(k1+k2) / float64(n1+n2)
	se := math.Sqrt(pPool * (1 - pPool) * (1/float64(n1) + 1/float64(n2)))
	if se == 0 {
		result.Statistic = 0
		result.PValue = 1
		result.Conclude("claim frequency")
		return result, nil
	}

	z := (p1 - p2) / se
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	result.Statistic = z
	result.PValue = clampP(2 * normal.Survival(math.Abs(z)))
	switch {
	case z > 0:
		result.Direction = hypothesis.DirectionHigher
	case z < 0:
		result.Direction = hypothesis.DirectionLower
	}
	result.Conclude("claim frequency")
	return result, nil
}
