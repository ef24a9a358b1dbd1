package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary holds descriptive statistics for one numeric column
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// Describe computes descriptive statistics over the present (non-missing)
// values of a column
func Describe(data []float64) (Summary, error) {
	s := Summary{Count: len(data)}
	if len(data) == 0 {
		return s, nil
	}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.Q25, err = stats.Percentile(data, 25); err != nil {
		return s, err
	}
	if s.Q75, err = stats.Percentile(data, 75); err != nil {
		return s, err
	}

	s.Skewness = sampleSkewness(data, s.Mean, s.StdDev)
	s.Kurtosis = sampleKurtosis(data, s.Mean, s.StdDev)
	s.Outliers = countOutliers(data, s.Q25, s.Q75)
	s.IsNormal, s.NormalP = approximateNormality(s.Skewness, s.Kurtosis, len(data))
	return s, nil
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleKurtosis computes sample kurtosis (3 is normal)
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	return sum / n
}

// countOutliers applies the 1.5*IQR fence
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr
	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}

// approximateNormality is a Jarque-Bera style test on skewness and excess
// kurtosis, referred to a chi-squared distribution with 2 degrees of
// freedom. Claim amounts fail this badly, which is the point of checking.
func approximateNormality(skewness, kurtosis float64, n int) (bool, float64) {
	if n < 8 {
		return false, 1.0
	}
	excess := kurtosis - 3
	jb := float64(n) / 6 * (skewness*skewness + excess*excess/4)
	chi2 := distuv.ChiSquared{K: 2}
	p := 1 - chi2.CDF(jb)
	if p < 0 {
		p = 0
	}
	return p > 0.05, p
}
