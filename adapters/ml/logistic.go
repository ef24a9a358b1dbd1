package ml

import (
	"fmt"
	"math"
)

// LogisticModel is a logistic regression classifier fitted by batch
// gradient descent over standardized features.
type LogisticModel struct {
	Intercept  float64
	Weights    []float64
	featMeans  []float64
	featScales []float64
}

// FitLogistic fits by batch gradient descent. Features are standardized
// internally so one learning rate works across scales.
func FitLogistic(x [][]float64, y []float64, iterations int, learningRate float64) (*LogisticModel, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if n != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", n, len(y))
	}
	p := len(x[0])
	if iterations <= 0 {
		iterations = 500
	}
	if learningRate <= 0 {
		learningRate = 0.1
	}

	means, scales := standardization(x)
	z := standardize(x, means, scales)

	model := &LogisticModel{
		Weights:    make([]float64, p),
		featMeans:  means,
		featScales: scales,
	}

	grad := make([]float64, p)
	for iter := 0; iter < iterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0
		for i, row := range z {
			err := sigmoid(model.rawScore(row)) - y[i]
			gradB += err
			for j, v := range row {
				grad[j] += err * v
			}
		}
		model.Intercept -= learningRate * gradB / float64(n)
		for j := range model.Weights {
			model.Weights[j] -= learningRate * grad[j] / float64(n)
		}
	}
	return model, nil
}

// PredictProba returns P(claim) for one raw (unstandardized) feature row
func (m *LogisticModel) PredictProba(row []float64) float64 {
	z := make([]float64, len(row))
	for j, v := range row {
		z[j] = (v - m.featMeans[j]) / m.featScales[j]
	}
	return sigmoid(m.rawScore(z))
}

// PredictProbaAll returns probabilities for a feature matrix
func (m *LogisticModel) PredictProbaAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.PredictProba(row)
	}
	return out
}

func (m *LogisticModel) rawScore(standardizedRow []float64) float64 {
	s := m.Intercept
	for j, w := range m.Weights {
		s += w * standardizedRow[j]
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func standardization(x [][]float64) (means, scales []float64) {
	if len(x) == 0 {
		return nil, nil
	}
	p := len(x[0])
	means = make([]float64, p)
	scales = make([]float64, p)
	n := float64(len(x))

	for _, row := range x {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range x {
		for j, v := range row {
			d := v - means[j]
			scales[j] += d * d
		}
	}
	for j := range scales {
		scales[j] = math.Sqrt(scales[j] / n)
		if scales[j] == 0 {
			scales[j] = 1 // constant column, leave it centered
		}
	}
	return means, scales
}

func standardize(x [][]float64, means, scales []float64) [][]float64 {
	z := make([][]float64, len(x))
	for i, row := range x {
		zr := make([]float64, len(row))
		for j, v := range row {
			zr[j] = (v - means[j]) / scales[j]
		}
		z[i] = zr
	}
	return z
}
