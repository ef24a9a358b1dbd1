package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearModel is an ordinary least squares fit: intercept plus one weight
// per feature column.
type LinearModel struct {
	Intercept float64
	Weights   []float64
}

// FitLinear solves the least squares problem via QR decomposition on the
// design matrix with a prepended intercept column.
func FitLinear(x [][]float64, y []float64) (*LinearModel, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if n != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", n, len(y))
	}
	p := len(x[0]) + 1 // +1 intercept
	if n < p {
		return nil, fmt.Errorf("need at least %d rows to fit %d coefficients", p, p)
	}

	design := mat.NewDense(n, p, nil)
	for i, row := range x {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, target); err != nil {
		return nil, fmt.Errorf("least squares solve failed: %w", err)
	}

	model := &LinearModel{
		Intercept: beta.AtVec(0),
		Weights:   make([]float64, p-1),
	}
	for j := 1; j < p; j++ {
		model.Weights[j-1] = beta.AtVec(j)
	}
	return model, nil
}

// Predict returns the fitted value for one feature row
func (m *LinearModel) Predict(row []float64) float64 {
	v := m.Intercept
	for j, w := range m.Weights {
		v += w * row[j]
	}
	return v
}

// PredictAll returns fitted values for a feature matrix
func (m *LinearModel) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}
