package ml

import (
	"math"
	"testing"
)

func TestFitLinear_RecoversExactCoefficients(t *testing.T) {
	// y = 2 + 3x, noiseless
	x := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 2 + 3*row[0]
	}

	model, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(model.Intercept-2) > 1e-8 {
		t.Errorf("intercept = %v, want 2", model.Intercept)
	}
	if math.Abs(model.Weights[0]-3) > 1e-8 {
		t.Errorf("weight = %v, want 3", model.Weights[0])
	}
	if got := model.Predict([]float64{10}); math.Abs(got-32) > 1e-8 {
		t.Errorf("Predict(10) = %v, want 32", got)
	}
}

func TestFitLinear_TwoFeatures(t *testing.T) {
	// y = 1 + 2a - b
	x := [][]float64{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 3}, {3, 2}}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 1 + 2*row[0] - row[1]
	}

	model, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	want := []float64{2, -1}
	for j, w := range model.Weights {
		if math.Abs(w-want[j]) > 1e-8 {
			t.Errorf("weight[%d] = %v, want %v", j, w, want[j])
		}
	}

	preds := model.PredictAll(x)
	for i, p := range preds {
		if math.Abs(p-y[i]) > 1e-8 {
			t.Errorf("prediction[%d] = %v, want %v", i, p, y[i])
		}
	}
}

func TestFitLinear_RejectsUnderdeterminedSystems(t *testing.T) {
	if _, err := FitLinear(nil, nil); err == nil {
		t.Error("empty training set should fail")
	}
	// 2 rows cannot identify 3 coefficients
	x := [][]float64{{1, 2}, {3, 4}}
	if _, err := FitLinear(x, []float64{1, 2}); err == nil {
		t.Error("underdetermined fit should fail")
	}
	if _, err := FitLinear(x[:1], []float64{1, 2}); err == nil {
		t.Error("mismatched row counts should fail")
	}
}
