package ml

import (
	"testing"
)

// separableData builds a one-feature dataset where the classes split at zero
func separableData() (x [][]float64, y []float64) {
	for _, v := range []float64{-3, -2, -1.5, -1, -0.5} {
		for i := 0; i < 10; i++ {
			x = append(x, []float64{v - float64(i)*0.01})
			y = append(y, 0)
		}
	}
	for _, v := range []float64{0.5, 1, 1.5, 2, 3} {
		for i := 0; i < 10; i++ {
			x = append(x, []float64{v + float64(i)*0.01})
			y = append(y, 1)
		}
	}
	return x, y
}

func TestFitLogistic_SeparatesClasses(t *testing.T) {
	x, y := separableData()

	model, err := FitLogistic(x, y, 2000, 0.5)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	probs := model.PredictProbaAll(x)
	for i, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability %v outside [0,1]", p)
		}
		pred := 0.0
		if p >= 0.5 {
			pred = 1
		}
		if pred != y[i] {
			t.Errorf("row %d (x=%v): p=%v misclassifies label %v", i, x[i][0], p, y[i])
		}
	}

	if AUC(probs, y) < 0.99 {
		t.Errorf("AUC = %v, want ~1 on separable data", AUC(probs, y))
	}
}

func TestFitLogistic_MonotoneInFeature(t *testing.T) {
	x, y := separableData()
	model, err := FitLogistic(x, y, 1000, 0.5)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	low := model.PredictProba([]float64{-5})
	high := model.PredictProba([]float64{5})
	if low >= high {
		t.Errorf("P(claim) should rise with the feature: P(-5)=%v, P(5)=%v", low, high)
	}
}

func TestFitLogistic_InputValidation(t *testing.T) {
	if _, err := FitLogistic(nil, nil, 100, 0.1); err == nil {
		t.Error("empty training set should fail")
	}
	if _, err := FitLogistic([][]float64{{1}}, []float64{1, 0}, 100, 0.1); err == nil {
		t.Error("mismatched row counts should fail")
	}
}
