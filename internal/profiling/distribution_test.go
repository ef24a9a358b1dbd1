package profiling

import (
	"math"
	"testing"
)

func TestDescribe_KnownSample(t *testing.T) {
	// 1..9 plus one extreme value
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}

	s, err := Describe(data)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if s.Count != 10 {
		t.Errorf("count = %d, want 10", s.Count)
	}
	if s.Mean != 14.5 {
		t.Errorf("mean = %v, want 14.5", s.Mean)
	}
	if s.Min != 1 || s.Max != 100 {
		t.Errorf("range = [%v, %v], want [1, 100]", s.Min, s.Max)
	}
	if s.Median != 5.5 {
		t.Errorf("median = %v, want 5.5", s.Median)
	}
	if s.Q25 != 2.5 || s.Q75 != 7.5 {
		t.Errorf("quartiles = [%v, %v], want [2.5, 7.5]", s.Q25, s.Q75)
	}
	// 100 sits far above the 1.5*IQR fence
	if s.Outliers != 1 {
		t.Errorf("outliers = %d, want 1", s.Outliers)
	}
	if s.Skewness <= 0 {
		t.Errorf("skewness = %v, want positive for this right tail", s.Skewness)
	}
}

func TestDescribe_EmptyColumn(t *testing.T) {
	s, err := Describe(nil)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if s.Count != 0 {
		t.Errorf("count = %d, want 0", s.Count)
	}
}

func TestDescribe_HeavyTailFailsNormality(t *testing.T) {
	// Claim-amount shape: mostly zeros, a few large values
	data := make([]float64, 200)
	for i := 180; i < 200; i++ {
		data[i] = float64(i) * 500
	}

	s, err := Describe(data)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if s.IsNormal {
		t.Errorf("heavy-tailed sample passed the normality check, p = %v", s.NormalP)
	}
	if s.NormalP < 0 || s.NormalP > 1 {
		t.Errorf("normality p = %v outside [0,1]", s.NormalP)
	}
	if math.IsNaN(s.Skewness) || math.IsNaN(s.Kurtosis) {
		t.Error("shape statistics should be finite")
	}
}

func TestDescribe_ConstantColumn(t *testing.T) {
	data := []float64{5, 5, 5, 5, 5, 5, 5, 5}

	s, err := Describe(data)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if s.StdDev != 0 {
		t.Errorf("stddev = %v, want 0", s.StdDev)
	}
	if s.Skewness != 0 || s.Kurtosis != 0 {
		t.Error("zero-variance shape statistics should be zero")
	}
	if s.Outliers != 0 {
		t.Errorf("outliers = %d, want 0", s.Outliers)
	}
}
