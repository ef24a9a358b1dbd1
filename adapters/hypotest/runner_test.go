package hypotest

import (
	"strings"
	"testing"

	"riskbook/domain/policy"
)

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(0, 0)
	if r.Alpha != DefaultAlpha {
		t.Errorf("alpha = %v, want %v", r.Alpha, DefaultAlpha)
	}
	if r.MinGroupSize != DefaultMinGroupSize {
		t.Errorf("min group size = %d, want %d", r.MinGroupSize, DefaultMinGroupSize)
	}

	r = NewRunner(0.01, 50)
	if r.Alpha != 0.01 || r.MinGroupSize != 50 {
		t.Errorf("explicit thresholds were not kept: %+v", r)
	}
}

func TestResults_StateThresholdAndConclusion(t *testing.T) {
	r := NewRunner(0.05, 30)

	counts := map[string][2]int{"A": {70, 30}, "B": {90, 10}}
	result, err := r.ChiSquareFrequency(policy.DimProvince, counts)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}

	if result.Alpha != 0.05 {
		t.Errorf("result must state its threshold, got %v", result.Alpha)
	}
	if result.Conclusion == "" {
		t.Fatal("result must carry a plain-language conclusion")
	}
	if !strings.Contains(result.Conclusion, "Reject H0") {
		t.Errorf("conclusion = %q, want an explicit H0 statement", result.Conclusion)
	}
	if !strings.Contains(result.Conclusion, string(policy.DimProvince)) {
		t.Errorf("conclusion = %q, should name the dimension", result.Conclusion)
	}
	if result.ID == "" {
		t.Error("result should carry an identifier")
	}
	if result.RunAt.IsZero() {
		t.Error("result should be timestamped")
	}
}

func TestClampP(t *testing.T) {
	if clampP(-0.001) != 0 || clampP(1.001) != 1 || clampP(0.5) != 0.5 {
		t.Error("clampP should pin values to [0, 1]")
	}
}
