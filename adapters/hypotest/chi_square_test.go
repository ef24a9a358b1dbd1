package hypotest

import (
	"math"
	"testing"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
	apperrors "riskbook/internal/errors"
)

func TestChiSquareFrequency_DetectsDifference(t *testing.T) {
	r := NewRunner(0.05, 30)

	// A claims at 30%, B at 10%; chi-square for this 2x2 table is 12.5
	counts := map[string][2]int{
		"A": {70, 30},
		"B": {90, 10},
	}
	result, err := r.ChiSquareFrequency(policy.DimProvince, counts)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}

	if math.Abs(result.Statistic-12.5) > 1e-9 {
		t.Errorf("chi-square = %v, want 12.5", result.Statistic)
	}
	if result.DF != 1 {
		t.Errorf("df = %v, want 1", result.DF)
	}
	if result.PValue >= 0.001 {
		t.Errorf("p = %v, want well below 0.001", result.PValue)
	}
	if !result.RejectNull {
		t.Error("H0 should be rejected")
	}
	if result.Direction != hypothesis.DirectionHigher {
		t.Errorf("direction = %s, want higher (A claims more often)", result.Direction)
	}
	if result.GroupSizes["A"] != 100 || result.GroupSizes["B"] != 100 {
		t.Errorf("group sizes = %v", result.GroupSizes)
	}
}

func TestChiSquareFrequency_NoDifference(t *testing.T) {
	r := NewRunner(0.05, 30)

	counts := map[string][2]int{
		"A": {50, 50},
		"B": {50, 50},
	}
	result, err := r.ChiSquareFrequency(policy.DimProvince, counts)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}
	if result.Statistic != 0 {
		t.Errorf("chi-square = %v, want 0 for identical groups", result.Statistic)
	}
	if result.RejectNull {
		t.Errorf("H0 rejected with p = %v on identical groups", result.PValue)
	}
	if result.Direction != hypothesis.DirectionNone {
		t.Errorf("direction = %s, want none", result.Direction)
	}
}

func TestChiSquareFrequency_MultiGroupHasNoDirection(t *testing.T) {
	r := NewRunner(0.05, 30)

	counts := map[string][2]int{
		"A": {70, 30},
		"B": {90, 10},
		"C": {80, 20},
	}
	result, err := r.ChiSquareFrequency(policy.DimProvince, counts)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}
	if result.DF != 2 {
		t.Errorf("df = %v, want 2", result.DF)
	}
	if result.Direction != hypothesis.DirectionNone {
		t.Error("direction is only meaningful for two groups")
	}
}

func TestChiSquareFrequency_RefusesSmallGroups(t *testing.T) {
	r := NewRunner(0.05, 30)

	counts := map[string][2]int{
		"A": {70, 30},
		"B": {8, 2}, // n=10, below minimum
	}
	_, err := r.ChiSquareFrequency(policy.DimProvince, counts)
	if err == nil {
		t.Fatal("expected a refusal for an undersized group")
	}
	if !core.IsInsufficientData(err) {
		t.Errorf("got %v, want an insufficient data error", err)
	}
	if apperrors.GetCode(err) != apperrors.CodeInsufficientData {
		t.Errorf("code = %s, want INSUFFICIENT_DATA", apperrors.GetCode(err))
	}
}

func TestChiSquareFrequency_RefusesSingleGroup(t *testing.T) {
	r := NewRunner(0.05, 30)

	_, err := r.ChiSquareFrequency(policy.DimProvince, map[string][2]int{"A": {70, 30}})
	if !core.IsInsufficientData(err) {
		t.Errorf("got %v, want an insufficient data error", err)
	}
}
