package hypotest

import (
	"math"
	"testing"

	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
)

func TestTwoProportionZ_SegmentClaimsMore(t *testing.T) {
	r := NewRunner(0.05, 30)

	// 30% vs 10% on 100 each: pooled z is ~3.54
	result, err := r.TwoProportionZ(policy.DimProvince, "Gauteng", 30, 100, 10, 100)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}
	if math.Abs(result.Statistic-3.5355) > 0.001 {
		t.Errorf("z = %v, want ~3.5355", result.Statistic)
	}
	if !result.RejectNull {
		t.Errorf("H0 should be rejected, p = %v", result.PValue)
	}
	if result.Direction != hypothesis.DirectionHigher {
		t.Errorf("direction = %s, want higher", result.Direction)
	}
	if result.GroupSizes["Gauteng"] != 100 || result.GroupSizes["rest"] != 100 {
		t.Errorf("group sizes = %v", result.GroupSizes)
	}
}

func TestTwoProportionZ_NoClaimsAnywhere(t *testing.T) {
	r := NewRunner(0.05, 30)

	result, err := r.TwoProportionZ(policy.DimProvince, "Gauteng", 0, 100, 0, 100)
	if err != nil {
		t.Fatalf("test failed to run: %v", err)
	}
	if result.PValue != 1 || result.RejectNull {
		t.Errorf("degenerate pooled rate: p = %v, want 1", result.PValue)
	}
}

func TestTwoProportionZ_RefusesSmallSegment(t *testing.T) {
	r := NewRunner(0.05, 30)

	_, err := r.TwoProportionZ(policy.DimProvince, "Gauteng", 3, 10, 50, 500)
	if !core.IsInsufficientData(err) {
		t.Errorf("got %v, want an insufficient data error", err)
	}
}
