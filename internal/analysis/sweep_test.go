package analysis

import (
	"context"
	"testing"

	"riskbook/adapters/hypotest"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
	"riskbook/internal/testkit"
)

func TestSweep_FindsSeededProvinceEffect(t *testing.T) {
	cfg := testkit.DefaultBookConfig()
	cfg.Records = 4000
	records := testkit.GenerateBook(cfg)

	sweep := NewSweep(hypotest.NewRunner(0.05, 30), 0, nil)
	result, err := sweep.Run(context.Background(), records,
		[]core.Dimension{policy.DimProvince, policy.DimGender})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	var provinceFreq *hypothesis.TestResult
	for _, r := range result.Results {
		if r.PValue < 0 || r.PValue > 1 {
			t.Errorf("%s/%s: p = %v outside [0,1]", r.Dimension, r.Metric, r.PValue)
		}
		if r.Conclusion == "" {
			t.Errorf("%s/%s: missing conclusion", r.Dimension, r.Metric)
		}
		if r.Dimension == policy.DimProvince && r.Metric == hypothesis.MetricFrequency {
			provinceFreq = r
		}
	}

	if provinceFreq == nil {
		t.Fatal("sweep should have produced a province frequency test")
	}
	// The generator seeds a strong uplift in one province
	if !provinceFreq.RejectNull {
		t.Errorf("seeded province effect was missed, p = %v", provinceFreq.PValue)
	}
	if provinceFreq.TestName != "chi_square" {
		t.Errorf("frequency differences should use chi-square, got %s", provinceFreq.TestName)
	}
}

func TestSweep_SkipsInsufficientDataPerTest(t *testing.T) {
	cfg := testkit.DefaultBookConfig()
	cfg.Records = 40 // ~8 records per province, below any minimum
	records := testkit.GenerateBook(cfg)

	sweep := NewSweep(hypotest.NewRunner(0.05, 30), 0, nil)
	result, err := sweep.Run(context.Background(), records, []core.Dimension{policy.DimProvince})
	if err != nil {
		t.Fatalf("insufficient data must not fail the sweep: %v", err)
	}
	if len(result.Results) != 0 {
		t.Errorf("got %d results on an undersized book, want 0", len(result.Results))
	}
	if len(result.Skipped) != 3 {
		t.Fatalf("got %d skipped tests, want 3 (frequency, severity, margin)", len(result.Skipped))
	}
	for _, s := range result.Skipped {
		if s.Reason == "" {
			t.Errorf("%s/%s skipped without a reason", s.Dimension, s.Metric)
		}
	}
}

func TestSweep_PostalCodeTopNScoping(t *testing.T) {
	cfg := testkit.DefaultBookConfig()
	cfg.Records = 4000
	records := testkit.GenerateBook(cfg)

	// Scoping to the biggest codes must not error even with a long tail
	sweep := NewSweep(hypotest.NewRunner(0.05, 30), 10, nil)
	result, err := sweep.Run(context.Background(), records, []core.Dimension{policy.DimPostalCode})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	for _, r := range result.Results {
		if len(r.GroupSizes) > 10 {
			t.Errorf("%s: %d groups survived a top-10 scope", r.Metric, len(r.GroupSizes))
		}
	}
}

func TestSweep_ContextCancellation(t *testing.T) {
	records := testkit.GenerateBook(testkit.DefaultBookConfig())
	sweep := NewSweep(hypotest.NewRunner(0.05, 30), 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sweep.Run(ctx, records, []core.Dimension{policy.DimProvince}); err == nil {
		t.Error("cancelled context should abort the sweep")
	}
}
