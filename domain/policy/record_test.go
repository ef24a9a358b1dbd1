package policy

import (
	"testing"
	"time"
)

func TestRecord_DerivedMetrics(t *testing.T) {
	withClaim := &Record{TotalPremium: Float(100), TotalClaims: Float(250)}
	if !withClaim.ClaimOccurred() {
		t.Error("positive claim amount should count as occurrence")
	}
	if sev := withClaim.ClaimSeverity(); sev == nil || *sev != 250 {
		t.Errorf("severity = %v, want 250", sev)
	}
	if m := withClaim.Margin(); m == nil || *m != -150 {
		t.Errorf("margin = %v, want -150", m)
	}

	zeroClaim := &Record{TotalPremium: Float(100), TotalClaims: Float(0)}
	if zeroClaim.ClaimOccurred() {
		t.Error("zero claims is not an occurrence")
	}
	if zeroClaim.ClaimSeverity() != nil {
		t.Error("severity is conditional on occurrence")
	}

	missing := &Record{TotalPremium: Float(100)}
	if missing.Margin() != nil {
		t.Error("margin is undefined when claims are missing")
	}
	if missing.Claims() != 0 {
		t.Error("Claims() treats missing as zero")
	}
}

func TestInObservationWindow(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  bool
	}{
		{2014, time.January, false},
		{2014, time.February, true},
		{2015, time.August, true},
		{2015, time.September, false},
	}
	for _, tt := range tests {
		d := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
		if got := InObservationWindow(d); got != tt.want {
			t.Errorf("InObservationWindow(%d-%02d) = %v, want %v", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestRecord_DimensionValue(t *testing.T) {
	r := &Record{Province: "Gauteng", Gender: "Female", CoverType: "Own Damage"}
	if r.DimensionValue(DimProvince) != "Gauteng" {
		t.Error("province lookup failed")
	}
	if r.DimensionValue(DimGender) != "Female" {
		t.Error("gender lookup failed")
	}
	if r.DimensionValue(DimMake) != "" {
		t.Error("unset dimension should be empty")
	}
	if r.DimensionValue("NotADimension") != "" {
		t.Error("unknown dimension should be empty")
	}
}
