package hypothesis

import (
	"fmt"
	"time"

	"riskbook/domain/core"
)

// Metric names the per-record quantity a test compares across groups
type Metric string

const (
	MetricFrequency Metric = "claim_frequency"
	MetricSeverity  Metric = "claim_severity"
	MetricMargin    Metric = "margin"
)

// Direction describes which side of the comparison sits higher
type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
	DirectionNone   Direction = "none"
)

// TestResult is the outcome of one statistical test over grouped claim data.
// Derived, never persisted as source of truth.
type TestResult struct {
	ID         core.ResultID  `json:"id"`
	RunID      core.RunID     `json:"run_id"`
	TestName   string         `json:"test_name"`
	Dimension  core.Dimension `json:"dimension"`
	Metric     Metric         `json:"metric"`
	Statistic  float64        `json:"statistic"`
	PValue     float64        `json:"p_value"`
	Alpha      float64        `json:"alpha"`
	DF         float64        `json:"degrees_freedom,omitempty"`
	GroupSizes map[string]int `json:"group_sizes"`
	Direction  Direction      `json:"direction"`
	RejectNull bool           `json:"reject_null"`
	Conclusion string         `json:"conclusion"`
	RunAt      time.Time      `json:"run_at"`
}

// Conclude fills RejectNull and the plain-language conclusion from the
// p-value and the stated significance threshold.
func (r *TestResult) Conclude(nullDescription string) {
	r.RejectNull = r.PValue < r.Alpha
	if r.RejectNull {
		r.Conclusion = fmt.Sprintf("Reject H0 at alpha=%.2g: %s differs across %s (%s, p=%.4g)",
			r.Alpha, nullDescription, r.Dimension, r.TestName, r.PValue)
	} else {
		r.Conclusion = fmt.Sprintf("Fail to reject H0 at alpha=%.2g: no evidence that %s differs across %s (%s, p=%.4g)",
			r.Alpha, nullDescription, r.Dimension, r.TestName, r.PValue)
	}
}
