// Package profiling assesses the quality of a loaded policy book: missing
// value counts, descriptive statistics for the financial columns, and
// distribution shape.
package profiling

import (
	"riskbook/domain/policy"
)

// ColumnProfile describes one column of the loaded book
type ColumnProfile struct {
	Column       string   `json:"column"`
	MissingCount int      `json:"missing_count"`
	MissingRate  float64  `json:"missing_rate"`
	UniqueCount  int      `json:"unique_count,omitempty"`
	Summary      *Summary `json:"summary,omitempty"`
}

// BookProfile is the data-quality report for a loaded book
type BookProfile struct {
	RecordCount int             `json:"record_count"`
	Columns     []ColumnProfile `json:"columns"`
}

// Profiler computes data-quality profiles over loaded records
type Profiler struct{}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile assesses the loaded book: per-column missingness, descriptive
// statistics for numeric columns and cardinality for categoricals.
func (p *Profiler) Profile(records []*policy.Record) (*BookProfile, error) {
	profile := &BookProfile{RecordCount: len(records)}

	numeric := []struct {
		column string
		value  func(*policy.Record) *float64
	}{
		{policy.ColTotalPremium, func(r *policy.Record) *float64 { return r.TotalPremium }},
		{policy.ColTotalClaims, func(r *policy.Record) *float64 { return r.TotalClaims }},
		{policy.ColSumInsured, func(r *policy.Record) *float64 { return r.SumInsured }},
		{policy.ColCustomValueEstimate, func(r *policy.Record) *float64 { return r.CustomValue }},
		{policy.ColRegistrationYear, func(r *policy.Record) *float64 { return r.RegistrationYear }},
	}
	for _, col := range numeric {
		values := make([]float64, 0, len(records))
		missing := 0
		for _, r := range records {
			if v := col.value(r); v != nil {
				values = append(values, *v)
			} else {
				missing++
			}
		}
		cp := ColumnProfile{
			Column:       col.column,
			MissingCount: missing,
			MissingRate:  rate(missing, len(records)),
		}
		if len(values) > 0 {
			summary, err := Describe(values)
			if err != nil {
				return nil, err
			}
			cp.Summary = &summary
		}
		profile.Columns = append(profile.Columns, cp)
	}

	categorical := []struct {
		column string
		value  func(*policy.Record) string
	}{
		{policy.ColProvince, func(r *policy.Record) string { return r.Province }},
		{policy.ColPostalCode, func(r *policy.Record) string { return r.PostalCode }},
		{policy.ColGender, func(r *policy.Record) string { return r.Gender }},
		{policy.ColVehicleType, func(r *policy.Record) string { return r.VehicleType }},
		{policy.ColMake, func(r *policy.Record) string { return r.Make }},
		{policy.ColCoverType, func(r *policy.Record) string { return r.CoverType }},
	}
	for _, col := range categorical {
		seen := make(map[string]bool)
		missing := 0
		for _, r := range records {
			v := col.value(r)
			if v == "" {
				missing++
				continue
			}
			seen[v] = true
		}
		profile.Columns = append(profile.Columns, ColumnProfile{
			Column:       col.column,
			MissingCount: missing,
			MissingRate:  rate(missing, len(records)),
			UniqueCount:  len(seen),
		})
	}

	// TransactionMonth missingness (already window-validated at load)
	missing := 0
	for _, r := range records {
		if r.TransactionMonth == nil {
			missing++
		}
	}
	profile.Columns = append(profile.Columns, ColumnProfile{
		Column:       policy.ColTransactionMonth,
		MissingCount: missing,
		MissingRate:  rate(missing, len(records)),
	})

	return profile, nil
}

func rate(missing, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(missing) / float64(total)
}
