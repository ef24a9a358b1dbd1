// Package ml fits baseline predictive models over the policy book: a
// claim-amount regression and a claim-occurrence classification. Simple,
// reproducible baselines; no bespoke algorithms.
package ml

import (
	"sort"

	"riskbook/domain/policy"
	"riskbook/ports"
)

// FeatureBuilder turns policy records into a dense feature table: numeric
// columns mean-imputed, categoricals one-hot encoded with the first level
// dropped as reference.
type FeatureBuilder struct {
	MaxLevels int // cap on one-hot levels per categorical, biggest first
}

// NewFeatureBuilder creates a feature builder
func NewFeatureBuilder() *FeatureBuilder {
	return &FeatureBuilder{MaxLevels: 12}
}

type numericFeature struct {
	name  string
	value func(*policy.Record) *float64
}

type categoricalFeature struct {
	name  string
	value func(*policy.Record) string
}

func baseNumericFeatures() []numericFeature {
	return []numericFeature{
		{"SumInsured", func(r *policy.Record) *float64 { return r.SumInsured }},
		{"CustomValueEstimate", func(r *policy.Record) *float64 { return r.CustomValue }},
		{"RegistrationYear", func(r *policy.Record) *float64 { return r.RegistrationYear }},
	}
}

func baseCategoricalFeatures() []categoricalFeature {
	return []categoricalFeature{
		{"Province", func(r *policy.Record) string { return r.Province }},
		{"VehicleType", func(r *policy.Record) string { return r.VehicleType }},
		{"Gender", func(r *policy.Record) string { return r.Gender }},
		{"CoverType", func(r *policy.Record) string { return r.CoverType }},
	}
}

// ClaimAmountTable builds the regression table: target is TotalClaims.
// Records with a missing claim amount are dropped from the target.
func (b *FeatureBuilder) ClaimAmountTable(records []*policy.Record) *ports.FeatureTable {
	kept := make([]*policy.Record, 0, len(records))
	for _, r := range records {
		if r.TotalClaims != nil {
			kept = append(kept, r)
		}
	}
	table := b.encode(kept)
	table.Target = "TotalClaims"
	table.Y = make([]float64, len(kept))
	for i, r := range kept {
		table.Y[i] = *r.TotalClaims
	}
	return table
}

// ClaimOccurrenceTable builds the classification table: target is 1 when a
// claim occurred, 0 otherwise.
func (b *FeatureBuilder) ClaimOccurrenceTable(records []*policy.Record) *ports.FeatureTable {
	table := b.encode(records)
	table.Target = "ClaimOccurred"
	table.Y = make([]float64, len(records))
	for i, r := range records {
		if r.ClaimOccurred() {
			table.Y[i] = 1
		}
	}
	return table
}

// encode builds the feature matrix without a target
func (b *FeatureBuilder) encode(records []*policy.Record) *ports.FeatureTable {
	numerics := baseNumericFeatures()
	categoricals := baseCategoricalFeatures()

	// Mean imputation for missing numerics
	means := make([]float64, len(numerics))
	for j, nf := range numerics {
		sum, count := 0.0, 0
		for _, r := range records {
			if v := nf.value(r); v != nil {
				sum += *v
				count++
			}
		}
		if count > 0 {
			means[j] = sum / float64(count)
		}
	}

	// One-hot levels per categorical: biggest levels first, first level is
	// the dropped reference
	type encoding struct {
		feature categoricalFeature
		levels  []string // levels that become columns (reference excluded)
	}
	encodings := make([]encoding, 0, len(categoricals))
	for _, cf := range categoricals {
		counts := make(map[string]int)
		for _, r := range records {
			if v := cf.value(r); v != "" {
				counts[v]++
			}
		}
		levels := make([]string, 0, len(counts))
		for l := range counts {
			levels = append(levels, l)
		}
		sort.Slice(levels, func(a, b int) bool {
			if counts[levels[a]] != counts[levels[b]] {
				return counts[levels[a]] > counts[levels[b]]
			}
			return levels[a] < levels[b]
		})
		if len(levels) > b.MaxLevels {
			levels = levels[:b.MaxLevels]
		}
		if len(levels) > 1 {
			encodings = append(encodings, encoding{feature: cf, levels: levels[1:]})
		}
	}

	names := make([]string, 0)
	for _, nf := range numerics {
		names = append(names, nf.name)
	}
	for _, enc := range encodings {
		for _, level := range enc.levels {
			names = append(names, enc.feature.name+"="+level)
		}
	}

	x := make([][]float64, len(records))
	for i, r := range records {
		row := make([]float64, 0, len(names))
		for j, nf := range numerics {
			if v := nf.value(r); v != nil {
				row = append(row, *v)
			} else {
				row = append(row, means[j])
			}
		}
		for _, enc := range encodings {
			v := enc.feature.value(r)
			for _, level := range enc.levels {
				if v == level {
					row = append(row, 1)
				} else {
					row = append(row, 0)
				}
			}
		}
		x[i] = row
	}

	return &ports.FeatureTable{FeatureNames: names, X: x}
}
