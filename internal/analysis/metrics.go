package analysis

import (
	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/policy"
)

// Aggregator is the metric engine: it folds policy records into grouped
// KPI tables. Missing financials contribute nothing to sums but the record
// is still counted; missing dimension values bucket under MISSING.
type Aggregator struct{}

// NewAggregator creates a metric engine
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// GroupBy aggregates records by zero or more dimensions. With no dimensions
// the table holds the single whole-population group.
func (a *Aggregator) GroupBy(records []*policy.Record, dims ...core.Dimension) *aggregate.Table {
	table := aggregate.NewTable(dims...)

	for _, r := range records {
		key := groupKey(r, dims)
		g := table.Get(key)
		g.RecordCount++
		if r.TotalPremium != nil {
			g.PremiumSum += *r.TotalPremium
		}
		if r.TotalClaims != nil {
			g.ClaimsSum += *r.TotalClaims
		}
		if r.ClaimOccurred() {
			g.ClaimCount++
		}
	}
	return table
}

// Overall aggregates the whole book into a single group
func (a *Aggregator) Overall(records []*policy.Record) *aggregate.Group {
	return a.GroupBy(records).Totals()
}

func groupKey(r *policy.Record, dims []core.Dimension) aggregate.Key {
	if len(dims) == 0 {
		return aggregate.NewKey([]string{"ALL"})
	}
	values := make([]string, len(dims))
	for i, dim := range dims {
		v := r.DimensionValue(dim)
		if v == "" {
			v = aggregate.MissingBucket
		}
		values[i] = v
	}
	return aggregate.NewKey(values)
}

// GroupedSamples extracts per-group sample slices of a per-record metric,
// for the hypothesis test runner. Records where the metric is undefined
// (e.g. severity without occurrence) are skipped.
func GroupedSamples(records []*policy.Record, dim core.Dimension, metric func(*policy.Record) *float64) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, r := range records {
		v := metric(r)
		if v == nil {
			continue
		}
		label := r.DimensionValue(dim)
		if label == "" {
			label = aggregate.MissingBucket
		}
		groups[label] = append(groups[label], *v)
	}
	return groups
}

// OccurrenceCounts builds a group -> [no-claim, claim] contingency table for
// claim frequency tests
func OccurrenceCounts(records []*policy.Record, dim core.Dimension) map[string][2]int {
	counts := make(map[string][2]int)
	for _, r := range records {
		label := r.DimensionValue(dim)
		if label == "" {
			label = aggregate.MissingBucket
		}
		c := counts[label]
		if r.ClaimOccurred() {
			c[1]++
		} else {
			c[0]++
		}
		counts[label] = c
	}
	return counts
}

// FilterTopGroups keeps only records whose dimension value is among the n
// most frequent levels. Keeps postal-code tests meaningful on a long tail.
func FilterTopGroups(records []*policy.Record, dim core.Dimension, n int) []*policy.Record {
	counts := make(map[string]int)
	for _, r := range records {
		if v := r.DimensionValue(dim); v != "" {
			counts[v]++
		}
	}
	type lc struct {
		label string
		count int
	}
	levels := make([]lc, 0, len(counts))
	for label, count := range counts {
		levels = append(levels, lc{label, count})
	}
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j].count > levels[j-1].count; j-- {
			levels[j-1], levels[j] = levels[j], levels[j-1]
		}
	}
	if n > len(levels) {
		n = len(levels)
	}
	top := make(map[string]bool, n)
	for _, l := range levels[:n] {
		top[l.label] = true
	}

	kept := make([]*policy.Record, 0, len(records))
	for _, r := range records {
		if top[r.DimensionValue(dim)] {
			kept = append(kept, r)
		}
	}
	return kept
}
