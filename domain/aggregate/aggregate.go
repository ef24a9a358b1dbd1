package aggregate

import (
	"strings"

	"riskbook/domain/core"
)

// MissingBucket is the group label used when a record has no value for a
// grouping dimension.
const MissingBucket = "MISSING"

// Key identifies one group: the values of each grouping dimension, in
// dimension order, joined for map lookup.
type Key string

// NewKey builds a Key from ordered dimension values
func NewKey(values []string) Key {
	return Key(strings.Join(values, "\x1f"))
}

// Values splits a Key back into its ordered dimension values
func (k Key) Values() []string {
	return strings.Split(string(k), "\x1f")
}

// Label returns a human-readable form of the key
func (k Key) Label() string {
	return strings.Join(k.Values(), " / ")
}

// Group holds the summary statistics for one group of records.
// Derived, read-only, recomputed per analysis.
type Group struct {
	Key         Key      `json:"-"`
	Labels      []string `json:"labels"`
	PremiumSum  float64  `json:"premium_sum"`
	ClaimsSum   float64  `json:"claims_sum"`
	RecordCount int      `json:"record_count"`
	ClaimCount  int      `json:"claim_count"`
}

// LossRatio returns ClaimsSum/PremiumSum, or nil when the group has no
// premium. Undefined is reported as nil, never as zero or infinity.
func (g *Group) LossRatio() *float64 {
	if g.PremiumSum == 0 {
		return nil
	}
	lr := g.ClaimsSum / g.PremiumSum
	return &lr
}

// ClaimFrequency returns the fraction of records with a claim, nil for an
// empty group
func (g *Group) ClaimFrequency() *float64 {
	if g.RecordCount == 0 {
		return nil
	}
	f := float64(g.ClaimCount) / float64(g.RecordCount)
	return &f
}

// Margin returns PremiumSum - ClaimsSum
func (g *Group) Margin() float64 {
	return g.PremiumSum - g.ClaimsSum
}

// Table maps group keys to their aggregates for one grouping of the book
type Table struct {
	Dimensions []core.Dimension `json:"dimensions"`
	Groups     map[Key]*Group   `json:"-"`
}

// NewTable creates an empty table for the given dimensions
func NewTable(dims ...core.Dimension) *Table {
	return &Table{
		Dimensions: dims,
		Groups:     make(map[Key]*Group),
	}
}

// Get returns the group for a key, creating it if absent
func (t *Table) Get(key Key) *Group {
	g, ok := t.Groups[key]
	if !ok {
		g = &Group{Key: key, Labels: key.Values()}
		t.Groups[key] = g
	}
	return g
}

// Totals merges every group back into a single whole-population aggregate.
// Grouping then re-aggregating must reproduce the ungrouped totals.
func (t *Table) Totals() *Group {
	total := &Group{Key: NewKey([]string{"ALL"}), Labels: []string{"ALL"}}
	for _, g := range t.Groups {
		total.PremiumSum += g.PremiumSum
		total.ClaimsSum += g.ClaimsSum
		total.RecordCount += g.RecordCount
		total.ClaimCount += g.ClaimCount
	}
	return total
}

// SortedKeys returns group keys ordered by record count descending, then
// label, so summaries list the biggest segments first.
func (t *Table) SortedKeys() []Key {
	keys := make([]Key, 0, len(t.Groups))
	for k := range t.Groups {
		keys = append(keys, k)
	}
	// insertion sort keeps this dependency-free; tables are small
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, b := t.Groups[keys[j-1]], t.Groups[keys[j]]
			if b.RecordCount > a.RecordCount ||
				(b.RecordCount == a.RecordCount && keys[j] < keys[j-1]) {
				keys[j-1], keys[j] = keys[j], keys[j-1]
			} else {
				break
			}
		}
	}
	return keys
}

// TopN returns the n largest groups by record count
func (t *Table) TopN(n int) []*Group {
	keys := t.SortedKeys()
	if n > len(keys) {
		n = len(keys)
	}
	out := make([]*Group, 0, n)
	for _, k := range keys[:n] {
		out = append(out, t.Groups[k])
	}
	return out
}
