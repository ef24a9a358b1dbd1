package ml

import (
	"math/rand"

	"riskbook/ports"
)

// trainTestSplit shuffles with a fixed seed and holds out testFraction of
// the rows. Deterministic for a given seed so runs are reproducible.
func trainTestSplit(table *ports.FeatureTable, testFraction float64, seed int64) (train, test *ports.FeatureTable) {
	n := len(table.X)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testSize := int(float64(n) * testFraction)
	if testSize < 1 && n > 1 {
		testSize = 1
	}

	build := func(idx []int) *ports.FeatureTable {
		t := &ports.FeatureTable{
			FeatureNames: table.FeatureNames,
			Target:       table.Target,
			X:            make([][]float64, len(idx)),
			Y:            make([]float64, len(idx)),
		}
		for i, j := range idx {
			t.X[i] = table.X[j]
			t.Y[i] = table.Y[j]
		}
		return t
	}

	return build(perm[testSize:]), build(perm[:testSize])
}
