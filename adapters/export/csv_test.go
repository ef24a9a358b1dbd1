package export

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"riskbook/domain/aggregate"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *aggregate.Table {
	table := aggregate.NewTable(policy.DimProvince)
	g := table.Get(aggregate.NewKey([]string{"Gauteng"}))
	g.PremiumSum, g.ClaimsSum = 12345.678901234567, 6789.0123456789
	g.RecordCount, g.ClaimCount = 120, 14

	// A zero-premium group: its loss ratio is undefined
	z := table.Get(aggregate.NewKey([]string{"Limpopo"}))
	z.ClaimsSum, z.RecordCount, z.ClaimCount = 500, 10, 1
	return table
}

func TestCSVExportImport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lossratio_by_Province.csv")
	original := sampleTable()

	require.NoError(t, NewCSVExporter().ExportAggregates(path, original))

	restored, err := NewCSVImporter().ImportAggregates(path)
	require.NoError(t, err)
	require.Len(t, restored.Groups, len(original.Groups))
	assert.Equal(t, original.Dimensions, restored.Dimensions)

	for key, want := range original.Groups {
		got, ok := restored.Groups[key]
		require.True(t, ok, "group %s lost in round trip", key.Label())
		assert.InDelta(t, want.PremiumSum, got.PremiumSum, 1e-9)
		assert.InDelta(t, want.ClaimsSum, got.ClaimsSum, 1e-9)
		assert.Equal(t, want.RecordCount, got.RecordCount)
		assert.Equal(t, want.ClaimCount, got.ClaimCount)

		wantLR, gotLR := want.LossRatio(), got.LossRatio()
		if wantLR == nil {
			assert.Nil(t, gotLR, "undefined ratio must stay undefined for %s", key.Label())
		} else {
			require.NotNil(t, gotLR)
			assert.InDelta(t, *wantLR, *gotLR, 1e-9)
		}
	}
}

func TestCSVExport_UndefinedRatioIsEmptyCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, NewCSVExporter().ExportAggregates(path, sampleTable()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	header := rows[0]
	lrCol := -1
	for i, h := range header {
		if h == "loss_ratio" {
			lrCol = i
		}
	}
	require.NotEqual(t, -1, lrCol, "header should carry loss_ratio")

	found := false
	for _, row := range rows[1:] {
		if row[0] == "Limpopo" {
			found = true
			assert.Equal(t, "", row[lrCol], "undefined ratio must be an empty cell, not zero")
		}
	}
	assert.True(t, found, "zero-premium group missing from export")
}

func TestCSVExport_Results(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_results.csv")
	results := []*hypothesis.TestResult{
		{
			TestName:  "chi_square",
			Dimension: policy.DimProvince,
			Metric:    hypothesis.MetricFrequency,
			Statistic: 12.5,
			PValue:    0.0004,
			Alpha:     0.05,
			Direction: hypothesis.DirectionHigher,
		},
	}
	results[0].Conclude("claim frequency")

	require.NoError(t, NewCSVExporter().ExportResults(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "chi_square", rows[1][0])
	assert.Equal(t, "true", rows[1][6])
}

func TestFormatFloat_RoundTripsExactly(t *testing.T) {
	for _, v := range []float64{0, 1.0 / 3.0, 12345.678901234567, math.Pi} {
		s := formatFloat(v)
		parsed, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.Equal(t, v, parsed, "value %v did not survive formatting as %q", v, s)
	}
}
