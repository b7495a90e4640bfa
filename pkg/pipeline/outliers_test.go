package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIQRRemovesExtremeValue(t *testing.T) {
	f := newFrame(t,
		numericColumn("v", []float64{1, 2, 3, 4, 100}, nil),
	)

	line := filterOutliers(f, OutlierIQR)

	assert.Equal(t, 4, f.Rows())
	assert.Equal(t, []float64{1, 2, 3, 4}, f.ColumnByName("v").Floats)
	assert.Equal(t, "Outliers removed: 5 -> 4 rows (method: iqr)", line)
}

func TestIQRKeepsTightData(t *testing.T) {
	f := newFrame(t,
		numericColumn("v", []float64{1, 2, 3, 4, 5}, nil),
	)

	filterOutliers(f, OutlierIQR)

	assert.Equal(t, 5, f.Rows())
}

func TestZScoreKeepsAllOnSmallSpread(t *testing.T) {
	// With n=5 no point can reach |z| >= 3, so nothing is removed even
	// though 100 is far from the rest.
	f := newFrame(t,
		numericColumn("v", []float64{1, 2, 3, 4, 100}, nil),
	)

	line := filterOutliers(f, OutlierZScore)

	assert.Equal(t, 5, f.Rows())
	assert.Equal(t, "Outliers removed: 5 -> 5 rows (method: zscore)", line)
}

func TestZScoreRemovesExtremeValue(t *testing.T) {
	values := make([]float64, 0, 21)
	for i := 0; i < 20; i++ {
		values = append(values, 10)
	}
	values = append(values, 1000)
	values[0] = 9
	values[1] = 11

	f := newFrame(t, numericColumn("v", values, nil))

	filterOutliers(f, OutlierZScore)

	assert.Equal(t, 20, f.Rows())
	assert.NotContains(t, f.ColumnByName("v").Floats, 1000.0)
}

func TestZScoreZeroVarianceRemovesNothing(t *testing.T) {
	f := newFrame(t,
		numericColumn("v", []float64{5, 5, 5, 5}, nil),
	)

	filterOutliers(f, OutlierZScore)

	assert.Equal(t, 4, f.Rows())
}

func TestOutlierFilterIsSequentialAcrossColumns(t *testing.T) {
	// The second column's bounds are computed after the first column's
	// outlier row is gone.
	f := newFrame(t,
		numericColumn("a", []float64{1, 2, 3, 4, 100}, nil),
		numericColumn("b", []float64{10, 20, 30, 40, 50}, nil),
	)

	filterOutliers(f, OutlierIQR)

	assert.Equal(t, 4, f.Rows())
	assert.Equal(t, []float64{10, 20, 30, 40}, f.ColumnByName("b").Floats)
}

func TestOutlierFilterIgnoresMissingCells(t *testing.T) {
	f := newFrame(t,
		numericColumn("v", []float64{1, 2, 3, 4, 0, 100}, []bool{false, false, false, false, true, false}),
	)

	filterOutliers(f, OutlierIQR)

	require.Equal(t, 5, f.Rows())
	assert.True(t, f.ColumnByName("v").Null[4])
}

func TestIQRSkipsSmallSamples(t *testing.T) {
	// Fewer than four observations cannot place the quartiles, so no row
	// is flagged even when one value looks extreme.
	f := newFrame(t,
		numericColumn("v", []float64{1, 2, 1000}, nil),
	)

	line := filterOutliers(f, OutlierIQR)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, "Outliers removed: 3 -> 3 rows (method: iqr)", line)
}

func TestOutlierFilterSkipsSingleObservation(t *testing.T) {
	f := newFrame(t,
		numericColumn("v", []float64{42, 0}, []bool{false, true}),
	)

	filterOutliers(f, OutlierIQR)

	assert.Equal(t, 2, f.Rows())
}
