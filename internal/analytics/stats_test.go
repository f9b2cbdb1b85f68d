package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(values))
	assert.InDelta(t, 2.138, StdDev(values), 0.001) // sample std

	assert.Zero(t, Mean(nil))
	assert.Zero(t, StdDev([]float64{42}))
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	assert.Equal(t, 2.5, Quantile(values, 0.5))
	assert.Equal(t, 1.75, Quantile(values, 0.25))
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 4.0, Quantile(values, 1))
	// out-of-range q clamps
	assert.Equal(t, 4.0, Quantile(values, 1.5))
}

func TestPercentileRank(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 40.0, PercentileRank(30, values)) // two of five strictly below
	assert.Equal(t, 0.0, PercentileRank(5, values))
	assert.Equal(t, 100.0, PercentileRank(60, values))
	assert.Zero(t, PercentileRank(1, nil))
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{10, 20, 30, 40})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 25.0, s.Mean)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Equal(t, 25.0, s.P50)
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	bins := Histogram(values, 5)
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(values), total, "every value lands in exactly one bin")
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[4].Upper)
	// the maximum belongs to the last bin
	assert.GreaterOrEqual(t, bins[4].Count, 1)
}

func TestHistogram_Degenerate(t *testing.T) {
	assert.Nil(t, Histogram(nil, 5))

	bins := Histogram([]float64{3, 3, 3}, 4)
	require.Len(t, bins, 4)
	assert.Equal(t, 3, bins[0].Count, "constant series collapses into the first bin")
}
