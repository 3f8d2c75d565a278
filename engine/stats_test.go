package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuartiles(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   FiveNumberSummary
	}{
		{"n=8 divisible by four", []float64{1, 2, 3, 4, 5, 6, 7, 8}, FiveNumberSummary{Min: 1, Q1: 2.5, Median: 4.5, Q3: 6.5, Max: 8}},
		{"n=8 shifted", []float64{4, 5, 6, 7, 8, 9, 10, 11}, FiveNumberSummary{Min: 4, Q1: 5.5, Median: 7.5, Q3: 9.5, Max: 11}},
		{"n=4", []float64{4, 3, 2, 1}, FiveNumberSummary{Min: 1, Q1: 1.5, Median: 2.5, Q3: 3.5, Max: 4}},
		{"n=5 unsorted", []float64{5, 1, 4, 2, 3}, FiveNumberSummary{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5}},
		{"n=6", []float64{1, 2, 3, 4, 5, 6}, FiveNumberSummary{Min: 1, Q1: 2, Median: 3.5, Q3: 5, Max: 6}},
		{"single value", []float64{7}, FiveNumberSummary{Min: 7, Q1: 7, Median: 7, Q3: 7, Max: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quartiles(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuartilesDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := Quartiles(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQuartilesRejectsEmpty(t *testing.T) {
	_, err := Quartiles(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Quartiles([]float64{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMeanAndVariance(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := Mean(values)
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 4.0, Variance(values, mean))

	// Variance uses the supplied mean rather than recomputing it.
	assert.Equal(t, 5.0, Variance(values, 4))

	assert.Zero(t, Mean(nil))
	assert.Zero(t, Variance(nil, 3))
}

func TestHistogram(t *testing.T) {
	bins, err := Histogram([]float64{4, 4.49, 4.5, 6.2, 9.99, 10, 3.9, 12}, 4, 10, 0.5)
	require.NoError(t, err)
	require.Len(t, bins, 12)

	assert.Equal(t, "4-4.5", bins[0].Label)
	assert.Equal(t, "4.5-5", bins[1].Label)
	assert.Equal(t, "9.5-10", bins[11].Label)

	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 1, bins[1].Count)
	assert.Equal(t, 1, bins[4].Count)
	assert.Equal(t, 1, bins[11].Count)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 5, total, "10, 3.9 and 12 fall outside [4, 10)")
}

func TestHistogramRejectsBadBins(t *testing.T) {
	_, err := Histogram(nil, 4, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Histogram(nil, 10, 4, 0.5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
