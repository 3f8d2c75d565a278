package engine

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================================
// STATISTICS: Mean, population variance, five-number summary, histogram
// ============================================================================
// Pure functions over []float64. Inputs are never mutated.
// ============================================================================

// FiveNumberSummary is min / first quartile / median / third quartile / max.
type FiveNumberSummary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Mean returns the arithmetic mean, or 0 for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance of values around a caller
// supplied mean (divisor n). An empty sample has variance 0.
func Variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(values))
}

// Quartiles computes the five-number summary of values.
//
// Q1 and Q3 sit at indices n/4 and 3n/4 of the sorted sample. When n is a
// multiple of four both are averaged with the preceding element; otherwise
// the element at the index is taken as is. The median averages the two
// middle elements for even n.
func Quartiles(values []float64) (FiveNumberSummary, error) {
	n := len(values)
	if n == 0 {
		return FiveNumberSummary{}, fmt.Errorf("quartiles of empty sample: %w", ErrInvalidInput)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var median float64
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	pick := func(idx int) float64 {
		if n%4 == 0 {
			return (sorted[idx-1] + sorted[idx]) / 2
		}
		return sorted[idx]
	}

	return FiveNumberSummary{
		Min:    sorted[0],
		Q1:     pick(n / 4),
		Median: median,
		Q3:     pick(3 * n / 4),
		Max:    sorted[n-1],
	}, nil
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Label string  `json:"bin"`
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram counts values into fixed-width bins spanning [lo, hi).
// Values outside the span are ignored. Labels read "lo-hi" ("4-4.5").
func Histogram(values []float64, lo, hi, width float64) ([]Bin, error) {
	if width <= 0 || math.IsNaN(width) {
		return nil, fmt.Errorf("histogram bin width %v: %w", width, ErrInvalidInput)
	}
	if !(hi > lo) {
		return nil, fmt.Errorf("histogram span [%v, %v): %w", lo, hi, ErrInvalidInput)
	}

	var bins []Bin
	for edge := lo; edge < hi; edge += width {
		bins = append(bins, Bin{
			Label: FormatNumber(edge) + "-" + FormatNumber(edge+width),
			Lo:    edge,
			Hi:    edge + width,
		})
	}

	for _, v := range values {
		if v < lo || v >= hi {
			continue
		}
		idx := int(math.Floor((v - lo) / width))
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx].Count++
	}
	return bins, nil
}
