package analytics

import (
	"fmt"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// DISTRIBUTIONS: Box plots per date and the duration histogram
// ============================================================================

// DateBoxPlot is the five-number summary of one date's durations.
type DateBoxPlot struct {
	Date string `json:"date" yaml:"date"`
	engine.FiveNumberSummary `yaml:",inline"`
}

// BoxPlotByDate summarizes durations per date, in the order dates first
// appear in records.
func BoxPlotByDate(records []dataset.SleepRecord) ([]DateBoxPlot, error) {
	groups := engine.GroupBy(dataset.RecordAdapter.Bind(records), dataset.KeyDate)
	out := make([]DateBoxPlot, 0, len(groups))
	for _, g := range groups {
		summary, err := engine.Quartiles(engine.Values(g.View, dataset.KeyDuration))
		if err != nil {
			return nil, fmt.Errorf("box plot for %s: %w", g.Key, err)
		}
		out = append(out, DateBoxPlot{Date: g.Key, FiveNumberSummary: summary})
	}
	return out, nil
}

// HistogramConfig sets the span and bin width of the duration histogram.
type HistogramConfig struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Width float64 `json:"width"`
}

// DefaultHistogram covers 4 to 10 hours in half-hour bins.
var DefaultHistogram = HistogramConfig{Min: 4, Max: 10, Width: 0.5}

// DurationHistogram bins record durations. Durations outside
// [cfg.Min, cfg.Max) are not counted.
func DurationHistogram(records []dataset.SleepRecord, cfg HistogramConfig) ([]engine.Bin, error) {
	durations := engine.Values(dataset.RecordAdapter.Bind(records), dataset.KeyDuration)
	return engine.Histogram(durations, cfg.Min, cfg.Max, cfg.Width)
}
