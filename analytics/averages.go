// Package analytics computes the dashboard statistics over sleep records:
// per-date averages and spreads, per-employee period statistics and
// cross-employee comparisons. Every function is pure and reads its inputs
// through engine views without copying them.
package analytics

import (
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// DateAverage is the mean sleep duration of one calendar date.
type DateAverage struct {
	Date    string  `json:"date" yaml:"date"`
	Average float64 `json:"average" yaml:"average"`
}

// AverageByDate groups records by date and averages their durations.
// Output is sorted chronologically.
func AverageByDate(records []dataset.SleepRecord) []DateAverage {
	groups := engine.GroupAndAggregate(
		dataset.RecordAdapter.Bind(records),
		dataset.KeyDate, dataset.KeyDuration, "avg", "date_asc", 0,
	)

	out := make([]DateAverage, 0, len(groups))
	for _, g := range groups {
		out = append(out, DateAverage{Date: g.Key, Average: g.Value})
	}
	return out
}

// DistributionForDate returns the durations recorded on date, in record order.
func DistributionForDate(records []dataset.SleepRecord, date string) []float64 {
	view := engine.ApplyFilters(dataset.RecordAdapter.Bind(records), engine.Filters{
		Spans: map[string]engine.Span{dataset.KeyDate: {From: date, To: date}},
	})
	return engine.Values(view, dataset.KeyDuration)
}

// ObservationsForSubject returns the records of one employee in record order.
// An unknown id yields an empty slice.
func ObservationsForSubject(records []dataset.SleepRecord, employeeID int) []dataset.SleepRecord {
	out := make([]dataset.SleepRecord, 0)
	for _, r := range records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}
