package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// Period is the bucket granularity for per-employee statistics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// AllTimeKey labels the single bucket of PeriodAll.
const AllTimeKey = "All Time"

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q: %w", s, engine.ErrInvalidInput)
	}
}

// PeriodStats summarizes the durations of one period bucket.
type PeriodStats struct {
	Period   string  `json:"period" yaml:"period"`
	Average  float64 `json:"average" yaml:"average"`
	Variance float64 `json:"variance" yaml:"variance"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Count    int     `json:"count" yaml:"count"`
}

// PeriodKey returns the bucket label of an ISO date.
//
//	week:  "Week {n}, {year}", n = ceil((day + weekday of the 1st) / 7)
//	month: "{Month} {year}"
//	all:   "All Time"
//
// Week keys carry no month, so week 5 of one month and week 5 of the next
// share a bucket.
func PeriodKey(date string, period Period) (string, error) {
	if period == PeriodAll {
		return AllTimeKey, nil
	}
	t, err := time.Parse(engine.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, engine.ErrInvalidInput)
	}

	switch period {
	case PeriodWeek:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		week := (t.Day() + int(first.Weekday()) + 6) / 7
		return fmt.Sprintf("Week %d, %d", week, t.Year()), nil
	case PeriodMonth:
		return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year()), nil
	default:
		return "", fmt.Errorf("unknown period %q: %w", period, engine.ErrInvalidInput)
	}
}

// StatsForSubjectByPeriod buckets one employee's records by period and
// summarizes each bucket. Buckets appear in the order their key is first
// met. An employee without records yields an empty slice.
func StatsForSubjectByPeriod(records []dataset.SleepRecord, employeeID int, period Period) ([]PeriodStats, error) {
	period, err := ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}

	subject := ObservationsForSubject(records, employeeID)
	keys := make([]string, len(subject))
	for i, r := range subject {
		key, err := PeriodKey(r.Date, period)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	groups := engine.GroupByKey(dataset.RecordAdapter.Bind(subject), func(i int) string { return keys[i] })
	out := make([]PeriodStats, 0, len(groups))
	for i := range groups {
		engine.Summarize(&groups[i], dataset.KeyDuration)
		g := groups[i]
		out = append(out, PeriodStats{
			Period:   g.Key,
			Average:  g.Mean,
			Variance: g.Variance,
			Min:      g.Min,
			Max:      g.Max,
			Count:    g.Count,
		})
	}
	return out, nil
}
