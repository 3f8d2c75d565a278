package analytics

import (
	"fmt"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// EmployeeProfile is the single-employee view: period statistics, the
// average per period and an approximate spread per period.
type EmployeeProfile struct {
	Employee dataset.Employee `json:"employee" yaml:"employee"`
	Period   Period           `json:"period" yaml:"period"`
	Stats    []PeriodStats    `json:"stats" yaml:"stats"`
	Trend    []DateAverage    `json:"trend" yaml:"trend"`
	Spread   []DateBoxPlot    `json:"spread" yaml:"spread"`
}

// BuildProfile assembles the profile of one employee.
func BuildProfile(employee dataset.Employee, records []dataset.SleepRecord, period Period) (*EmployeeProfile, error) {
	stats, err := StatsForSubjectByPeriod(records, employee.ID, period)
	if err != nil {
		return nil, err
	}

	profile := &EmployeeProfile{
		Employee: employee,
		Period:   period,
		Stats:    stats,
		Trend:    make([]DateAverage, 0, len(stats)),
		Spread:   make([]DateBoxPlot, 0, len(stats)),
	}
	for _, s := range stats {
		profile.Trend = append(profile.Trend, DateAverage{Date: s.Period, Average: s.Average})

		summary, err := engine.Quartiles(SpreadValues(s))
		if err != nil {
			return nil, fmt.Errorf("spread for %s: %w", s.Period, err)
		}
		profile.Spread = append(profile.Spread, DateBoxPlot{Date: s.Period, FiveNumberSummary: summary})
	}
	return profile, nil
}

// SpreadValues reconstructs Count evenly spaced values starting at Min and
// stepping (Max-Min)/Count. The last value stays below Max.
func SpreadValues(s PeriodStats) []float64 {
	out := make([]float64, s.Count)
	for i := range out {
		out[i] = float64(i)/float64(s.Count)*(s.Max-s.Min) + s.Min
	}
	return out
}
