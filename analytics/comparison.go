package analytics

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// EmployeeStats summarizes one employee's durations next to their attributes.
type EmployeeStats struct {
	EmployeeID int            `json:"employeeId" yaml:"employeeId"`
	Name       string         `json:"name" yaml:"name"`
	Department string         `json:"department" yaml:"department"`
	Gender     dataset.Gender `json:"gender" yaml:"gender"`
	Age        int            `json:"age" yaml:"age"`
	Height     int            `json:"height" yaml:"height"`
	Weight     int            `json:"weight" yaml:"weight"`
	Color      string         `json:"color" yaml:"color"`
	Average    float64        `json:"average" yaml:"average"`
	Variance   float64        `json:"variance" yaml:"variance"`
	Count      int            `json:"count" yaml:"count"`

	engine.FiveNumberSummary `yaml:",inline"`
}

// CompareEmployees computes EmployeeStats for each employee, in the order
// given, from their records. Employees without records are skipped.
func CompareEmployees(employees []dataset.Employee, records []dataset.SleepRecord) ([]EmployeeStats, error) {
	groups := engine.GroupBy(dataset.RecordAdapter.Bind(records), dataset.KeyEmployeeID)
	byID := make(map[string]engine.Group, len(groups))
	for _, g := range groups {
		byID[g.Key] = g
	}

	out := make([]EmployeeStats, 0, len(employees))
	for _, e := range employees {
		g, ok := byID[strconv.Itoa(e.ID)]
		if !ok {
			continue
		}
		durations := engine.Values(g.View, dataset.KeyDuration)
		summary, err := engine.Quartiles(durations)
		if err != nil {
			return nil, fmt.Errorf("employee %d: %w", e.ID, err)
		}
		mean := engine.Mean(durations)
		out = append(out, EmployeeStats{
			EmployeeID:        e.ID,
			Name:              e.Name,
			Department:        e.Department,
			Gender:            e.Gender,
			Age:               e.Age,
			Height:            e.Height,
			Weight:            e.Weight,
			Color:             dataset.DepartmentColor(e.Department),
			Average:           mean,
			Variance:          engine.Variance(durations, mean),
			Count:             len(durations),
			FiveNumberSummary: summary,
		})
	}
	return out, nil
}

// ScatterPoint places one employee by average (x) and variance (y).
type ScatterPoint struct {
	EmployeeID int     `json:"employeeId" yaml:"employeeId"`
	Name       string  `json:"name" yaml:"name"`
	Department string  `json:"department" yaml:"department"`
	Average    float64 `json:"average" yaml:"average"`
	Variance   float64 `json:"variance" yaml:"variance"`
	Color      string  `json:"color" yaml:"color"`
}

// Scatter projects comparison stats onto the average/variance plane.
func Scatter(stats []EmployeeStats) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(stats))
	for _, s := range stats {
		out = append(out, ScatterPoint{
			EmployeeID: s.EmployeeID,
			Name:       s.Name,
			Department: s.Department,
			Average:    s.Average,
			Variance:   s.Variance,
			Color:      s.Color,
		})
	}
	return out
}
