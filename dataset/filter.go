package dataset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spektr-org/sleepscope/engine"
)

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntRange) engineRange() engine.Range {
	return engine.Range{Min: float64(r.Min), Max: float64(r.Max)}
}

// DateRange bounds records by calendar date, inclusive. Start is required
// for the range to take effect; an empty End leaves the range open.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// FilterBounds are the slider limits offered by the dashboard.
type FilterBounds struct {
	Age    IntRange `json:"age"`
	Height IntRange `json:"height"`
	Weight IntRange `json:"weight"`
}

// DefaultFilterBounds covers every generated employee.
var DefaultFilterBounds = FilterBounds{
	Age:    IntRange{Min: 20, Max: 70},
	Height: IntRange{Min: 140, Max: 200},
	Weight: IntRange{Min: 40, Max: 120},
}

// Filter selects employees and their records. Every field is optional;
// the zero Filter selects everything.
type Filter struct {
	Gender      Gender     `json:"gender,omitempty"`
	AgeRange    *IntRange  `json:"ageRange,omitempty"`
	HeightRange *IntRange  `json:"heightRange,omitempty"`
	WeightRange *IntRange  `json:"weightRange,omitempty"`
	DateRange   *DateRange `json:"dateRange,omitempty"`
}

// Selection is the outcome of applying a Filter.
type Selection struct {
	Employees []Employee    `json:"employees"`
	Records   []SleepRecord `json:"records"`
}

// Validate checks the gender category and date formats.
func (f Filter) Validate() error {
	if f.Gender != "" && !f.Gender.Valid() {
		return fmt.Errorf("unknown gender %q: %w", f.Gender, engine.ErrInvalidInput)
	}
	if f.DateRange != nil {
		for _, d := range []string{f.DateRange.Start, f.DateRange.End} {
			if d == "" {
				continue
			}
			if _, err := time.Parse(engine.DateLayout, d); err != nil {
				return fmt.Errorf("date %q is not YYYY-MM-DD: %w", d, engine.ErrInvalidInput)
			}
		}
	}
	return nil
}

// EmployeeFilters translates the employee constraints into engine filters.
func (f Filter) EmployeeFilters() engine.Filters {
	filters := engine.Filters{Measures: map[string]engine.Range{}}
	if f.Gender != "" {
		filters.Dimensions = map[string][]string{KeyGender: {string(f.Gender)}}
	}
	if f.AgeRange != nil {
		filters.Measures[KeyAge] = f.AgeRange.engineRange()
	}
	if f.HeightRange != nil {
		filters.Measures[KeyHeight] = f.HeightRange.engineRange()
	}
	if f.WeightRange != nil {
		filters.Measures[KeyWeight] = f.WeightRange.engineRange()
	}
	return filters
}

// RecordFilters restricts records to the given employees and the date range.
func (f Filter) RecordFilters(employeeIDs []int) engine.Filters {
	ids := make([]string, len(employeeIDs))
	for i, id := range employeeIDs {
		ids[i] = strconv.Itoa(id)
	}
	filters := engine.Filters{Dimensions: map[string][]string{KeyEmployeeID: ids}}
	if f.DateRange != nil && f.DateRange.Start != "" {
		filters.Spans = map[string]engine.Span{
			KeyDate: {From: f.DateRange.Start, To: f.DateRange.End},
		}
	}
	return filters
}

// Apply filters the roster first, then keeps the records of the remaining
// employees that fall inside the date range.
func (d *Dataset) Apply(f Filter) (Selection, error) {
	if err := f.Validate(); err != nil {
		return Selection{}, err
	}

	empView := engine.ApplyFilters(d.EmployeeView(), f.EmployeeFilters())
	employees := engine.Select(d.employees, empView)
	if len(employees) == 0 {
		return Selection{Employees: []Employee{}, Records: []SleepRecord{}}, nil
	}

	ids := make([]int, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	recView := engine.ApplyFilters(d.RecordView(), f.RecordFilters(ids))
	return Selection{
		Employees: employees,
		Records:   engine.Select(d.records, recView),
	}, nil
}
