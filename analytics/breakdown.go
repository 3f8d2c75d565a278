package analytics

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// BREAKDOWN: Any record measure, grouped and aggregated
// ============================================================================
// Pipeline: bind records → group by dimension → aggregate → sort → limit.
// An empty GroupBy aggregates the whole selection into one "Total" group.
// ============================================================================

// Aggregations lists the statistics a breakdown or summary can compute.
var Aggregations = []string{"avg", "sum", "count", "min", "max", "variance", "stats"}

// SortModes lists the breakdown orderings. An empty mode keeps the order in
// which groups were first encountered.
var SortModes = []string{"value_desc", "value_asc", "date_asc", "date_desc", "numeric_asc", "label_asc", "label_desc"}

// BreakdownDimensions lists the record dimensions a breakdown can group by.
var BreakdownDimensions = []string{dataset.KeyEmployeeID, dataset.KeyDate}

// BreakdownQuery selects the grouping and statistic of a breakdown.
type BreakdownQuery struct {
	GroupBy     string `json:"groupBy" yaml:"groupBy"`
	Measure     string `json:"measure" yaml:"measure"`
	Aggregation string `json:"aggregation" yaml:"aggregation"`
	Sort        string `json:"sort,omitempty" yaml:"sort,omitempty"`
	Limit       int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// BreakdownRow is one aggregated group. Mean, Variance, Min and Max are only
// set by the "stats" aggregation.
type BreakdownRow struct {
	Key      string  `json:"key" yaml:"key"`
	Label    string  `json:"label" yaml:"label"`
	Value    float64 `json:"value" yaml:"value"`
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Variance float64 `json:"variance,omitempty" yaml:"variance,omitempty"`
	Min      float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max      float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Normalize fills the defaults: duration averaged.
func (q BreakdownQuery) Normalize() BreakdownQuery {
	if q.Measure == "" {
		q.Measure = dataset.KeyDuration
	}
	if q.Aggregation == "" {
		q.Aggregation = "avg"
	}
	return q
}

// Validate checks every field against the known dimensions, measures,
// aggregations and sort modes.
func (q BreakdownQuery) Validate() error {
	if q.GroupBy != "" && !slices.Contains(BreakdownDimensions, q.GroupBy) {
		return fmt.Errorf("cannot group by %q: %w", q.GroupBy, engine.ErrInvalidInput)
	}
	if err := validateStatistic(q.Measure, q.Aggregation); err != nil {
		return err
	}
	if q.Sort != "" && !slices.Contains(SortModes, q.Sort) {
		return fmt.Errorf("unknown sort %q: %w", q.Sort, engine.ErrInvalidInput)
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit %d must not be negative: %w", q.Limit, engine.ErrInvalidInput)
	}
	return nil
}

func validateStatistic(measure, aggregation string) error {
	if !slices.Contains(dataset.RecordMeasures, measure) {
		return fmt.Errorf("unknown measure %q: %w", measure, engine.ErrInvalidInput)
	}
	if !slices.Contains(Aggregations, aggregation) {
		return fmt.Errorf("unknown aggregation %q: %w", aggregation, engine.ErrInvalidInput)
	}
	return nil
}

// BreakdownRecords groups records per q. Employee groups are labelled with
// the employee's name when it is in employees.
func BreakdownRecords(employees []dataset.Employee, records []dataset.SleepRecord, q BreakdownQuery) ([]engine.Group, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	groups := engine.GroupAndAggregate(dataset.RecordAdapter.Bind(records),
		q.GroupBy, q.Measure, q.Aggregation, q.Sort, q.Limit)

	if q.GroupBy == dataset.KeyEmployeeID {
		names := make(map[string]string, len(employees))
		for _, e := range employees {
			names[strconv.Itoa(e.ID)] = e.Name
		}
		for i := range groups {
			if name, ok := names[groups[i].Key]; ok {
				groups[i].Label = name
			}
		}
	}
	return groups, nil
}

// BreakdownRows strips the group views for serialization.
func BreakdownRows(groups []engine.Group) []BreakdownRow {
	out := make([]BreakdownRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, BreakdownRow{
			Key:      g.Key,
			Label:    g.Label,
			Value:    g.Value,
			Count:    g.Count,
			Mean:     g.Mean,
			Variance: g.Variance,
			Min:      g.Min,
			Max:      g.Max,
		})
	}
	return out
}

// BreakdownTitle names a breakdown ("Average Duration by Date").
func BreakdownTitle(q BreakdownQuery) string {
	q = q.Normalize()
	title := engine.LabelForAggregation(q.Aggregation) + " " + measureLabel(q.Measure)
	if q.GroupBy != "" {
		title += " by " + groupLabel(q.GroupBy)
	}
	return title
}

// BreakdownChart plots one point per group: a line over dates, bars
// otherwise.
func BreakdownChart(q BreakdownQuery, groups []engine.Group) *engine.ChartConfig {
	q = q.Normalize()
	chartType := "bar"
	if q.GroupBy == dataset.KeyDate {
		chartType = "line"
	}
	aggLabel := engine.LabelForAggregation(q.Aggregation)
	return engine.BuildChart(engine.ChartSpec{
		Type:       chartType,
		Title:      BreakdownTitle(q),
		XAxis:      groupLabel(q.GroupBy),
		YAxis:      aggLabel,
		SeriesName: aggLabel,
	}, groups)
}

// measureLabel renders a measure key for titles ("deep_sleep" → "Deep sleep").
func measureLabel(measure string) string {
	return engine.LabelForDimension(measure)
}

func groupLabel(dimension string) string {
	switch dimension {
	case "":
		return "Group"
	case dataset.KeyEmployeeID:
		return "Employee"
	default:
		return engine.LabelForDimension(dimension)
	}
}

// measureUnit is the display unit of an aggregated measure. Counts and
// variances carry none.
func measureUnit(measure, aggregation string) string {
	switch {
	case aggregation == "count" || aggregation == "variance":
		return ""
	case measure == dataset.KeyDuration:
		return "h"
	default:
		return "%"
	}
}
