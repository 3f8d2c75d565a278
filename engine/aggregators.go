package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// AGGREGATORS: Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
// An empty groupBy puts every record into a single "all" group.
func GroupAndAggregate(
	view RecordView,
	groupBy string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if groupBy == "" {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = GroupBy(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// GroupBy buckets a view by a dimension. Groups keep the order in which
// their key was first encountered.
func GroupBy(view RecordView, dimension string) []Group {
	return GroupByKey(view, func(i int) string { return view.Dimension(i, dimension) })
}

// GroupByKey buckets a view by a derived key, in first-encounter order.
func GroupByKey(view RecordView, key func(i int) string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		k := key(i)
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], i)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		groups = append(groups, Group{
			Key:   k,
			Label: k,
			Count: len(grouped[k]),
			View:  newSubView(view, grouped[k]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case "count":
		group.Value = float64(group.Count)
	case "avg":
		group.Value = AvgMeasure(group.View, measure)
	case "max":
		group.Value = MaxMeasure(group.View, measure)
	case "min":
		group.Value = MinMeasure(group.View, measure)
	case "variance":
		group.Value = Variance(Values(group.View, measure), AvgMeasure(group.View, measure))
	case "stats":
		Summarize(group, measure)
	default: // "sum"
		group.Value = SumMeasure(group.View, measure)
	}
}

// Summarize fills the group's mean, population variance, min and max for a
// measure. Value is set to the mean.
func Summarize(group *Group, measure string) {
	values := Values(group.View, measure)
	group.Count = len(values)
	if len(values) == 0 {
		return
	}
	group.Mean = Mean(values)
	group.Variance = Variance(values, group.Mean)
	group.Min, group.Max = values[0], values[0]
	for _, v := range values[1:] {
		group.Min = math.Min(group.Min, v)
		group.Max = math.Max(group.Max, v)
	}
	group.Value = group.Mean
}

// Values extracts a measure column from a view, in view order.
func Values(view RecordView, measure string) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Measure(i, measure)
	}
	return out
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := view.Measure(0, measure)
	for i := 1; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := view.Measure(0, measure)
	for i := 1; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// Sorting is stable, so ties keep their grouping order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "date_asc":
		sort.SliceStable(groups, func(i, j int) bool { return parseSortableDate(groups[i].Key) < parseSortableDate(groups[j].Key) })
	case "date_desc":
		sort.SliceStable(groups, func(i, j int) bool { return parseSortableDate(groups[i].Key) > parseSortableDate(groups[j].Key) })
	case "numeric_asc":
		sort.SliceStable(groups, func(i, j int) bool { return parseNumericKey(groups[i].Key) < parseNumericKey(groups[j].Key) })
	case "label_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) > strings.ToLower(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// DateLayout is the calendar date format used by every date dimension.
const DateLayout = "2006-01-02"

var sortableLayouts = []string{DateLayout, "January 2006", "2006"}

// parseSortableDate converts a date-like key to a comparable timestamp.
// Unparsable keys sort first.
func parseSortableDate(key string) int64 {
	for _, layout := range sortableLayouts {
		if t, err := time.Parse(layout, key); err == nil {
			return t.Unix()
		}
	}
	return math.MinInt64
}

func parseNumericKey(key string) float64 {
	v, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber renders a float the way JavaScript prints numbers:
// shortest representation, no trailing zeros ("4", "4.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension returns a capitalized label for a dimension key
// ("employee_id" → "Employee id").
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	label := strings.ReplaceAll(dimension, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case "sum":
		return "Total"
	case "count":
		return "Count"
	case "avg", "stats":
		return "Average"
	case "max":
		return "Maximum"
	case "min":
		return "Minimum"
	case "variance":
		return "Variance"
	default:
		return "Value"
	}
}
