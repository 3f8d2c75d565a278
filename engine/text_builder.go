package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER: Produces TextData for one-line answers
// ============================================================================

// BuildText summarizes one measure of a view with the given aggregation.
// dateDimension names the dimension used to derive the period.
func BuildText(view RecordView, measure, aggregation, unit, dateDimension string) *TextData {
	period := DerivePeriod(view, dateDimension)
	if view.Len() == 0 {
		return &TextData{
			Value:  "0",
			Unit:   unit,
			Period: period,
		}
	}

	var value float64
	switch aggregation {
	case "sum":
		value = SumMeasure(view, measure)
	case "count":
		value = float64(view.Len())
	case "max":
		value = MaxMeasure(view, measure)
	case "min":
		value = MinMeasure(view, measure)
	case "variance":
		value = Variance(Values(view, measure), AvgMeasure(view, measure))
	default:
		value = AvgMeasure(view, measure)
	}

	var formatted string
	if aggregation == "count" {
		formatted = FormatInt(int(value))
	} else {
		formatted = fmt.Sprintf("%.2f", value)
		if unit != "" {
			formatted += " " + unit
		}
	}

	return &TextData{
		Value:    formatted,
		RawValue: value,
		Unit:     unit,
		Period:   period,
		Count:    view.Len(),
	}
}

// ============================================================================
// PERIOD HELPER
// ============================================================================

// DerivePeriod builds a human-readable period string ("2023-11-30 – 2023-12-29")
// from the earliest and latest values of a date dimension.
func DerivePeriod(view RecordView, dateDimension string) string {
	if view.Len() == 0 {
		return "No data"
	}

	var earliest, latest string
	for i := 0; i < view.Len(); i++ {
		d := view.Dimension(i, dateDimension)
		if d == "" {
			continue
		}
		if earliest == "" || parseSortableDate(d) < parseSortableDate(earliest) {
			earliest = d
		}
		if latest == "" || parseSortableDate(d) > parseSortableDate(latest) {
			latest = d
		}
	}

	switch {
	case earliest == "":
		return "All time"
	case earliest == latest:
		return earliest
	default:
		return fmt.Sprintf("%s – %s", earliest, latest)
	}
}
