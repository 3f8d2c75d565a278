package analytics

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// RecordsTable lists records with every sleep measure.
func RecordsTable(title string, records []dataset.SleepRecord) *engine.TableData {
	return engine.BuildListTable(title, dataset.RecordAdapter.Bind(records), dataset.RecordMeasures)
}

// RosterTable lists employees with their numeric attributes.
func RosterTable(title string, employees []dataset.Employee) *engine.TableData {
	return engine.BuildListTable(title, dataset.EmployeeAdapter.Bind(employees),
		[]string{dataset.KeyAge, dataset.KeyHeight, dataset.KeyWeight})
}

// PeriodStatsTable renders period buckets as a stats table.
func PeriodStatsTable(title string, stats []PeriodStats) *engine.TableData {
	groups := make([]engine.Group, 0, len(stats))
	for _, s := range stats {
		groups = append(groups, engine.Group{
			Key:      s.Period,
			Label:    s.Period,
			Count:    s.Count,
			Mean:     s.Average,
			Variance: s.Variance,
			Min:      s.Min,
			Max:      s.Max,
		})
	}
	return engine.BuildStatsTable(title, "Period", groups)
}

// ComparisonTable renders one row per compared employee.
func ComparisonTable(title string, stats []EmployeeStats) *engine.TableData {
	columns := []engine.Column{
		{Key: "employee_id", Label: "Employee ID", Type: "number", Align: "right"},
		{Key: "name", Label: "Name", Type: "text", Align: "left"},
		{Key: "department", Label: "Department", Type: "text", Align: "left"},
		{Key: "gender", Label: "Gender", Type: "text", Align: "left"},
		{Key: "average", Label: "Average", Type: "number", Align: "right"},
		{Key: "variance", Label: "Variance", Type: "number", Align: "right"},
		{Key: "min", Label: "Min", Type: "number", Align: "right"},
		{Key: "q1", Label: "Q1", Type: "number", Align: "right"},
		{Key: "median", Label: "Median", Type: "number", Align: "right"},
		{Key: "q3", Label: "Q3", Type: "number", Align: "right"},
		{Key: "max", Label: "Max", Type: "number", Align: "right"},
		{Key: "count", Label: "Count", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.EmployeeID),
			s.Name,
			s.Department,
			string(s.Gender),
			fmt.Sprintf("%.2f", s.Average),
			fmt.Sprintf("%.4f", s.Variance),
			fmt.Sprintf("%.2f", s.Min),
			fmt.Sprintf("%.2f", s.Q1),
			fmt.Sprintf("%.2f", s.Median),
			fmt.Sprintf("%.2f", s.Q3),
			fmt.Sprintf("%.2f", s.Max),
			strconv.Itoa(s.Count),
		})
	}

	return &engine.TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &engine.Summary{
			Label:  "Employees",
			Values: map[string]string{"count": engine.FormatInt(len(stats))},
		},
	}
}

// AveragesTable renders the daily averages.
func AveragesTable(title string, averages []DateAverage) *engine.TableData {
	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, []string{a.Date, fmt.Sprintf("%.2f", a.Average)})
	}
	return &engine.TableData{
		Title: title,
		Columns: []engine.Column{
			{Key: "date", Label: "Date", Type: "text", Align: "left"},
			{Key: "average", Label: "Average", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// BoxPlotTable renders one five-number summary per date or period.
func BoxPlotTable(title string, boxes []DateBoxPlot) *engine.TableData {
	columns := []engine.Column{
		{Key: "date", Label: "Date", Type: "text", Align: "left"},
		{Key: "min", Label: "Min", Type: "number", Align: "right"},
		{Key: "q1", Label: "Q1", Type: "number", Align: "right"},
		{Key: "median", Label: "Median", Type: "number", Align: "right"},
		{Key: "q3", Label: "Q3", Type: "number", Align: "right"},
		{Key: "max", Label: "Max", Type: "number", Align: "right"},
	}
	rows := make([][]string, 0, len(boxes))
	for _, b := range boxes {
		rows = append(rows, []string{
			b.Date,
			fmt.Sprintf("%.2f", b.Min),
			fmt.Sprintf("%.2f", b.Q1),
			fmt.Sprintf("%.2f", b.Median),
			fmt.Sprintf("%.2f", b.Q3),
			fmt.Sprintf("%.2f", b.Max),
		})
	}
	return &engine.TableData{Title: title, Columns: columns, Rows: rows}
}

// HistogramTable renders bin labels and counts.
func HistogramTable(title string, bins []engine.Bin) *engine.TableData {
	rows := make([][]string, 0, len(bins))
	total := 0
	for _, b := range bins {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count)})
		total += b.Count
	}
	return &engine.TableData{
		Title: title,
		Columns: []engine.Column{
			{Key: "bin", Label: "Sleep Duration (hours)", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &engine.Summary{
			Label:  "Total",
			Values: map[string]string{"count": engine.FormatInt(total)},
		},
	}
}

// BreakdownTable renders breakdown groups. The "stats" aggregation gets the
// full stats table; every other aggregation one value column.
func BreakdownTable(q BreakdownQuery, groups []engine.Group) *engine.TableData {
	q = q.Normalize()
	if q.Aggregation == "stats" {
		return engine.BuildStatsTable(BreakdownTitle(q), groupLabel(q.GroupBy), groups)
	}

	rows := make([][]string, 0, len(groups))
	total := 0
	for _, g := range groups {
		value := fmt.Sprintf("%.2f", g.Value)
		if q.Aggregation == "count" {
			value = engine.FormatInt(g.Count)
		}
		rows = append(rows, []string{g.Label, value, strconv.Itoa(g.Count)})
		total += g.Count
	}
	return &engine.TableData{
		Title: BreakdownTitle(q),
		Columns: []engine.Column{
			{Key: "group", Label: groupLabel(q.GroupBy), Type: "text", Align: "left"},
			{Key: "value", Label: engine.LabelForAggregation(q.Aggregation), Type: "number", Align: "right"},
			{Key: "count", Label: "Count", Type: "number", Align: "center"},
		},
		Rows: rows,
		Summary: &engine.Summary{
			Label:  "Total",
			Values: map[string]string{"count": engine.FormatInt(total)},
		},
	}
}
