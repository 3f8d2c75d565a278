package analytics

import (
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// CHARTS: Render-ready chart configs for the two dashboard pages
// ============================================================================

// AverageChart plots the daily average as a line.
func AverageChart(averages []DateAverage) *engine.ChartConfig {
	points := make([]engine.ChartPoint, 0, len(averages))
	for _, a := range averages {
		points = append(points, engine.ChartPoint{Label: a.Date, Value: engine.RoundTo2(a.Average)})
	}
	return engine.BuildPointChart(engine.ChartSpec{
		Type:       "line",
		Title:      "Average Sleep Duration by Date",
		XAxis:      "Date",
		YAxis:      "Hours",
		SeriesName: "Average",
	}, points)
}

// DateBoxPlotChart draws one box per date (or period label).
func DateBoxPlotChart(title string, boxes []DateBoxPlot) *engine.ChartConfig {
	out := make([]engine.BoxPlot, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, engine.BoxPlot{Label: b.Date, FiveNumberSummary: b.FiveNumberSummary})
	}
	return engine.BuildBoxPlotChart(engine.ChartSpec{
		Title: title,
		XAxis: "Date",
		YAxis: "Hours",
	}, out)
}

// HistogramChart draws the duration histogram.
func HistogramChart(bins []engine.Bin) *engine.ChartConfig {
	return engine.BuildHistogramChart(engine.ChartSpec{
		Title: "Sleep Duration Distribution",
		XAxis: "Sleep Duration (hours)",
		YAxis: "Count",
	}, bins)
}

// ComparisonChart draws one bar per employee, coloured by department.
func ComparisonChart(stats []EmployeeStats) *engine.ChartConfig {
	points := make([]engine.ChartPoint, 0, len(stats))
	for _, s := range stats {
		points = append(points, engine.ChartPoint{
			Label: s.Name,
			Value: engine.RoundTo2(s.Average),
			Color: s.Color,
		})
	}
	config := engine.BuildPointChart(engine.ChartSpec{
		Type:       "bar",
		Title:      "Average Sleep Duration by Employee",
		XAxis:      "Employee",
		YAxis:      "Hours",
		SeriesName: "Average",
	}, points)
	if config != nil {
		config.Colors = departmentPalette()
	}
	return config
}

// ComparisonBoxPlotChart draws one box per employee, coloured by department.
func ComparisonBoxPlotChart(stats []EmployeeStats) *engine.ChartConfig {
	boxes := make([]engine.BoxPlot, 0, len(stats))
	for _, s := range stats {
		boxes = append(boxes, engine.BoxPlot{
			Label:             s.Name,
			Color:             s.Color,
			FiveNumberSummary: s.FiveNumberSummary,
		})
	}
	config := engine.BuildBoxPlotChart(engine.ChartSpec{
		Title: "Sleep Duration Spread by Employee",
		XAxis: "Employee",
		YAxis: "Hours",
	}, boxes)
	if config != nil {
		config.Colors = departmentPalette()
	}
	return config
}

// ScatterChart plots average (x) against variance (y) per employee.
func ScatterChart(points []ScatterPoint) *engine.ChartConfig {
	out := make([]engine.ChartPoint, 0, len(points))
	for _, p := range points {
		out = append(out, engine.ChartPoint{
			Label: p.Name,
			X:     p.Average,
			Value: p.Variance,
			Color: p.Color,
		})
	}
	config := engine.BuildPointChart(engine.ChartSpec{
		Type:       "scatter",
		Title:      "Average vs Variance",
		XAxis:      "Average (hours)",
		YAxis:      "Variance",
		SeriesName: "Employees",
	}, out)
	if config != nil {
		config.Colors = departmentPalette()
	}
	return config
}

func departmentPalette() []string {
	colors := make([]string, 0, len(dataset.Departments))
	for _, d := range dataset.Departments {
		colors = append(colors, dataset.DepartmentColor(d))
	}
	return colors
}
