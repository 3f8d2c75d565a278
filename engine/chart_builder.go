package engine

// ============================================================================
// CHART BUILDER: Produces ChartConfig from groups, boxes, bins and points
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#0088fe",
	"#00c49f", "#ffbb28", "#a4de6c", "#d0ed57", "#8dd1e1",
}

// ChartSpec names and labels a chart.
type ChartSpec struct {
	Type       string // "line", "bar", "boxplot", "scatter"
	Title      string
	XAxis      string
	YAxis      string
	SeriesName string
}

func newChart(spec ChartSpec, fallbackType string) *ChartConfig {
	chartType := spec.Type
	if chartType == "" {
		chartType = fallbackType
	}
	return &ChartConfig{
		ChartType:  chartType,
		Title:      spec.Title,
		XAxis:      spec.XAxis,
		YAxis:      spec.YAxis,
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// BuildChart produces a single-series chart from aggregated groups, one
// point per group using the group's Value.
func BuildChart(spec ChartSpec, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	config := newChart(spec, "bar")
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}
	config.Series = buildSingleSeries(points, spec.SeriesName)
	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildPointChart produces a single-series chart from prepared points.
// Scatter charts carry both X and Value on every point.
func BuildPointChart(spec ChartSpec, points []ChartPoint) *ChartConfig {
	if len(points) == 0 {
		return nil
	}
	config := newChart(spec, "scatter")
	config.Series = buildSingleSeries(points, spec.SeriesName)
	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildBoxPlotChart produces a box-and-whisker chart, one box per entry.
func BuildBoxPlotChart(spec ChartSpec, boxes []BoxPlot) *ChartConfig {
	if len(boxes) == 0 {
		return nil
	}
	config := newChart(spec, "boxplot")
	config.ShowLegend = false
	config.Boxes = boxes
	config.Colors = assignColors(1)
	return config
}

// BuildHistogramChart produces a bar chart of bin counts.
func BuildHistogramChart(spec ChartSpec, bins []Bin) *ChartConfig {
	if len(bins) == 0 {
		return nil
	}
	config := newChart(spec, "bar")
	points := make([]ChartPoint, 0, len(bins))
	for _, b := range bins {
		points = append(points, ChartPoint{Label: b.Label, Value: float64(b.Count)})
	}
	name := spec.SeriesName
	if name == "" {
		name = "Count"
	}
	config.Series = buildSingleSeries(points, name)
	config.Colors = assignColors(len(config.Series))
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(points []ChartPoint, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}
	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
