package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type night struct {
	Who   string
	Team  string
	Date  string
	Hours float64
	Age   float64
}

var nights = []night{
	{"ann", "red", "2024-01-03", 7, 30},
	{"bob", "blue", "2024-01-01", 6, 40},
	{"ann", "red", "2024-01-01", 8, 30},
	{"cat", "Blue", "2024-01-02", 5, 50},
	{"bob", "blue", "2024-01-03", 9, 40},
}

var nightAdapter = NewDomainAdapter[night]().
	Dimension("who", func(n night) string { return n.Who }).
	Dimension("team", func(n night) string { return n.Team }).
	Dimension("date", func(n night) string { return n.Date }).
	Measure("hours", func(n night) float64 { return n.Hours }).
	Measure("age", func(n night) float64 { return n.Age })

// ============================================================================
// VIEWS
// ============================================================================

func TestDomainView(t *testing.T) {
	view := nightAdapter.Bind(nights)
	assert.Equal(t, 5, view.Len())
	assert.Equal(t, []string{"who", "team", "date"}, view.DimensionKeys())
	assert.Equal(t, []string{"hours", "age"}, view.MeasureKeys())
	assert.Equal(t, "bob", view.Dimension(1, "who"))
	assert.Equal(t, 6.0, view.Measure(1, "hours"))
	assert.Equal(t, "", view.Dimension(9, "who"))
	assert.Equal(t, "", view.Dimension(0, "missing"))
	assert.Zero(t, view.Measure(0, "missing"))
}

func TestSelectResolvesNestedSubViews(t *testing.T) {
	view := nightAdapter.Bind(nights)
	blue := ApplyFilters(view, Filters{Dimensions: map[string][]string{"team": {"blue"}}})
	late := ApplyFilters(blue, Filters{Spans: map[string]Span{"date": {From: "2024-01-02"}}})

	assert.Equal(t, []int{1, 3, 4}, SourceIndices(blue))
	assert.Equal(t, []night{nights[3], nights[4]}, Select(nights, late))
}

// ============================================================================
// FILTERS
// ============================================================================

func TestApplyFilters(t *testing.T) {
	view := nightAdapter.Bind(nights)

	tests := []struct {
		name    string
		filters Filters
		want    int
	}{
		{"empty", Filters{}, 5},
		{"case-insensitive dimension", Filters{Dimensions: map[string][]string{"team": {"BLUE"}}}, 3},
		{"or within dimension", Filters{Dimensions: map[string][]string{"who": {"ann", "cat"}}}, 3},
		{"empty value list ignored", Filters{Dimensions: map[string][]string{"who": {}}}, 5},
		{"measure range inclusive", Filters{Measures: map[string]Range{"age": {Min: 30, Max: 40}}}, 4},
		{"span both ends inclusive", Filters{Spans: map[string]Span{"date": {From: "2024-01-01", To: "2024-01-02"}}}, 3},
		{"span open end", Filters{Spans: map[string]Span{"date": {From: "2024-01-03"}}}, 2},
		{"and across kinds", Filters{
			Dimensions: map[string][]string{"team": {"blue"}},
			Measures:   map[string]Range{"hours": {Min: 6, Max: 9}},
			Spans:      map[string]Span{"date": {To: "2024-01-02"}},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyFilters(view, tt.filters).Len())
		})
	}
}

func TestFiltersIsEmpty(t *testing.T) {
	assert.True(t, Filters{}.IsEmpty())
	assert.True(t, Filters{Dimensions: map[string][]string{"a": nil}}.IsEmpty())
	assert.False(t, Filters{Measures: map[string]Range{"a": {}}}.IsEmpty())
}

// ============================================================================
// AGGREGATION
// ============================================================================

func TestGroupByKeepsEncounterOrder(t *testing.T) {
	groups := GroupBy(nightAdapter.Bind(nights), "date")
	require.Len(t, groups, 3)
	assert.Equal(t, "2024-01-03", groups[0].Key)
	assert.Equal(t, "2024-01-01", groups[1].Key)
	assert.Equal(t, "2024-01-02", groups[2].Key)
	assert.Equal(t, 2, groups[0].Count)
}

func TestGroupAndAggregateSortsChronologically(t *testing.T) {
	groups := GroupAndAggregate(nightAdapter.Bind(nights), "date", "hours", "avg", "date_asc", 0)
	require.Len(t, groups, 3)
	assert.Equal(t, "2024-01-01", groups[0].Key)
	assert.Equal(t, 7.0, groups[0].Value)
	assert.Equal(t, "2024-01-02", groups[1].Key)
	assert.Equal(t, 5.0, groups[1].Value)
	assert.Equal(t, "2024-01-03", groups[2].Key)
	assert.Equal(t, 8.0, groups[2].Value)
}

func TestGroupAndAggregateStats(t *testing.T) {
	groups := GroupAndAggregate(nightAdapter.Bind(nights), "who", "hours", "stats", "", 0)
	require.Len(t, groups, 3)

	bob := groups[1]
	assert.Equal(t, "bob", bob.Key)
	assert.Equal(t, 2, bob.Count)
	assert.Equal(t, 7.5, bob.Mean)
	assert.Equal(t, 2.25, bob.Variance)
	assert.Equal(t, 6.0, bob.Min)
	assert.Equal(t, 9.0, bob.Max)
	assert.Equal(t, bob.Mean, bob.Value)
}

func TestGroupAndAggregateVariants(t *testing.T) {
	view := nightAdapter.Bind(nights)

	total := GroupAndAggregate(view, "", "hours", "sum", "", 0)
	require.Len(t, total, 1)
	assert.Equal(t, 35.0, total[0].Value)

	top := GroupAndAggregate(view, "who", "hours", "max", "value_desc", 1)
	require.Len(t, top, 1)
	assert.Equal(t, "bob", top[0].Key)

	counts := GroupAndAggregate(view, "team", "hours", "count", "label_asc", 0)
	require.Len(t, counts, 3)
	assert.Equal(t, "blue", counts[0].Key)

	assert.Nil(t, GroupAndAggregate(nightAdapter.Bind(nil), "who", "hours", "sum", "", 0))
}

func TestSortGroupsNumeric(t *testing.T) {
	groups := []Group{{Key: "10"}, {Key: "2"}, {Key: "1"}}
	SortGroups(groups, "numeric_asc")
	assert.Equal(t, "1", groups[0].Key)
	assert.Equal(t, "2", groups[1].Key)
	assert.Equal(t, "10", groups[2].Key)
}

func TestSortGroupsMonthNames(t *testing.T) {
	groups := []Group{{Key: "December 2023"}, {Key: "November 2023"}, {Key: "January 2024"}}
	SortGroups(groups, "date_asc")
	assert.Equal(t, "November 2023", groups[0].Key)
	assert.Equal(t, "January 2024", groups[2].Key)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,500", FormatInt(1500))
	assert.Equal(t, "-12,345", FormatInt(-12345))
	assert.Equal(t, "4.5", FormatNumber(4.5))
	assert.Equal(t, "10", FormatNumber(10))
	assert.Equal(t, 7.05, RoundTo2(7.0466))
	assert.Equal(t, "Employee id", LabelForDimension("employee_id"))
	assert.Equal(t, "Variance", LabelForAggregation("variance"))
	assert.Equal(t, []string{"ann", "bob", "cat"}, UniqueValues(nightAdapter.Bind(nights), "who"))
}

// ============================================================================
// BUILDERS
// ============================================================================

func TestBuildChart(t *testing.T) {
	groups := GroupAndAggregate(nightAdapter.Bind(nights), "date", "hours", "avg", "date_asc", 0)
	chart := BuildChart(ChartSpec{Type: "line", Title: "Average", XAxis: "Date", SeriesName: "Hours"}, groups)
	require.NotNil(t, chart)
	assert.Equal(t, "line", chart.ChartType)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "Hours", chart.Series[0].Name)
	assert.Len(t, chart.Series[0].Data, 3)
	assert.Equal(t, []string{"#8884d8"}, chart.Colors)

	assert.Nil(t, BuildChart(ChartSpec{}, nil))
}

func TestBuildHistogramAndBoxCharts(t *testing.T) {
	bins, err := Histogram([]float64{4.2, 4.7}, 4, 5, 0.5)
	require.NoError(t, err)
	hist := BuildHistogramChart(ChartSpec{Title: "Distribution"}, bins)
	require.NotNil(t, hist)
	assert.Equal(t, "bar", hist.ChartType)
	assert.Equal(t, "Count", hist.Series[0].Name)
	assert.Equal(t, 1.0, hist.Series[0].Data[1].Value)

	box := BuildBoxPlotChart(ChartSpec{Title: "Spread"}, []BoxPlot{{Label: "a"}})
	require.NotNil(t, box)
	assert.Equal(t, "boxplot", box.ChartType)
	assert.Len(t, box.Boxes, 1)
	assert.Nil(t, BuildBoxPlotChart(ChartSpec{}, nil))
}

func TestBuildTables(t *testing.T) {
	view := nightAdapter.Bind(nights)
	list := BuildListTable("Nights", view, []string{"hours"})
	assert.Equal(t, []string{"Who", "Team", "Date", "Hours"}, list.Headers())
	assert.Len(t, list.Rows, 5)
	assert.Equal(t, "7.00", list.Summary.Values["hours"])

	groups := GroupAndAggregate(view, "who", "hours", "stats", "", 0)
	stats := BuildStatsTable("By person", "Who", groups)
	assert.Equal(t, []string{"Who", "Average", "Variance", "Min", "Max", "Count"}, stats.Headers())
	assert.Equal(t, []string{"bob", "7.50", "2.2500", "6.00", "9.00", "2"}, stats.Rows[1])
	assert.Equal(t, "5", stats.Summary.Values["count"])

	empty := BuildStatsTable("None", "", nil)
	assert.Empty(t, empty.Rows)
}

func TestBuildText(t *testing.T) {
	view := nightAdapter.Bind(nights)
	text := BuildText(view, "hours", "avg", "h", "date")
	assert.Equal(t, "7.00 h", text.Value)
	assert.Equal(t, 5, text.Count)
	assert.Equal(t, "2024-01-01 – 2024-01-03", text.Period)

	count := BuildText(view, "hours", "count", "", "date")
	assert.Equal(t, "5", count.Value)

	none := BuildText(nightAdapter.Bind(nil), "hours", "avg", "h", "date")
	assert.Equal(t, "No data", none.Period)
}
