package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

func newTestDashboard(t *testing.T) (*Dashboard, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewDashboard(dataset.Default(), WithLogger(zap.New(core))), logs
}

func TestDashboardOverview(t *testing.T) {
	d, logs := newTestDashboard(t)

	overview, err := d.Overview(dataset.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 50, overview.Employees)
	assert.Len(t, overview.Averages, 30)
	assert.Len(t, overview.BoxPlots, 30)
	assert.Len(t, overview.Histogram, 12)
	assert.Len(t, overview.Charts, 3)
	assert.Equal(t, 1500, overview.Summary.Count)
	assert.Equal(t, "2023-11-30 – 2023-12-29", overview.Summary.Period)

	assert.Equal(t, 1, logs.FilterMessage("📊 overview built").Len())
}

func TestDashboardOverviewFiltered(t *testing.T) {
	d, _ := newTestDashboard(t)

	overview, err := d.Overview(dataset.Filter{
		Gender:    dataset.Male,
		DateRange: &dataset.DateRange{Start: "2023-12-01", End: "2023-12-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, 25, overview.Employees)
	assert.Len(t, overview.Averages, 10)
	assert.Equal(t, "2023-12-01", overview.Averages[0].Date)
	assert.Equal(t, 250, overview.Summary.Count)
}

func TestDashboardOverviewNoMatch(t *testing.T) {
	d, _ := newTestDashboard(t)

	overview, err := d.Overview(dataset.Filter{AgeRange: &dataset.IntRange{Min: 80, Max: 90}})
	require.NoError(t, err)
	assert.Zero(t, overview.Employees)
	assert.Empty(t, overview.Averages)
	assert.Empty(t, overview.BoxPlots)
	assert.Equal(t, "No data", overview.Summary.Period)
	assert.Len(t, overview.Charts, 1, "only the histogram has fixed bins")
}

func TestDashboardIndividual(t *testing.T) {
	d, _ := newTestDashboard(t)

	page, err := d.Individual(dataset.Filter{Gender: dataset.Female})
	require.NoError(t, err)
	assert.Len(t, page.Comparison, 25)
	assert.Len(t, page.Scatter, 25)
	assert.Len(t, page.Charts, 3)
	for _, s := range page.Comparison {
		assert.Equal(t, dataset.Female, s.Gender)
	}
}

func TestDashboardErrors(t *testing.T) {
	d, logs := newTestDashboard(t)

	_, err := d.Profile(404, "all")
	assert.ErrorIs(t, err, engine.ErrNotFound)

	_, err = d.Profile(1, "fortnight")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = d.EmployeeStats(1, "year")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = d.DistributionForDate("yesterday")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = d.Comparison(dataset.Filter{Gender: "unknown"})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Equal(t, 1, logs.FilterMessage("⚠️ filter rejected").Len())
}

func TestDashboardLookups(t *testing.T) {
	d := NewDashboard(dataset.Default())

	values, err := d.DistributionForDate("2023-12-15")
	require.NoError(t, err)
	assert.Len(t, values, 50)

	assert.Len(t, d.EmployeeRecords(10), 30)
	assert.Empty(t, d.EmployeeRecords(0))

	stats, err := d.EmployeeStats(10, "month")
	require.NoError(t, err)
	assert.Len(t, stats, 2)

	profile, err := d.Profile(10, "week")
	require.NoError(t, err)
	assert.Equal(t, "Employee 10", profile.Employee.Name)
	assert.Len(t, profile.Spread, len(profile.Stats))

	summary, err := d.Summary(dataset.Filter{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1500, summary.Count)
	assert.Equal(t, "h", summary.Unit)
}

func TestDashboardSummaryAggregations(t *testing.T) {
	d, _ := newTestDashboard(t)
	all := dataset.Filter{}

	count, err := d.Summary(all, "", "count")
	require.NoError(t, err)
	assert.Equal(t, "1,500", count.Value)
	assert.Empty(t, count.Unit)

	avg, err := d.Summary(all, dataset.KeyDuration, "avg")
	require.NoError(t, err)
	low, err := d.Summary(all, dataset.KeyDuration, "min")
	require.NoError(t, err)
	high, err := d.Summary(all, dataset.KeyDuration, "max")
	require.NoError(t, err)
	assert.Less(t, low.RawValue, avg.RawValue)
	assert.Greater(t, high.RawValue, avg.RawValue)

	total, err := d.Summary(all, dataset.KeyDuration, "sum")
	require.NoError(t, err)
	assert.InDelta(t, avg.RawValue*1500, total.RawValue, 1e-6)

	variance, err := d.Summary(all, dataset.KeyDuration, "variance")
	require.NoError(t, err)
	assert.Positive(t, variance.RawValue)
	assert.Empty(t, variance.Unit)

	efficiency, err := d.Summary(all, dataset.KeyEfficiency, "avg")
	require.NoError(t, err)
	assert.Equal(t, "%", efficiency.Unit)
	assert.Contains(t, efficiency.Value, " %")

	_, err = d.Summary(all, "steps", "avg")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = d.Summary(all, "", "median")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestDashboardBreakdown(t *testing.T) {
	d, logs := newTestDashboard(t)

	b, err := d.Breakdown(dataset.Filter{Gender: dataset.Male}, BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "value_desc", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "duration", b.Query.Measure)
	assert.Equal(t, "avg", b.Query.Aggregation)
	assert.Equal(t, "Average Duration by Employee", b.Title)
	assert.Len(t, b.Rows, 5)
	assert.Len(t, b.Table.Rows, 5)
	require.NotNil(t, b.Chart)
	assert.Equal(t, "bar", b.Chart.ChartType)
	assert.Equal(t, 1, logs.FilterMessage("📊 breakdown built").Len())

	b, err = d.Breakdown(dataset.Filter{AgeRange: &dataset.IntRange{Min: 80, Max: 90}}, BreakdownQuery{})
	require.NoError(t, err)
	assert.Empty(t, b.Rows)
	assert.Nil(t, b.Chart)

	_, err = d.Breakdown(dataset.Filter{}, BreakdownQuery{GroupBy: "department"})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = d.Breakdown(dataset.Filter{Gender: "robot"}, BreakdownQuery{})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestDashboardHistogramOption(t *testing.T) {
	d := NewDashboard(dataset.Default(), WithHistogram(HistogramConfig{Min: 6, Max: 8, Width: 1}))
	bins, err := d.Histogram(dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 1500, bins[0].Count+bins[1].Count)
}

func TestDashboardExportTables(t *testing.T) {
	d := NewDashboard(dataset.Default())

	tables, err := d.ExportTables(dataset.Filter{Gender: dataset.Male})
	require.NoError(t, err)
	require.Len(t, tables, 4)

	titles := make([]string, len(tables))
	for i, table := range tables {
		titles[i] = table.Title
	}
	assert.Equal(t, []string{"Employees", "Sleep Records", "Daily Averages", "Employee Stats"}, titles)
	assert.Len(t, tables[0].Rows, 25)
	assert.Len(t, tables[1].Rows, 750)
	assert.Len(t, tables[2].Rows, 30)
	assert.Len(t, tables[3].Rows, 25)
	assert.Equal(t, "2023-11-30", tables[2].Rows[0][0])
}
