package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

func breakdown(t *testing.T, recs []dataset.SleepRecord, q BreakdownQuery) []engine.Group {
	t.Helper()
	groups, err := BreakdownRecords(dataset.Default().Employees(), recs, q)
	require.NoError(t, err)
	return groups
}

func TestBreakdownWholeSelection(t *testing.T) {
	subject := ObservationsForSubject(records(), 1)

	stats := breakdown(t, subject, BreakdownQuery{Aggregation: "stats"})
	require.Len(t, stats, 1)
	assert.Equal(t, "all", stats[0].Key)
	assert.Equal(t, "Total", stats[0].Label)
	assert.Equal(t, 30, stats[0].Count)
	assert.InDelta(t, 7.042935528120714, stats[0].Mean, delta)
	assert.InDelta(t, 0.20437905491468797, stats[0].Variance, delta)
	assert.InDelta(t, 6.068810013717421, stats[0].Min, delta)
	assert.InDelta(t, 7.947033607681756, stats[0].Max, delta)

	sum := breakdown(t, subject, BreakdownQuery{Aggregation: "sum"})
	require.Len(t, sum, 1)
	assert.InDelta(t, 30*7.042935528120714, sum[0].Value, 1e-6)

	variance := breakdown(t, subject, BreakdownQuery{Aggregation: "variance"})
	assert.InDelta(t, 0.20437905491468797, variance[0].Value, delta)
}

func TestBreakdownByDate(t *testing.T) {
	counts := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyDate, Aggregation: "count", Sort: "date_desc"})
	require.Len(t, counts, 30)
	assert.Equal(t, "2023-12-29", counts[0].Key)
	assert.Equal(t, "2023-11-30", counts[29].Key)
	assert.Equal(t, 50.0, counts[0].Value)

	lows := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyDate, Aggregation: "min", Sort: "date_asc"})
	assert.InDelta(t, 6.00207475994513, lows[0].Value, delta)

	highs := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyDate, Aggregation: "max", Sort: "date_asc"})
	assert.InDelta(t, 7.984585048010974, highs[0].Value, delta)

	averages := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyDate, Sort: "date_asc"})
	assert.InDelta(t, 6.899132373113855, averages[0].Value, delta)
}

func TestBreakdownByEmployee(t *testing.T) {
	top := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "value_desc", Limit: 3})
	require.Len(t, top, 3)
	assert.GreaterOrEqual(t, top[0].Value, top[1].Value)
	assert.GreaterOrEqual(t, top[1].Value, top[2].Value)
	assert.Contains(t, top[0].Label, "Employee ")

	bottom := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "value_asc"})
	require.Len(t, bottom, 50)
	assert.LessOrEqual(t, bottom[0].Value, bottom[49].Value)
	assert.Equal(t, top[0].Key, bottom[49].Key)

	numeric := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "numeric_asc"})
	assert.Equal(t, "1", numeric[0].Key)
	assert.Equal(t, "10", numeric[9].Key)
	assert.Equal(t, "Employee 10", numeric[9].Label)

	byName := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "label_asc"})
	assert.Equal(t, "Employee 1", byName[0].Label)
	assert.Equal(t, "Employee 10", byName[1].Label)

	reversed := breakdown(t, records(), BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Sort: "label_desc"})
	assert.Equal(t, "Employee 9", reversed[0].Label)
}

func TestBreakdownOtherMeasures(t *testing.T) {
	for _, measure := range dataset.RecordMeasures {
		groups := breakdown(t, records(), BreakdownQuery{Measure: measure})
		require.Len(t, groups, 1, measure)
		assert.Positive(t, groups[0].Value, measure)
	}
}

func TestBreakdownRejectsBadQueries(t *testing.T) {
	for _, q := range []BreakdownQuery{
		{GroupBy: "gender"},
		{Measure: "steps"},
		{Aggregation: "median"},
		{Sort: "random"},
		{Limit: -1},
	} {
		_, err := BreakdownRecords(nil, records(), q)
		assert.ErrorIs(t, err, engine.ErrInvalidInput, "%+v", q)
	}
}

func TestBreakdownEmpty(t *testing.T) {
	groups := breakdown(t, nil, BreakdownQuery{GroupBy: dataset.KeyDate})
	assert.Empty(t, groups)
	assert.Empty(t, BreakdownRows(groups))
	assert.Nil(t, BreakdownChart(BreakdownQuery{}, groups))
}

func TestBreakdownOutputs(t *testing.T) {
	q := BreakdownQuery{GroupBy: dataset.KeyDate, Sort: "date_asc"}
	groups := breakdown(t, records(), q)

	assert.Equal(t, "Average Duration by Date", BreakdownTitle(q))
	assert.Equal(t, "Total Deep sleep", BreakdownTitle(BreakdownQuery{Measure: dataset.KeyDeepSleep, Aggregation: "sum"}))

	chart := BreakdownChart(q, groups)
	require.NotNil(t, chart)
	assert.Equal(t, "line", chart.ChartType)
	require.Len(t, chart.Series, 1)
	assert.Len(t, chart.Series[0].Data, 30)
	assert.Equal(t, "2023-11-30", chart.Series[0].Data[0].Label)
	assert.Equal(t, 6.9, chart.Series[0].Data[0].Value)

	table := BreakdownTable(q, groups)
	assert.Equal(t, []string{"Date", "Average", "Count"}, table.Headers())
	assert.Equal(t, []string{"2023-11-30", "6.90", "50"}, table.Rows[0])
	assert.Equal(t, "1,500", table.Summary.Values["count"])

	stats := BreakdownQuery{GroupBy: dataset.KeyEmployeeID, Aggregation: "stats"}
	statsTable := BreakdownTable(stats, breakdown(t, records(), stats))
	assert.Equal(t, "Average Duration by Employee", statsTable.Title)
	assert.Len(t, statsTable.Columns, 6)
	assert.Len(t, statsTable.Rows, 50)
	assert.Equal(t, "bar", BreakdownChart(stats, breakdown(t, records(), stats)).ChartType)

	rows := BreakdownRows(groups)
	require.Len(t, rows, 30)
	assert.Equal(t, 50, rows[0].Count)
	assert.InDelta(t, 6.899132373113855, rows[0].Value, delta)
}
