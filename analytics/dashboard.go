package analytics

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// DASHBOARD: Filter → aggregate → render-ready output
// ============================================================================
// Entry point for the CLI and the HTTP API.
//
// Pipeline per call:
//   1. Apply the Filter to the dataset (employees, then their records)
//   2. Run the aggregation functions on the selection
//   3. Bundle results with chart configs
//
// The dataset is shared and never mutated, so a Dashboard is safe for
// concurrent use.
// ============================================================================

// Dashboard serves statistics over one immutable dataset.
type Dashboard struct {
	ds   *dataset.Dataset
	opts *options
}

// NewDashboard wraps ds.
//
// Options:
//   - WithLogger(logger): structured logs for each computation
//   - WithHistogram(cfg): duration histogram span and bin width
func NewDashboard(ds *dataset.Dataset, opts ...Option) *Dashboard {
	return &Dashboard{ds: ds, opts: applyOptions(opts)}
}

// Dataset returns the underlying dataset.
func (d *Dashboard) Dataset() *dataset.Dataset { return d.ds }

// Overview is the aggregate page: daily averages, daily spreads and the
// duration histogram of the filtered selection.
type Overview struct {
	Summary   *engine.TextData      `json:"summary" yaml:"summary"`
	Employees int                   `json:"employees" yaml:"employees"`
	Averages  []DateAverage         `json:"averages" yaml:"averages"`
	BoxPlots  []DateBoxPlot         `json:"boxPlots" yaml:"boxPlots"`
	Histogram []engine.Bin          `json:"histogram" yaml:"histogram"`
	Charts    []*engine.ChartConfig `json:"charts,omitempty" yaml:"-"`
}

// Individual is the comparison page: per-employee statistics and the
// average/variance scatter of the filtered selection.
type Individual struct {
	Comparison []EmployeeStats       `json:"comparison" yaml:"comparison"`
	Scatter    []ScatterPoint        `json:"scatter" yaml:"scatter"`
	Charts     []*engine.ChartConfig `json:"charts,omitempty" yaml:"-"`
}

// Select applies f to the dataset.
func (d *Dashboard) Select(f dataset.Filter) (dataset.Selection, error) {
	start := time.Now()
	sel, err := d.ds.Apply(f)
	if err != nil {
		d.opts.Logger.Warn("⚠️ filter rejected", zap.Error(err))
		return dataset.Selection{}, err
	}
	d.opts.Logger.Debug("🔍 filter applied",
		zap.Int("employees", len(sel.Employees)),
		zap.Int("records", len(sel.Records)),
		zap.Duration("took", time.Since(start)),
	)
	return sel, nil
}

// AverageByDate averages the filtered records per date.
func (d *Dashboard) AverageByDate(f dataset.Filter) ([]DateAverage, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	return AverageByDate(sel.Records), nil
}

// DistributionForDate returns every duration recorded on date.
func (d *Dashboard) DistributionForDate(date string) ([]float64, error) {
	if _, err := time.Parse(engine.DateLayout, date); err != nil {
		return nil, fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, engine.ErrInvalidInput)
	}
	return DistributionForDate(d.ds.Records(), date), nil
}

// EmployeeRecords returns one employee's records; unknown ids yield none.
func (d *Dashboard) EmployeeRecords(id int) []dataset.SleepRecord {
	return ObservationsForSubject(d.ds.Records(), id)
}

// EmployeeStats buckets one employee's records by period name.
func (d *Dashboard) EmployeeStats(id int, period string) ([]PeriodStats, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return StatsForSubjectByPeriod(d.ds.Records(), id, p)
}

// Profile builds the single-employee view. Unknown ids are ErrNotFound.
func (d *Dashboard) Profile(id int, period string) (*EmployeeProfile, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	employee, ok := d.ds.Employee(id)
	if !ok {
		return nil, fmt.Errorf("employee %d: %w", id, engine.ErrNotFound)
	}
	profile, err := BuildProfile(employee, d.ds.Records(), p)
	if err != nil {
		return nil, err
	}
	d.opts.Logger.Debug("👤 profile built", zap.Int("employee", id), zap.String("period", string(p)), zap.Int("buckets", len(profile.Stats)))
	return profile, nil
}

// BoxPlots summarizes the filtered durations per date.
func (d *Dashboard) BoxPlots(f dataset.Filter) ([]DateBoxPlot, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	return BoxPlotByDate(sel.Records)
}

// Histogram bins the filtered durations.
func (d *Dashboard) Histogram(f dataset.Filter) ([]engine.Bin, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	return DurationHistogram(sel.Records, d.opts.Histogram)
}

// Comparison computes per-employee statistics for the filtered selection.
func (d *Dashboard) Comparison(f dataset.Filter) ([]EmployeeStats, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	return CompareEmployees(sel.Employees, sel.Records)
}

// Summary describes one statistic of the filtered selection in one line.
// An empty measure means duration and an empty aggregation means avg.
func (d *Dashboard) Summary(f dataset.Filter, measure, aggregation string) (*engine.TextData, error) {
	q := BreakdownQuery{Measure: measure, Aggregation: aggregation}.Normalize()
	if err := validateStatistic(q.Measure, q.Aggregation); err != nil {
		return nil, err
	}
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	return summarizeMeasure(sel, q.Measure, q.Aggregation), nil
}

func summarize(sel dataset.Selection) *engine.TextData {
	return summarizeMeasure(sel, dataset.KeyDuration, "avg")
}

func summarizeMeasure(sel dataset.Selection, measure, aggregation string) *engine.TextData {
	return engine.BuildText(dataset.RecordAdapter.Bind(sel.Records),
		measure, aggregation, measureUnit(measure, aggregation), dataset.KeyDate)
}

// Breakdown groups the filtered records per q.
type Breakdown struct {
	Query BreakdownQuery      `json:"query" yaml:"query"`
	Title string              `json:"title" yaml:"title"`
	Rows  []BreakdownRow      `json:"rows" yaml:"rows"`
	Table *engine.TableData   `json:"-" yaml:"-"`
	Chart *engine.ChartConfig `json:"chart,omitempty" yaml:"-"`
}

// Breakdown aggregates one measure of the filtered records per group.
func (d *Dashboard) Breakdown(f dataset.Filter, q BreakdownQuery) (*Breakdown, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	groups, err := BreakdownRecords(sel.Employees, sel.Records, q)
	if err != nil {
		return nil, err
	}

	d.opts.Logger.Info("📊 breakdown built",
		zap.String("group_by", q.GroupBy),
		zap.String("measure", q.Measure),
		zap.String("aggregation", q.Aggregation),
		zap.Int("groups", len(groups)),
	)
	return &Breakdown{
		Query: q,
		Title: BreakdownTitle(q),
		Rows:  BreakdownRows(groups),
		Table: BreakdownTable(q, groups),
		Chart: BreakdownChart(q, groups),
	}, nil
}

// Overview assembles the aggregate page for f.
func (d *Dashboard) Overview(f dataset.Filter) (*Overview, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}

	boxes, err := BoxPlotByDate(sel.Records)
	if err != nil {
		return nil, err
	}
	bins, err := DurationHistogram(sel.Records, d.opts.Histogram)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Summary:   summarize(sel),
		Employees: len(sel.Employees),
		Averages:  AverageByDate(sel.Records),
		BoxPlots:  boxes,
		Histogram: bins,
	}
	overview.Charts = nonNil(
		AverageChart(overview.Averages),
		DateBoxPlotChart("Sleep Duration Spread by Date", boxes),
		HistogramChart(bins),
	)

	d.opts.Logger.Info("📊 overview built",
		zap.Int("employees", overview.Employees),
		zap.Int("records", len(sel.Records)),
		zap.Int("dates", len(overview.Averages)),
	)
	return overview, nil
}

// Individual assembles the comparison page for f.
func (d *Dashboard) Individual(f dataset.Filter) (*Individual, error) {
	stats, err := d.Comparison(f)
	if err != nil {
		return nil, err
	}

	scatter := Scatter(stats)
	page := &Individual{
		Comparison: stats,
		Scatter:    scatter,
		Charts: nonNil(
			ComparisonChart(stats),
			ComparisonBoxPlotChart(stats),
			ScatterChart(scatter),
		),
	}

	d.opts.Logger.Info("📊 comparison built", zap.Int("employees", len(stats)))
	return page, nil
}

func nonNil(charts ...*engine.ChartConfig) []*engine.ChartConfig {
	out := make([]*engine.ChartConfig, 0, len(charts))
	for _, c := range charts {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ExportTables renders the filtered selection as the four export tables:
// employees, sleep records, daily averages and per-employee statistics.
func (d *Dashboard) ExportTables(f dataset.Filter) ([]*engine.TableData, error) {
	sel, err := d.Select(f)
	if err != nil {
		return nil, err
	}
	stats, err := CompareEmployees(sel.Employees, sel.Records)
	if err != nil {
		return nil, err
	}
	return []*engine.TableData{
		RosterTable("Employees", sel.Employees),
		RecordsTable("Sleep Records", sel.Records),
		AveragesTable("Daily Averages", AverageByDate(sel.Records)),
		ComparisonTable("Employee Stats", stats),
	}, nil
}
