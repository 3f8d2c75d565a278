package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
	"github.com/spektr-org/sleepscope/schema"
)

// ============================================================================
// VIEWS: One dashboard computation per --view value
// ============================================================================

// viewRequest carries the flags a view may read.
type viewRequest struct {
	View     string
	Filter   dataset.Filter
	Date     string
	Employee int
	Period   string
	Values   string

	// Breakdown also carries the measure and aggregation of the summary view.
	Breakdown analytics.BreakdownQuery
}

// viewResult is what the writers render: Value for json/yaml, Tables for
// csv/xlsx/text and Text for a one-line text answer.
type viewResult struct {
	Value  interface{}
	Tables []*engine.TableData
	Text   string
}

type viewFunc func(d *analytics.Dashboard, req viewRequest) (*viewResult, error)

var views = map[string]viewFunc{
	"roster":       rosterView,
	"records":      recordsView,
	"averages":     averagesView,
	"distribution": distributionView,
	"employee":     employeeView,
	"stats":        statsView,
	"profile":      profileView,
	"quartiles":    quartilesView,
	"boxplots":     boxPlotsView,
	"histogram":    histogramView,
	"comparison":   comparisonView,
	"overview":     overviewView,
	"individual":   individualView,
	"summary":      summaryView,
	"breakdown":    breakdownView,
	"schema":       schemaView,
	"export":       exportView,
}

func viewNames() string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func buildView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	fn, ok := views[req.View]
	if !ok {
		return nil, fmt.Errorf("unknown view %q (want one of: %s): %w", req.View, viewNames(), engine.ErrInvalidInput)
	}
	return fn(d, req)
}

func rosterView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	sel, err := d.Select(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  sel.Employees,
		Tables: []*engine.TableData{analytics.RosterTable("Employees", sel.Employees)},
	}, nil
}

func recordsView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	sel, err := d.Select(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  sel.Records,
		Tables: []*engine.TableData{analytics.RecordsTable("Sleep Records", sel.Records)},
	}, nil
}

func averagesView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	averages, err := d.AverageByDate(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  averages,
		Tables: []*engine.TableData{analytics.AveragesTable("Daily Averages", averages)},
	}, nil
}

func distributionView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("--date is required: %w", engine.ErrInvalidInput)
	}
	values, err := d.DistributionForDate(req.Date)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{fmtNum(v)}
	}
	return &viewResult{
		Value: values,
		Tables: []*engine.TableData{{
			Title:   "Durations on " + req.Date,
			Columns: []engine.Column{{Key: "duration", Label: "Duration", Type: "number", Align: "right"}},
			Rows:    rows,
		}},
	}, nil
}

func requireEmployee(req viewRequest) error {
	if req.Employee <= 0 {
		return fmt.Errorf("--employee is required: %w", engine.ErrInvalidInput)
	}
	return nil
}

func employeeView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	if err := requireEmployee(req); err != nil {
		return nil, err
	}
	records := d.EmployeeRecords(req.Employee)
	return &viewResult{
		Value:  records,
		Tables: []*engine.TableData{analytics.RecordsTable(fmt.Sprintf("Employee %d", req.Employee), records)},
	}, nil
}

func statsView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	if err := requireEmployee(req); err != nil {
		return nil, err
	}
	stats, err := d.EmployeeStats(req.Employee, req.Period)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  stats,
		Tables: []*engine.TableData{analytics.PeriodStatsTable(fmt.Sprintf("Employee %d", req.Employee), stats)},
	}, nil
}

func profileView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	if err := requireEmployee(req); err != nil {
		return nil, err
	}
	profile, err := d.Profile(req.Employee, req.Period)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value: profile,
		Tables: []*engine.TableData{
			analytics.PeriodStatsTable(profile.Employee.Name, profile.Stats),
			analytics.BoxPlotTable("Spread", profile.Spread),
		},
	}, nil
}

func quartilesView(_ *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	values, err := parseValues(req.Values)
	if err != nil {
		return nil, err
	}
	summary, err := engine.Quartiles(values)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value: summary,
		Text: fmt.Sprintf("min %s  q1 %s  median %s  q3 %s  max %s",
			fmtNum(summary.Min), fmtNum(summary.Q1), fmtNum(summary.Median), fmtNum(summary.Q3), fmtNum(summary.Max)),
		Tables: []*engine.TableData{analytics.BoxPlotTable("Quartiles",
			[]analytics.DateBoxPlot{{Date: "values", FiveNumberSummary: summary}})},
	}, nil
}

func boxPlotsView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	boxes, err := d.BoxPlots(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  boxes,
		Tables: []*engine.TableData{analytics.BoxPlotTable("Spread by Date", boxes)},
	}, nil
}

func histogramView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	bins, err := d.Histogram(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  bins,
		Tables: []*engine.TableData{analytics.HistogramTable("Histogram", bins)},
	}, nil
}

func comparisonView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	stats, err := d.Comparison(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  stats,
		Tables: []*engine.TableData{analytics.ComparisonTable("Employee Stats", stats)},
	}, nil
}

func overviewView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	overview, err := d.Overview(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value: overview,
		Text:  summaryLine("Average sleep", overview.Summary, overview.Employees),
		Tables: []*engine.TableData{
			analytics.AveragesTable("Daily Averages", overview.Averages),
			analytics.BoxPlotTable("Spread by Date", overview.BoxPlots),
			analytics.HistogramTable("Histogram", overview.Histogram),
		},
	}, nil
}

func individualView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	page, err := d.Individual(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{
		Value:  page,
		Tables: []*engine.TableData{analytics.ComparisonTable("Employee Stats", page.Comparison)},
	}, nil
}

func summaryView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	sel, err := d.Select(req.Filter)
	if err != nil {
		return nil, err
	}
	q := req.Breakdown
	text, err := d.Summary(req.Filter, q.Measure, q.Aggregation)
	if err != nil {
		return nil, err
	}
	label := "Average sleep"
	if q.Measure != "" || q.Aggregation != "" {
		label = analytics.BreakdownTitle(analytics.BreakdownQuery{Measure: q.Measure, Aggregation: q.Aggregation})
	}
	return &viewResult{Value: text, Text: summaryLine(label, text, len(sel.Employees))}, nil
}

func breakdownView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	b, err := d.Breakdown(req.Filter, req.Breakdown)
	if err != nil {
		return nil, err
	}
	return &viewResult{Value: b, Tables: []*engine.TableData{b.Table}}, nil
}

func schemaView(d *analytics.Dashboard, _ viewRequest) (*viewResult, error) {
	cfg := schema.Describe(d.Dataset())
	var lines []string
	for _, col := range cfg.Collections {
		lines = append(lines, fmt.Sprintf("%s (%s rows): dimensions %s; measures %s",
			col.Key, engine.FormatInt(col.Records),
			strings.Join(col.DimensionKeys(), ", "), strings.Join(col.MeasureKeys(), ", ")))
	}
	return &viewResult{Value: cfg, Text: strings.Join(lines, "\n")}, nil
}

func exportView(d *analytics.Dashboard, req viewRequest) (*viewResult, error) {
	tables, err := d.ExportTables(req.Filter)
	if err != nil {
		return nil, err
	}
	return &viewResult{Value: tables, Tables: tables}, nil
}

// summaryLine renders a selection statistic as one sentence.
func summaryLine(label string, text *engine.TextData, employees int) string {
	if text.Count == 0 {
		return "No records match the filter."
	}
	return fmt.Sprintf("%s %s across %s records from %s employees (%s).",
		label, text.Value, engine.FormatInt(text.Count), engine.FormatInt(employees), text.Period)
}

func parseValues(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("--values is required: %w", engine.ErrInvalidInput)
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number: %w", p, engine.ErrInvalidInput)
		}
		out = append(out, v)
	}
	return out, nil
}
