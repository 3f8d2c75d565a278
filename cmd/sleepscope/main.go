package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spektr-org/sleepscope"
	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/config"
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/helpers"
	"github.com/spektr-org/sleepscope/logger"
	"github.com/spektr-org/sleepscope/server"
)

// ============================================================================
// SLEEPSCOPE CLI: Sleep statistics for a synthetic workforce
// ============================================================================

// options carries the parsed command line.
type options struct {
	ConfigPath   string
	Serve        bool
	EmployeesCSV string
	RecordsCSV   string
	Format       string
	OutFile      string
	Request      viewRequest
}

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	view := flag.String("view", "overview", "View to compute (see Views below)")
	serve := flag.Bool("serve", false, "Start the HTTP API instead of printing a view")
	date := flag.String("date", "", "Date for --view distribution (YYYY-MM-DD)")
	employee := flag.Int("employee", 0, "Employee id for --view employee, stats, profile")
	period := flag.String("period", "all", "Bucket for stats/profile: week, month, all")
	values := flag.String("values", "", "Comma-separated numbers for --view quartiles")
	groupBy := flag.String("group-by", "", "Breakdown grouping: employee_id, date (empty = whole selection)")
	measure := flag.String("measure", "", "Measure for breakdown/summary: "+strings.Join(dataset.RecordMeasures, ", "))
	aggregation := flag.String("aggregation", "", "Aggregation for breakdown/summary: "+strings.Join(analytics.Aggregations, ", "))
	sortBy := flag.String("sort", "", "Breakdown order: "+strings.Join(analytics.SortModes, ", "))
	limit := flag.Int("limit", 0, "Keep only the first N breakdown groups (0 = all)")
	gender := flag.String("gender", "", "Filter: male, female, other")
	ageMin := flag.Int("age-min", unset, "Filter: minimum age")
	ageMax := flag.Int("age-max", unset, "Filter: maximum age")
	heightMin := flag.Int("height-min", unset, "Filter: minimum height (cm)")
	heightMax := flag.Int("height-max", unset, "Filter: maximum height (cm)")
	weightMin := flag.Int("weight-min", unset, "Filter: minimum weight (kg)")
	weightMax := flag.Int("weight-max", unset, "Filter: maximum weight (kg)")
	start := flag.String("start", "", "Filter: first date (YYYY-MM-DD)")
	end := flag.String("end", "", "Filter: last date (YYYY-MM-DD), needs --start")
	employeesCSV := flag.String("employees-csv", "", "Load the roster from a CSV export instead of generating it")
	recordsCSV := flag.String("records-csv", "", "Load sleep records from a CSV export instead of generating them")
	format := flag.String("format", "json", "Output format: json, pretty, yaml, csv, text, xlsx")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Sleepscope: sleep statistics for a synthetic workforce

Usage:
  sleepscope --view overview --format pretty
  sleepscope --view comparison --gender female --age-max 40 --format csv --out comparison.csv
  sleepscope --view profile --employee 7 --period week --format yaml
  sleepscope --view breakdown --group-by employee_id --sort value_desc --limit 5 --format text
  sleepscope --view summary --measure efficiency --aggregation max --format text
  sleepscope --view export --format xlsx --out sleep.xlsx
  sleepscope --serve --config sleepscope.yaml

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Views:
  %s

Environment:
  SLEEPSCOPE_*      Overrides config keys, e.g. SLEEPSCOPE_SERVER_PORT=9090

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  yaml      YAML document
  csv       Table data as CSV (ready for Sheets/Excel)
  text      Human-readable table or summary
  xlsx      Excel workbook, one sheet per table (needs --out)
`, viewNames())
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("sleepscope %s\n", sleepscope.Version)
		return
	}

	f := dataset.Filter{
		Gender:      dataset.Gender(strings.ToLower(*gender)),
		AgeRange:    rangeFlag(*ageMin, *ageMax, dataset.DefaultFilterBounds.Age),
		HeightRange: rangeFlag(*heightMin, *heightMax, dataset.DefaultFilterBounds.Height),
		WeightRange: rangeFlag(*weightMin, *weightMax, dataset.DefaultFilterBounds.Weight),
	}
	if *start != "" || *end != "" {
		f.DateRange = &dataset.DateRange{Start: *start, End: *end}
	}

	err := run(options{
		ConfigPath:   *configPath,
		Serve:        *serve,
		EmployeesCSV: *employeesCSV,
		RecordsCSV:   *recordsCSV,
		Format:       *format,
		OutFile:      *outFile,
		Request: viewRequest{
			View:     *view,
			Filter:   f,
			Date:     *date,
			Employee: *employee,
			Period:   *period,
			Values:   *values,
			Breakdown: analytics.BreakdownQuery{
				GroupBy:     *groupBy,
				Measure:     *measure,
				Aggregation: *aggregation,
				Sort:        *sortBy,
				Limit:       *limit,
			},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one invocation. Deferred cleanup (log sync, output file
// close) always happens before main decides the exit code.
func run(opts options) (err error) {
	if opts.Format == "xlsx" && opts.OutFile == "" && !opts.Serve {
		return fmt.Errorf("--format xlsx needs --out")
	}

	// ── Config & logging ──────────────────────────────────────────────────
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, "sleepscope")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// ── Dataset ───────────────────────────────────────────────────────────
	ds, err := loadDataset(cfg, opts.EmployeesCSV, opts.RecordsCSV)
	if err != nil {
		return fmt.Errorf("failed to build dataset: %w", err)
	}
	log.Info("📋 dataset ready",
		zap.Int("employees", len(ds.Employees())),
		zap.Int("records", len(ds.Records())),
		zap.Int64("seed", ds.Config().Seed),
	)

	dash := analytics.NewDashboard(ds,
		analytics.WithLogger(log),
		analytics.WithHistogram(cfg.HistogramConfig()),
	)

	// ── Serve mode ────────────────────────────────────────────────────────
	if opts.Serve {
		if err := server.New(cfg, dash, log).Run(context.Background()); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	// ── View mode ─────────────────────────────────────────────────────────
	result, err := buildView(dash, opts.Request)
	if err != nil {
		return fmt.Errorf("view %q failed: %w", opts.Request.View, err)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if opts.OutFile != "" {
		file, err := os.Create(opts.OutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		writer = file
	}

	if err := render(writer, result, opts.Format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if opts.OutFile != "" {
		log.Info("📄 output written", zap.String("path", opts.OutFile), zap.String("format", opts.Format))
	}
	return nil
}

// loadDataset generates the configured dataset, or reads both collections
// back from CSV exports when both paths are given.
func loadDataset(cfg *config.Config, employeesPath, recordsPath string) (*dataset.Dataset, error) {
	gen, err := cfg.GeneratorConfig()
	if err != nil {
		return nil, err
	}
	if employeesPath == "" && recordsPath == "" {
		return dataset.New(gen)
	}
	if employeesPath == "" || recordsPath == "" {
		return nil, fmt.Errorf("--employees-csv and --records-csv must be given together")
	}

	ef, err := os.Open(employeesPath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()
	employees, err := helpers.ParseEmployeesCSV(ef)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", employeesPath, err)
	}

	rf, err := os.Open(recordsPath)
	if err != nil {
		return nil, err
	}
	defer rf.Close()
	records, err := helpers.ParseRecordsCSV(rf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", recordsPath, err)
	}

	return dataset.FromCollections(gen, employees, records), nil
}

// unset marks an integer filter flag that was not given.
const unset = -1

// rangeFlag builds a range when either bound is set, filling the other
// from the slider defaults.
func rangeFlag(lo, hi int, bounds dataset.IntRange) *dataset.IntRange {
	if lo == unset && hi == unset {
		return nil
	}
	r := bounds
	if lo != unset {
		r.Min = lo
	}
	if hi != unset {
		r.Max = hi
	}
	return &r
}
