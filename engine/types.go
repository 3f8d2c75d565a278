package engine

// ============================================================================
// ENGINE TYPES: Statistics over any RecordView
// ============================================================================
// Filters select records, Groups carry per-bucket statistics, and the
// chart/table/text types are render-ready outputs for dashboards and CLIs.
//
// Dependency: engine imports only the standard library.
// ============================================================================

// ============================================================================
// FILTERS
// ============================================================================

// Filters define which records to include.
//
// Dimensions: OR within a dimension, AND across dimensions (case-insensitive).
// Measures:   inclusive numeric ranges, AND-combined.
// Spans:      inclusive lexical ranges over dimensions (ISO dates sort lexically).
//
// An empty Filters value selects every record.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions,omitempty"`
	Measures   map[string]Range    `json:"measures,omitempty"`
	Spans      map[string]Span     `json:"spans,omitempty"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Span is an inclusive lexical interval. An empty bound is open.
type Span struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Contains reports whether v lies within the span.
func (s Span) Contains(v string) bool {
	if s.From != "" && v < s.From {
		return false
	}
	if s.To != "" && v > s.To {
		return false
	}
	return true
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return len(f.Measures) == 0 && len(f.Spans) == 0
}

// ============================================================================
// GROUP: Intermediate computation result
// ============================================================================

// Group represents one bucket of a grouped view.
// Value holds the requested aggregation; Mean/Variance/Min/Max are filled
// by the "stats" aggregation.
type Group struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Value    float64    `json:"value"`
	Count    int        `json:"count"`
	Mean     float64    `json:"mean,omitempty"`
	Variance float64    `json:"variance,omitempty"`
	Min      float64    `json:"min,omitempty"`
	Max      float64    `json:"max,omitempty"`
	View     RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series,omitempty"`
	Boxes      []BoxPlot     `json:"boxes,omitempty"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
// X is only set for scatter charts; Color overrides the series colour.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x,omitempty"`
	Color string  `json:"color,omitempty"`
}

// BoxPlot is one box of a box-and-whisker chart.
type BoxPlot struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	FiveNumberSummary
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// Headers returns the column labels in order.
func (t *TableData) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	return headers
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a one-line answer: a formatted value plus context.
type TextData struct {
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Unit     string  `json:"unit"`
	Period   string  `json:"period"`
	Count    int     `json:"count"`
}
