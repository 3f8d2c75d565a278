package schema

// ============================================================================
// SCHEMA: Describes the shape of a dataset for API clients and exports
// ============================================================================
// Built from a live dataset so sample values reflect what was generated.
// The HTTP API serves it at /schema; table and workbook exporters read
// display names and units from it.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Collections []Collection `json:"collections" yaml:"collections"`

	// Generator parameters the dataset was built from
	Seed       int64  `json:"seed" yaml:"seed"`
	WindowFrom string `json:"windowFrom" yaml:"windowFrom"`
	WindowTo   string `json:"windowTo" yaml:"windowTo"`
}

// Collection is one record type of the dataset (employees, sleep records).
type Collection struct {
	Key        string          `json:"key" yaml:"key"`
	Records    int             `json:"records" yaml:"records"`
	Dimensions []DimensionMeta `json:"dimensions" yaml:"dimensions"`
	Measures   []MeasureMeta   `json:"measures" yaml:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key            string   `json:"key" yaml:"key"`
	DisplayName    string   `json:"displayName" yaml:"displayName"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	SampleValues   []string `json:"sampleValues" yaml:"sampleValues"`
	Groupable      bool     `json:"groupable" yaml:"groupable"`
	Filterable     bool     `json:"filterable" yaml:"filterable"`
	IsTemporal     bool     `json:"isTemporal,omitempty" yaml:"isTemporal,omitempty"`
	TemporalFormat string   `json:"temporalFormat,omitempty" yaml:"temporalFormat,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string   `json:"key" yaml:"key"`
	DisplayName        string   `json:"displayName" yaml:"displayName"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	Unit               string   `json:"unit,omitempty" yaml:"unit,omitempty"` // "hours", "percent", "years", "cm", "kg"
	Aggregations       []string `json:"aggregations,omitempty" yaml:"aggregations,omitempty"`
	DefaultAggregation string   `json:"defaultAggregation,omitempty" yaml:"defaultAggregation,omitempty"`
	Min                float64  `json:"min" yaml:"min"`
	Max                float64  `json:"max" yaml:"max"`
	Format             string   `json:"format,omitempty" yaml:"format,omitempty"` // "0.00", "0"
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key, displayName string, samples []string) DimensionMeta {
	return DimensionMeta{
		Key:          key,
		DisplayName:  displayName,
		SampleValues: samples,
		Groupable:    true,
		Filterable:   true,
	}
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key, displayName, unit string) MeasureMeta {
	return MeasureMeta{
		Key:                key,
		DisplayName:        displayName,
		Unit:               unit,
		Aggregations:       []string{"avg", "min", "max", "variance", "count"},
		DefaultAggregation: "avg",
		Format:             "0.00",
	}
}

// Collection returns the collection with key, if present.
func (c Config) Collection(key string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.Key == key {
			return col, true
		}
	}
	return Collection{}, false
}

// DimensionKeys returns all dimension keys.
func (c Collection) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Collection) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// DisplayName resolves a dimension or measure key to its display name,
// falling back to the key itself.
func (c Collection) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}
