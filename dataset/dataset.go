package dataset

import (
	"slices"
	"sync"

	"github.com/spektr-org/sleepscope/engine"
)

// Dataset is the generated roster plus its sleep records. It is built once
// and never mutated; accessors hand out copies, views read in place.
type Dataset struct {
	config    GeneratorConfig
	employees []Employee
	records   []SleepRecord
	byID      map[int]int
}

// New generates a dataset from cfg. Both passes share one sequence.
func New(cfg GeneratorConfig) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seq := NewSequence(cfg.Seed)
	employees := GenerateRoster(seq, cfg.Employees)
	records := GenerateSleepRecords(seq, employees, cfg.WindowStart(), cfg.Days)
	return FromCollections(cfg, employees, records), nil
}

// FromCollections wraps already materialized collections, e.g. ones read
// back from an export. The slices are copied.
func FromCollections(cfg GeneratorConfig, employees []Employee, records []SleepRecord) *Dataset {
	ds := &Dataset{
		config:    cfg,
		employees: slices.Clone(employees),
		records:   slices.Clone(records),
		byID:      make(map[int]int, len(employees)),
	}
	for i, e := range ds.employees {
		ds.byID[e.ID] = i
	}
	return ds
}

var (
	defaultOnce sync.Once
	defaultSet  *Dataset
)

// Default returns the canonical dataset (seed 12345, 50 employees, 30 days),
// generated on first use.
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := New(DefaultGeneratorConfig())
		if err != nil {
			panic("dataset: default configuration rejected: " + err.Error())
		}
		defaultSet = ds
	})
	return defaultSet
}

// Config returns the parameters the dataset was generated from.
func (d *Dataset) Config() GeneratorConfig { return d.config }

// Employees returns a copy of the roster in id order.
func (d *Dataset) Employees() []Employee { return slices.Clone(d.employees) }

// Records returns a copy of every sleep record in generation order.
func (d *Dataset) Records() []SleepRecord { return slices.Clone(d.records) }

// Employee looks up one employee by id.
func (d *Dataset) Employee(id int) (Employee, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Employee{}, false
	}
	return d.employees[i], true
}

// EmployeeView binds the roster to an engine view without copying.
func (d *Dataset) EmployeeView() engine.RecordView { return EmployeeAdapter.Bind(d.employees) }

// RecordView binds the sleep records to an engine view without copying.
func (d *Dataset) RecordView() engine.RecordView { return RecordAdapter.Bind(d.records) }
