package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// SEQUENCE
// ============================================================================

func TestSequenceKnownValues(t *testing.T) {
	seq := NewSequence(12345)
	expected := []float64{
		0.4131601508916324,
		0.01388460219478738,
		0.3520061728395062,
		0.22073473936899862,
		0.2651320301783265,
	}
	for i, want := range expected {
		assert.Equal(t, want, seq.Next(), "draw %d", i)
	}
}

func TestSequenceDeterministic(t *testing.T) {
	a, b := NewSequence(DefaultSeed), NewSequence(DefaultSeed)
	for i := 0; i < 10000; i++ {
		va, vb := a.Next(), b.Next()
		require.Equal(t, va, vb, "draw %d", i)
		require.GreaterOrEqual(t, va, 0.0)
		require.Less(t, va, 1.0)
	}
}

func TestSequenceSeedsDiffer(t *testing.T) {
	assert.NotEqual(t, NewSequence(1).Next(), NewSequence(2).Next())
}

// ============================================================================
// ROSTER
// ============================================================================

func TestDefaultRoster(t *testing.T) {
	employees := Default().Employees()
	require.Len(t, employees, 50)

	assert.Equal(t, Employee{ID: 1, Name: "Employee 1", Department: "Engineering", Age: 25, Gender: Male, Height: 173, Weight: 60}, employees[0])
	assert.Equal(t, Employee{ID: 2, Name: "Employee 2", Department: "Marketing", Age: 26, Gender: Female, Height: 162, Weight: 52}, employees[1])
	assert.Equal(t, Employee{ID: 3, Name: "Employee 3", Department: "Sales", Age: 27, Gender: Male, Height: 170, Weight: 66}, employees[2])
	assert.Equal(t, Employee{ID: 50, Name: "Employee 50", Department: "Finance", Age: 44, Gender: Female, Height: 162, Weight: 70}, employees[49])

	for i, e := range employees {
		assert.Equal(t, i+1, e.ID)
		assert.Equal(t, Departments[i%5], e.Department)
		assert.Equal(t, 25+i%30, e.Age)
		assert.NotEqual(t, Other, e.Gender, "generator never produces the third category")
		if i%2 == 0 {
			assert.Equal(t, Male, e.Gender)
		} else {
			assert.Equal(t, Female, e.Gender)
		}
	}
}

func TestRosterConsumesTwoDrawsPerEmployee(t *testing.T) {
	seq := NewSequence(DefaultSeed)
	GenerateRoster(seq, 3)

	ref := NewSequence(DefaultSeed)
	for i := 0; i < 6; i++ {
		ref.Next()
	}
	assert.Equal(t, ref.Next(), seq.Next())
}

// ============================================================================
// SLEEP RECORDS
// ============================================================================

func TestDefaultRecords(t *testing.T) {
	records := Default().Records()
	require.Len(t, records, 1500)

	first := records[0]
	assert.Equal(t, 1, first.EmployeeID)
	assert.Equal(t, "2023-11-30", first.Date)
	assert.InDelta(t, 6.832321673525377, first.Duration, 1e-12)
	assert.InDelta(t, 88.46527777777777, first.Efficiency, 1e-12)
	assert.InDelta(t, 19.83127572016461, first.DeepSleepPercentage, 1e-12)
	assert.InDelta(t, 16.86529063786008, first.RemSleepPercentage, 1e-12)
	assert.InDelta(t, 63.3034336419753, first.LightSleepPercentage, 1e-12)

	last := records[1499]
	assert.Equal(t, 50, last.EmployeeID)
	assert.Equal(t, "2023-12-29", last.Date)
	assert.InDelta(t, 6.920558984910837, last.Duration, 1e-12)
	assert.InDelta(t, 75.417609739369, last.Efficiency, 1e-12)
}

func TestRecordInvariants(t *testing.T) {
	records := Default().Records()
	perEmployee := make(map[int][]string)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Duration, 4.0)
		assert.LessOrEqual(t, r.Duration, 10.0)
		assert.GreaterOrEqual(t, r.Efficiency, 60.0)
		assert.LessOrEqual(t, r.Efficiency, 98.0)
		assert.GreaterOrEqual(t, r.DeepSleepPercentage, 10.0)
		assert.LessOrEqual(t, r.DeepSleepPercentage, 35.0)
		assert.GreaterOrEqual(t, r.RemSleepPercentage, 15.0)
		assert.LessOrEqual(t, r.RemSleepPercentage, 30.0)
		assert.InDelta(t, 100, r.DeepSleepPercentage+r.RemSleepPercentage+r.LightSleepPercentage, 1e-9)
		perEmployee[r.EmployeeID] = append(perEmployee[r.EmployeeID], r.Date)
	}

	require.Len(t, perEmployee, 50)
	start := time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC)
	for id, dates := range perEmployee {
		require.Len(t, dates, 30, "employee %d", id)
		for d, date := range dates {
			assert.Equal(t, start.AddDate(0, 0, d).Format(engine.DateLayout), date)
		}
	}
}

func TestWeekendEfficiencyBase(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Employees, cfg.Days = 1, 7
	ds, err := New(cfg)
	require.NoError(t, err)

	// Window is 2023-11-30..2023-12-06, covering one weekend.
	seq := NewSequence(cfg.Seed)
	GenerateRoster(seq, 1)
	for _, r := range ds.Records() {
		seq.Next()
		draw := seq.Next()
		seq.Next()
		seq.Next()
		date, err := time.Parse(engine.DateLayout, r.Date)
		require.NoError(t, err)
		base := 80.0
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			base = 85
		}
		assert.InDelta(t, clamp(base+(draw-0.5)*20, 60, 98), r.Efficiency, 1e-9, r.Date)
	}
}

func TestGenerationIsIdempotent(t *testing.T) {
	a, err := New(DefaultGeneratorConfig())
	require.NoError(t, err)
	b, err := New(DefaultGeneratorConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Employees(), b.Employees())
	assert.Equal(t, a.Records(), b.Records())
	assert.Equal(t, Default().Records(), Default().Records())
	assert.Same(t, Default(), Default())
}

func TestAccessorsReturnCopies(t *testing.T) {
	ds := Default()
	employees := ds.Employees()
	employees[0].Name = "changed"
	records := ds.Records()
	records[0].Duration = -1

	assert.Equal(t, "Employee 1", ds.Employees()[0].Name)
	assert.NotEqual(t, -1.0, ds.Records()[0].Duration)
}

func TestEmployeeLookup(t *testing.T) {
	e, ok := Default().Employee(7)
	require.True(t, ok)
	assert.Equal(t, "Employee 7", e.Name)

	_, ok = Default().Employee(51)
	assert.False(t, ok)
}

func TestGeneratorConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"negative seed", func(c *GeneratorConfig) { c.Seed = -1 }},
		{"no employees", func(c *GeneratorConfig) { c.Employees = 0 }},
		{"no days", func(c *GeneratorConfig) { c.Days = 0 }},
		{"no reference date", func(c *GeneratorConfig) { c.ReferenceDate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
		})
	}
}

func TestDepartmentColor(t *testing.T) {
	assert.Equal(t, "#ffc658", DepartmentColor("Sales"))
	assert.Equal(t, "#8884d8", DepartmentColor("Legal"))
}
