package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// GENERATOR: Deterministic roster and sleep records
// ============================================================================
// One Sequence feeds both passes: the roster consumes 2 draws per employee,
// then the sleep records continue from the same state with 4 draws each.
// Draw order is part of the output contract.
// ============================================================================

// Canonical generator parameters.
const (
	DefaultSeed      int64 = 12345
	DefaultEmployees       = 50
	DefaultDays            = 30
)

// DefaultReferenceDate is the fixed "today" the observation window ends at.
var DefaultReferenceDate = time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC)

// GeneratorConfig parameterizes dataset generation.
type GeneratorConfig struct {
	Seed          int64
	Employees     int
	Days          int
	ReferenceDate time.Time
}

// DefaultGeneratorConfig returns the canonical parameters.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          DefaultSeed,
		Employees:     DefaultEmployees,
		Days:          DefaultDays,
		ReferenceDate: DefaultReferenceDate,
	}
}

// Validate rejects configurations that cannot produce a dataset.
func (c GeneratorConfig) Validate() error {
	if c.Seed < 0 {
		return fmt.Errorf("seed %d must not be negative: %w", c.Seed, engine.ErrInvalidInput)
	}
	if c.Employees <= 0 {
		return fmt.Errorf("employee count %d must be positive: %w", c.Employees, engine.ErrInvalidInput)
	}
	if c.Days <= 0 {
		return fmt.Errorf("day count %d must be positive: %w", c.Days, engine.ErrInvalidInput)
	}
	if c.ReferenceDate.IsZero() {
		return fmt.Errorf("reference date is required: %w", engine.ErrInvalidInput)
	}
	return nil
}

// WindowStart returns the first generated date: Days days before the
// reference date.
func (c GeneratorConfig) WindowStart() time.Time {
	ref := c.ReferenceDate.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -c.Days)
}

// ============================================================================
// ROSTER
// ============================================================================

// GenerateRoster draws n employees from seq. Employee i (0-based) gets
// id i+1, gender by parity, department round-robin and age 25 + i%30.
func GenerateRoster(seq *Sequence, n int) []Employee {
	employees := make([]Employee, 0, n)
	for i := 0; i < n; i++ {
		gender := Genders[i%2]

		baseHeight, baseWeight := 165.0, 60.0
		if gender == Male {
			baseHeight, baseWeight = 175.0, 75.0
		}
		height := roundHalfUp(baseHeight + noise(seq.Next(), 20))
		weight := roundHalfUp(baseWeight + noise(seq.Next(), 30))

		employees = append(employees, Employee{
			ID:         i + 1,
			Name:       fmt.Sprintf("Employee %d", i+1),
			Department: Departments[i%len(Departments)],
			Age:        25 + i%30,
			Gender:     gender,
			Height:     height,
			Weight:     weight,
		})
	}
	return employees
}

// ============================================================================
// SLEEP RECORDS
// ============================================================================

// GenerateSleepRecords draws days records per employee, employee-major and
// date-minor, for the window [start, start+days).
func GenerateSleepRecords(seq *Sequence, employees []Employee, start time.Time, days int) []SleepRecord {
	records := make([]SleepRecord, 0, len(employees)*days)
	for _, e := range employees {
		for d := 0; d < days; d++ {
			date := start.AddDate(0, 0, d)

			duration := clamp(7+noise(seq.Next(), 2), 4, 10)

			efficiencyBase := 80.0
			if isWeekend(date) {
				efficiencyBase = 85
			}
			efficiency := clamp(efficiencyBase+noise(seq.Next(), 20), 60, 98)

			deep := clamp(20+noise(seq.Next(), 15), 10, 35)
			rem := clamp(23+noise(seq.Next(), 15), 15, 30)

			records = append(records, SleepRecord{
				EmployeeID:           e.ID,
				Date:                 date.Format(engine.DateLayout),
				Duration:             duration,
				Efficiency:           efficiency,
				DeepSleepPercentage:  deep,
				RemSleepPercentage:   rem,
				LightSleepPercentage: 100 - deep - rem,
			})
		}
	}
	return records
}

// noise maps a draw in [0,1) onto [-spread/2, spread/2).
// The explicit conversion keeps the product rounded before it is added,
// so fused multiply-add cannot change the result.
func noise(draw, spread float64) float64 {
	return float64((draw - 0.5) * spread)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
