package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// ============================================================================
// CSV HELPER: Writes collections and tables, parses collections back
// ============================================================================
// Headers match the JSON field names so an export can be read by either
// side. Floats are written in shortest round-trip form; parsing an export
// yields the exact values that were written.
// ============================================================================

// EmployeeHeader is the column order of an employee export.
var EmployeeHeader = []string{"id", "name", "department", "age", "gender", "height", "weight"}

// RecordHeader is the column order of a sleep record export.
var RecordHeader = []string{
	"employeeId", "date", "duration", "efficiency",
	"deepSleepPercentage", "remSleepPercentage", "lightSleepPercentage",
}

// WriteEmployeesCSV writes the roster with a header row.
func WriteEmployeesCSV(w io.Writer, employees []dataset.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EmployeeHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range employees {
		row := []string{
			strconv.Itoa(e.ID),
			e.Name,
			e.Department,
			strconv.Itoa(e.Age),
			string(e.Gender),
			strconv.Itoa(e.Height),
			strconv.Itoa(e.Weight),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write employee %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes sleep records with a header row.
func WriteRecordsCSV(w io.Writer, records []dataset.SleepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.EmployeeID),
			r.Date,
			formatFloat(r.Duration),
			formatFloat(r.Efficiency),
			formatFloat(r.DeepSleepPercentage),
			formatFloat(r.RemSleepPercentage),
			formatFloat(r.LightSleepPercentage),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d/%s: %w", r.EmployeeID, r.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableCSV writes a rendered table: column labels, the rows, then the
// summary row when present.
func WriteTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	if table.Summary != nil && len(table.Columns) > 0 {
		row := make([]string, len(table.Columns))
		row[0] = table.Summary.Label
		for i, col := range table.Columns[1:] {
			row[i+1] = table.Summary.Values[col.Key]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV summary: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseEmployeesCSV parses an employee export. Columns are matched by
// header name in any order; unknown columns are skipped.
func ParseEmployeesCSV(r io.Reader) ([]dataset.Employee, error) {
	var out []dataset.Employee
	err := parseCSV(r, EmployeeHeader, func(line int, get func(string) string) error {
		var e dataset.Employee
		var err error
		if e.ID, err = parseInt(line, "id", get("id")); err != nil {
			return err
		}
		if e.Age, err = parseInt(line, "age", get("age")); err != nil {
			return err
		}
		if e.Height, err = parseInt(line, "height", get("height")); err != nil {
			return err
		}
		if e.Weight, err = parseInt(line, "weight", get("weight")); err != nil {
			return err
		}
		e.Name = get("name")
		e.Department = get("department")
		e.Gender = dataset.Gender(strings.ToLower(get("gender")))
		if !e.Gender.Valid() {
			return fmt.Errorf("line %d: unknown gender %q: %w", line, e.Gender, engine.ErrInvalidInput)
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// ParseRecordsCSV parses a sleep record export.
func ParseRecordsCSV(r io.Reader) ([]dataset.SleepRecord, error) {
	var out []dataset.SleepRecord
	err := parseCSV(r, RecordHeader, func(line int, get func(string) string) error {
		var rec dataset.SleepRecord
		var err error
		if rec.EmployeeID, err = parseInt(line, "employeeId", get("employeeId")); err != nil {
			return err
		}
		rec.Date = get("date")
		if _, err := time.Parse(engine.DateLayout, rec.Date); err != nil {
			return fmt.Errorf("line %d: date %q is not YYYY-MM-DD: %w", line, rec.Date, engine.ErrInvalidInput)
		}
		fields := []struct {
			key string
			dst *float64
		}{
			{"duration", &rec.Duration},
			{"efficiency", &rec.Efficiency},
			{"deepSleepPercentage", &rec.DeepSleepPercentage},
			{"remSleepPercentage", &rec.RemSleepPercentage},
			{"lightSleepPercentage", &rec.LightSleepPercentage},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(get(f.key), 64)
			if err != nil {
				return fmt.Errorf("line %d: %s %q is not a number: %w", line, f.key, get(f.key), engine.ErrInvalidInput)
			}
			*f.dst = v
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// parseCSV reads the header, checks every required column is present and
// calls row for each data line with a by-name accessor.
func parseCSV(r io.Reader, required []string, row func(line int, get func(string) string) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty CSV: %w", engine.ErrInvalidInput)
		}
		return fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	for _, key := range required {
		if _, ok := index[key]; !ok {
			return fmt.Errorf("missing column %q: %w", key, engine.ErrInvalidInput)
		}
	}

	for line := 2; ; line++ {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		get := func(key string) string {
			i := index[key]
			if i >= len(values) {
				return ""
			}
			return strings.TrimSpace(values[i])
		}
		if err := row(line, get); err != nil {
			return err
		}
	}
}

func parseInt(line int, key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s %q is not an integer: %w", line, key, value, engine.ErrInvalidInput)
	}
	return n, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
