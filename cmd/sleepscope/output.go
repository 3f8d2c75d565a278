package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/sleepscope/helpers"
)

// ============================================================================
// OUTPUT: json, pretty, yaml, csv, text, xlsx
// ============================================================================

func render(w io.Writer, result *viewResult, format string) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, result.Value, format)
	case "yaml":
		return writeYAML(w, result.Value)
	case "csv":
		return writeCSV(w, result)
	case "text":
		return writeText(w, result)
	case "xlsx":
		if len(result.Tables) == 0 {
			return fmt.Errorf("this view has no tables to export")
		}
		return helpers.WriteWorkbook(w, result.Tables...)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return enc.Close()
}

// writeCSV writes the first table; views without tables fall back to a
// single Summary row.
func writeCSV(w io.Writer, result *viewResult) error {
	if len(result.Tables) > 0 {
		return helpers.WriteTableCSV(w, result.Tables[0])
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{{"Summary"}, {result.Text}}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// writeText prints the one-line answer when there is one, otherwise every
// table aligned in columns.
func writeText(w io.Writer, result *viewResult) error {
	if result.Text != "" {
		_, err := fmt.Fprintln(w, result.Text)
		return err
	}
	if len(result.Tables) == 0 {
		_, err := fmt.Fprintln(w, "No result.")
		return err
	}

	for i, table := range result.Tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, table.Title)
		if len(table.Columns) == 0 {
			fmt.Fprintln(w, "(no rows)")
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Headers(), "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if table.Summary != nil {
			row := make([]string, len(table.Columns))
			row[0] = table.Summary.Label
			for j, col := range table.Columns[1:] {
				row[j+1] = table.Summary.Values[col.Key]
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
