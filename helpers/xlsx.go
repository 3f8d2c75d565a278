package helpers

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/sleepscope/engine"
)

// maxSheetName is the Excel limit on worksheet name length.
const maxSheetName = 31

// WriteWorkbook writes one worksheet per table, named after the table
// title. Number columns are stored as numeric cells; the summary row, if
// any, follows the data. The header row is styled and frozen.
func WriteWorkbook(w io.Writer, tables ...*engine.TableData) error {
	if len(tables) == 0 {
		return fmt.Errorf("workbook needs at least one table: %w", engine.ErrInvalidInput)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Italic: true}})
	if err != nil {
		return fmt.Errorf("failed to create summary style: %w", err)
	}

	used := make(map[string]bool, len(tables))
	for i, table := range tables {
		name := uniqueSheetName(table.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, table, headerStyle, summaryStyle); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WorkbookBytes renders tables into an in-memory .xlsx file.
func WorkbookBytes(tables ...*engine.TableData) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, tables...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, table *engine.TableData, headerStyle, summaryStyle int) error {
	if len(table.Columns) == 0 {
		return nil
	}

	headers := table.Headers()
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for r, row := range table.Rows {
		if err := setRow(f, sheet, r+2, typedRow(table.Columns, row)); err != nil {
			return err
		}
	}

	if table.Summary != nil {
		row := make([]string, len(table.Columns))
		row[0] = table.Summary.Label
		for i, col := range table.Columns[1:] {
			row[i+1] = table.Summary.Values[col.Key]
		}
		rowNum := len(table.Rows) + 2
		if err := setRow(f, sheet, rowNum, typedRow(table.Columns, row)); err != nil {
			return err
		}
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		end, _ := excelize.CoordinatesToCellName(len(headers), rowNum)
		if err := f.SetCellStyle(sheet, start, end, summaryStyle); err != nil {
			return fmt.Errorf("failed to set summary style: %w", err)
		}
	}

	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, columnWidth(h)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// typedRow converts number columns to float64 so Excel can compute on them.
// Cells that do not parse stay text.
func typedRow(columns []engine.Column, row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
		if i < len(columns) && columns[i].Type == "number" {
			if n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
				out[i] = n
			}
		}
	}
	return out
}

func columnWidth(header string) float64 {
	if w := float64(len(header) + 4); w > 12 {
		return w
	}
	return 12
}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

func uniqueSheetName(title string, index int, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		name = base + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
