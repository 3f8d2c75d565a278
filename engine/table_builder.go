package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER: Produces TableData from views and groups
// ============================================================================
// Column discovery uses view.DimensionKeys() instead of inspecting records.
// ============================================================================

// ============================================================================
// LIST TABLE: Row per record
// ============================================================================

// BuildListTable renders one row per record: every dimension followed by
// the requested measures. The summary row holds the mean of each measure.
func BuildListTable(title string, view RecordView, measures []string) *TableData {
	if view.Len() == 0 {
		return &TableData{
			Title:   title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	dimKeys := view.DimensionKeys()
	columns := make([]Column, 0, len(dimKeys)+len(measures))
	for _, key := range dimKeys {
		columns = append(columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "text",
			Align: "left",
		})
	}
	for _, key := range measures {
		columns = append(columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "number",
			Align: "right",
		})
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		for _, key := range measures {
			row = append(row, fmt.Sprintf("%.2f", view.Measure(i, key)))
		}
		rows = append(rows, row)
	}

	averages := make(map[string]string, len(measures))
	for _, key := range measures {
		averages[key] = fmt.Sprintf("%.2f", AvgMeasure(view, key))
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("Average (%s records)", FormatInt(view.Len())),
			Values: averages,
		},
	}
}

// ============================================================================
// STATS TABLE: Summary row per group
// ============================================================================

// BuildStatsTable renders groups summarized with the "stats" aggregation.
func BuildStatsTable(title, groupLabel string, groups []Group) *TableData {
	if len(groups) == 0 {
		return &TableData{
			Title:   title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}
	if groupLabel == "" {
		groupLabel = "Group"
	}

	columns := []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "average", Label: "Average", Type: "number", Align: "right"},
		{Key: "variance", Label: "Variance", Type: "number", Align: "right"},
		{Key: "min", Label: "Min", Type: "number", Align: "right"},
		{Key: "max", Label: "Max", Type: "number", Align: "right"},
		{Key: "count", Label: "Count", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(groups))
	var totalCount int
	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			fmt.Sprintf("%.2f", g.Mean),
			fmt.Sprintf("%.4f", g.Variance),
			fmt.Sprintf("%.2f", g.Min),
			fmt.Sprintf("%.2f", g.Max),
			fmt.Sprintf("%d", g.Count),
		})
		totalCount += g.Count
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				"count": FormatInt(totalCount),
			},
		},
	}
}
