// Package models defines data structures for postcode enrichment.
package models

import "fmt"

// Table represents a worksheet as a header row and data rows.
type Table struct {
	// SheetName is the worksheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Range is the used cell range the table was read from (e.g., "A1:B11").
	Range string `json:"range,omitempty"`
	// Columns holds header names in column order.
	Columns []string `json:"columns"`
	// Rows holds the data rows; every row has len(Columns) cells.
	// A nil cell is an empty cell.
	Rows [][]interface{} `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of column idx, one per row.
func (t *Table) Column(idx int) []interface{} {
	values := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		if idx >= 0 && idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values
}

// AppendColumns returns a new table with the given columns added after the
// existing ones. values must hold one row of len(names) cells per table row.
func (t *Table) AppendColumns(names []string, values [][]interface{}) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("append columns: got %d value rows for %d table rows", len(values), len(t.Rows))
	}

	columns := make([]string, 0, len(t.Columns)+len(names))
	columns = append(columns, t.Columns...)
	columns = append(columns, names...)

	rows := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		if len(values[i]) != len(names) {
			return nil, fmt.Errorf("append columns: row %d has %d values, want %d", i+1, len(values[i]), len(names))
		}
		merged := make([]interface{}, 0, len(columns))
		merged = append(merged, row...)
		for len(merged) < len(t.Columns) {
			merged = append(merged, nil)
		}
		merged = append(merged, values[i]...)
		rows[i] = merged
	}

	return &Table{
		SheetName: t.SheetName,
		Columns:   columns,
		Rows:      rows,
	}, nil
}
