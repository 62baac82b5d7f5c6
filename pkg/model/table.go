// pkg/model/table.go
package model

import (
	"fmt"
)

// Table is an ordered set of rows over named columns. Column order is
// significant and is tracked independently of row content, because several
// transformation steps address columns by position rather than by name.
// Cells are text; the empty string is the missing-value marker.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable builds a Table from a column list and row data. Every row must
// have exactly one cell per column, and column names must be unique.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column name: %q", name)
		}
		seen[name] = struct{}{}
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}

	t := &Table{
		columns: make([]string, len(columns)),
		rows:    make([][]string, len(rows)),
	}
	copy(t.columns, columns)
	for i, row := range rows {
		t.rows[i] = make([]string, len(row))
		copy(t.rows[i], row)
	}

	return t, nil
}

// Columns returns a copy of the ordered column names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Rows returns a deep copy of the row data.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColumnIndex returns the zero-based index of a column by name,
// or -1 if the table has no column with that name.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnName returns the name of the column at the given index.
func (t *Table) ColumnName(idx int) (string, error) {
	if idx < 0 || idx >= len(t.columns) {
		return "", fmt.Errorf("column index %d out of range [0,%d)", idx, len(t.columns))
	}
	return t.columns[idx], nil
}

// Cell returns the value at the given row and column index.
func (t *Table) Cell(row, col int) (string, error) {
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row index %d out of range [0,%d)", row, len(t.rows))
	}
	if col < 0 || col >= len(t.columns) {
		return "", fmt.Errorf("column index %d out of range [0,%d)", col, len(t.columns))
	}
	return t.rows[row][col], nil
}

// CellByName returns the value at the given row for a named column.
func (t *Table) CellByName(row int, column string) (string, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return "", fmt.Errorf("no such column: %q", column)
	}
	return t.Cell(row, idx)
}

// Clone returns an independent deep copy of the table.
func (t *Table) Clone() *Table {
	clone, _ := NewTable(t.columns, t.rows)
	return clone
}
