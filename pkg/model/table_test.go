package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable(
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, 2, table.RowCount())
}

func TestNewTableRejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable([]string{"a", "a"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestNewTableRejectsRaggedRows(t *testing.T) {
	_, err := NewTable(
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3"}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestTableAccessorsCopy(t *testing.T) {
	table, err := NewTable([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)

	cols := table.Columns()
	cols[0] = "mutated"
	rows := table.Rows()
	rows[0][0] = "mutated"

	name, err := table.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	cell, err := table.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "x", cell)
}

func TestTableColumnLookup(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	assert.Equal(t, 1, table.ColumnIndex("b"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.True(t, table.HasColumn("a"))
	assert.False(t, table.HasColumn("missing"))

	cell, err := table.CellByName(0, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", cell)

	_, err = table.CellByName(0, "missing")
	assert.Error(t, err)
}

func TestTableBoundsChecks(t *testing.T) {
	table, err := NewTable([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)

	_, err = table.Cell(1, 0)
	assert.Error(t, err)
	_, err = table.Cell(0, 1)
	assert.Error(t, err)
	_, err = table.ColumnName(-1)
	assert.Error(t, err)
}

func TestTableClone(t *testing.T) {
	table, err := NewTable([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)

	clone := table.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, table.Columns(), clone.Columns())
	assert.Equal(t, table.Rows(), clone.Rows())
}
