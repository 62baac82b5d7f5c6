package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newExtractor(t *testing.T, path string) *CSVExtractor {
	t.Helper()
	x, err := NewCSVExtractor(path, ',', zap.NewNop())
	require.NoError(t, err)
	return x
}

func TestNewCSVExtractorValidation(t *testing.T) {
	_, err := NewCSVExtractor("", ',', zap.NewNop())
	assert.Error(t, err)

	_, err = NewCSVExtractor("file.csv", ',', nil)
	assert.Error(t, err)

	x, err := NewCSVExtractor("file.csv", 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ',', x.delimiter)
}

func TestReadPromotesHeaders(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("Respondent ID,Note\n1001,5\n1002,3\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Respondent ID", "Note"}, table.Columns())
	assert.Equal(t, 2, table.RowCount())

	cell, err := table.CellByName(0, "Respondent ID")
	require.NoError(t, err)
	assert.Equal(t, "1001", cell)
}

func TestReadNamesUnnamedColumnsByPosition(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("ID,,Note,\n1,a,b,c\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Unnamed: 1", "Note", "Unnamed: 3"}, table.Columns())
}

func TestReadDisambiguatesDuplicateHeaders(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("Note,Note,Note\n1,2,3\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Note", "Note (2)", "Note (3)"}, table.Columns())
}

func TestReadStripsByteOrderMark(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("\ufeffID,Note\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Note"}, table.Columns())
}

func TestReadPadsShortRecords(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("a,b,c\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "2", ""}}, table.Rows())
}

func TestReadWarnsOnOverlongRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	x, err := NewCSVExtractor("in.csv", ',', zap.New(core))
	require.NoError(t, err)

	table, err := x.Read(strings.NewReader("a,b\n1,2,3,4\n5,6\n"))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "2"}, {"5", "6"}}, table.Rows())

	entries := logs.FilterMessageSnippet("more cells").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["line"])
	assert.Equal(t, int64(4), entries[0].ContextMap()["cells"])
}

func TestReadEmptyInput(t *testing.T) {
	x := newExtractor(t, "in.csv")
	_, err := x.Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadHeaderOnly(t *testing.T) {
	x := newExtractor(t, "in.csv")
	table, err := x.Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.RowCount())
	assert.Equal(t, 2, table.ColumnCount())
}

func TestExtractReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,Note\n1001,5\n"), 0o644))

	x := newExtractor(t, path)
	table, err := x.Extract()
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())
}

func TestExtractMissingFile(t *testing.T) {
	x := newExtractor(t, filepath.Join(t.TempDir(), "missing.csv"))
	_, err := x.Extract()
	assert.Error(t, err)
}
