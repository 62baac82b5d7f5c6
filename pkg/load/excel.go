// pkg/load/excel.go
package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

const maxColumnWidth = 50

// ExcelWriter serializes a transformed table to a spreadsheet: one header row
// plus one row per respondent, with the same header formatting the legacy
// workbook used (bold white on a filled background, frozen header pane,
// content-sized columns).
type ExcelWriter struct {
	path   string
	sheet  string
	logger *zap.Logger
}

// NewExcelWriter creates a writer targeting the given file path and sheet name.
func NewExcelWriter(path, sheet string, logger *zap.Logger) (*ExcelWriter, error) {
	if path == "" {
		return nil, errors.New("excel path cannot be empty")
	}
	if sheet == "" {
		return nil, errors.New("sheet name cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &ExcelWriter{
		path:   path,
		sheet:  sheet,
		logger: logger,
	}, nil
}

// Write serializes the table to disk.
func (w *ExcelWriter) Write(t *model.Table) error {
	if t == nil {
		return errors.New("table cannot be nil")
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w.logger.Info("Writing Excel file",
		zap.String("path", w.path),
		zap.String("sheet", w.sheet),
		zap.Int("rows", t.RowCount()),
		zap.Int("columns", t.ColumnCount()))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	idx, err := f.NewSheet(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", w.sheet, err)
	}
	f.SetActiveSheet(idx)
	if w.sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	cols := t.Columns()
	rows := t.Rows()

	header := make([]interface{}, len(cols))
	for j, name := range cols {
		header[j] = name
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		startCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(w.sheet, startCell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := w.formatSheet(f, cols, rows); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	w.logger.Info("Excel file written", zap.String("path", w.path))
	return nil
}

// formatSheet applies header styling, the frozen header pane and column widths.
func (w *ExcelWriter) formatSheet(f *excelize.File, cols []string, rows [][]string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return fmt.Errorf("failed to compute header range: %w", err)
	}
	if err := f.SetCellStyle(w.sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	if err := f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header pane: %w", err)
	}

	for j, name := range cols {
		width := utf8.RuneCountInString(name)
		for _, row := range rows {
			if n := utf8.RuneCountInString(row[j]); n > width {
				width = n
			}
		}
		width += 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		colName, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name %d: %w", j+1, err)
		}
		if err := f.SetColWidth(w.sheet, colName, colName, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", colName, err)
		}
	}

	return nil
}
