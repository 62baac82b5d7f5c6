// pkg/load/verifier.go
package load

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// VerificationReport summarizes a read-back check of the written workbook
// against the table that was loaded.
type VerificationReport struct {
	Path            string
	Sheet           string
	RowCountMatches bool
	HeaderMatches   bool
	ExpectedRows    int
	ActualRows      int
	Discrepancies   []string
}

// OK reports whether the written file matches the source table.
func (r *VerificationReport) OK() bool {
	return r.RowCountMatches && r.HeaderMatches && len(r.Discrepancies) == 0
}

// Verify reads the written workbook back and checks the header row and row
// count against the table that was written.
func (w *ExcelWriter) Verify(t *model.Table) (*VerificationReport, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook for verification: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", w.sheet, err)
	}

	report := &VerificationReport{
		Path:         w.path,
		Sheet:        w.sheet,
		ExpectedRows: t.RowCount(),
	}

	if len(rows) == 0 {
		report.Discrepancies = append(report.Discrepancies, "sheet has no header row")
		return report, nil
	}

	report.ActualRows = len(rows) - 1
	report.RowCountMatches = report.ActualRows == report.ExpectedRows

	cols := t.Columns()
	header := rows[0]
	report.HeaderMatches = len(header) == len(cols)
	if !report.HeaderMatches {
		report.Discrepancies = append(report.Discrepancies,
			fmt.Sprintf("header has %d columns, expected %d", len(header), len(cols)))
	} else {
		for j, name := range cols {
			if header[j] != name {
				report.HeaderMatches = false
				report.Discrepancies = append(report.Discrepancies,
					fmt.Sprintf("header column %d is %q, expected %q", j, header[j], name))
			}
		}
	}

	if !report.RowCountMatches {
		report.Discrepancies = append(report.Discrepancies,
			fmt.Sprintf("sheet has %d data rows, expected %d", report.ActualRows, report.ExpectedRows))
	}

	if report.OK() {
		w.logger.Info("Excel verification passed",
			zap.String("path", w.path),
			zap.Int("rows", report.ActualRows))
	} else {
		w.logger.Warn("Excel verification found discrepancies",
			zap.String("path", w.path),
			zap.Strings("discrepancies", report.Discrepancies))
	}

	return report, nil
}
