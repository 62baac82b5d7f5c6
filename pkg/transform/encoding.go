// pkg/transform/encoding.go
package transform

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// repairEncoding rewrites every known mis-decoded character sequence to its
// correct form, cell by cell, recording a warning per repaired cell. The fix
// map contains no overlapping keys, so application order does not matter.
// Cells that are not valid UTF-8 are left untouched and warned about; this
// step never fails.
func (e *Engine) repairEncoding(t *model.Table, report *model.Report) *model.Table {
	if len(e.rules.EncodingFixes) == 0 {
		return t
	}

	cols := t.Columns()
	rows := t.Rows()
	repaired := 0

	for i, row := range rows {
		for j, cell := range row {
			if cell == "" {
				continue
			}
			if !utf8.ValidString(cell) {
				report.Warn(model.StageEncoding, cols[j],
					rowID(cols, row, e.rules.IDColumn), "cell is not valid UTF-8, left unchanged")
				continue
			}

			fixed := cell
			for bad, good := range e.rules.EncodingFixes {
				if strings.Contains(fixed, bad) {
					fixed = strings.ReplaceAll(fixed, bad, good)
				}
			}
			if fixed != cell {
				rows[i][j] = fixed
				repaired++
				report.Warn(model.StageEncoding, cols[j],
					rowID(cols, row, e.rules.IDColumn), "repaired mis-decoded characters")
			}
		}
	}

	if repaired > 0 {
		e.logger.Debug("Repaired mis-decoded cells", zap.Int("cells", repaired))
	}

	// Cell rewrites cannot invalidate the column layout
	out, _ := model.NewTable(cols, rows)
	return out
}
