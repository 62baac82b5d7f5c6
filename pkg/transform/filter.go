// pkg/transform/filter.go
package transform

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// filterRows drops every row whose respondent ID is empty, non-numeric, or a
// duplicate of an earlier row's ID (first occurrence wins). Each dropped row
// is recorded as a warning; the ID column itself being absent means the input
// shape is wrong and is fatal.
func (e *Engine) filterRows(t *model.Table, report *model.Report) (*model.Table, error) {
	cols := t.Columns()
	rows := t.Rows()

	idIdx := -1
	for j, name := range cols {
		if name == e.rules.IDColumn {
			idIdx = j
			break
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("ID column %q not present after transformation", e.rules.IDColumn)
	}

	seen := make(map[string]struct{}, len(rows))
	kept := make([][]string, 0, len(rows))

	for _, row := range rows {
		id := strings.TrimSpace(row[idIdx])

		switch {
		case id == "":
			report.Warn(model.StageFilter, e.rules.IDColumn, "", "row dropped: missing respondent ID")
		case !isNumericID(id):
			report.Warn(model.StageFilter, e.rules.IDColumn, id, "row dropped: non-numeric respondent ID")
		default:
			if _, dup := seen[id]; dup {
				report.Warn(model.StageFilter, e.rules.IDColumn, id, "row dropped: duplicate respondent ID")
				break
			}
			seen[id] = struct{}{}
			row[idIdx] = id
			kept = append(kept, row)
		}
	}

	dropped := len(rows) - len(kept)
	report.RowsDropped += dropped
	if dropped > 0 {
		e.logger.Info("Filtered rows with invalid respondent IDs",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(kept)))
	}

	return model.NewTable(cols, kept)
}

// isNumericID reports whether id consists entirely of ASCII digits. IDs can
// exceed the uint64 range, so the digits are checked directly.
func isNumericID(id string) bool {
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return id != ""
}
