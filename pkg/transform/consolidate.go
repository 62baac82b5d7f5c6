// pkg/transform/consolidate.go
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// consolidate merges each declared column group into a single column (first
// non-empty member in declared order wins), removes the member columns, drops
// the unconditionally unwanted columns, and remaps the designated rating
// columns through the integer-to-label scale.
func (e *Engine) consolidate(t *model.Table, report *model.Report) (*model.Table, error) {
	cols := t.Columns()
	rows := t.Rows()

	for _, group := range e.rules.MergeGroups {
		var err error
		cols, rows, err = e.mergeGroup(cols, rows, group, report)
		if err != nil {
			return nil, err
		}
	}

	cols, rows = e.dropUnwanted(cols, rows, report)
	e.remapRatings(cols, rows, report)

	return model.NewTable(cols, rows)
}

// mergeGroup collapses the group's member columns into one appended column.
func (e *Engine) mergeGroup(
	cols []string,
	rows [][]string,
	group model.MergeGroup,
	report *model.Report,
) ([]string, [][]string, error) {
	for _, name := range cols {
		if name == group.Name {
			return nil, nil, fmt.Errorf("merge group %q collides with an existing column", group.Name)
		}
	}

	// Member indexes in declared order; absent members are simply skipped
	memberIdx := make([]int, 0, len(group.Members))
	for _, member := range group.Members {
		for j, name := range cols {
			if name == member {
				memberIdx = append(memberIdx, j)
				break
			}
		}
	}

	if len(memberIdx) == 0 {
		report.Warn(model.StageConsolidate, group.Name, "", "no member columns present, merged column will be empty")
	}

	merged := make([]string, len(rows))
	for i, row := range rows {
		for _, j := range memberIdx {
			if strings.TrimSpace(row[j]) != "" {
				merged[i] = row[j]
				break
			}
		}
	}

	drop := make(map[int]struct{}, len(memberIdx))
	for _, j := range memberIdx {
		drop[j] = struct{}{}
	}

	outCols := make([]string, 0, len(cols)-len(memberIdx)+1)
	for j, name := range cols {
		if _, gone := drop[j]; !gone {
			outCols = append(outCols, name)
		}
	}
	outCols = append(outCols, group.Name)

	outRows := make([][]string, len(rows))
	for i, row := range rows {
		outRow := make([]string, 0, len(outCols))
		for j := range cols {
			if _, gone := drop[j]; !gone {
				outRow = append(outRow, row[j])
			}
		}
		outRows[i] = append(outRow, merged[i])
	}

	report.ColumnsMerged += len(memberIdx)
	e.logger.Debug("Merged column group",
		zap.String("group", group.Name),
		zap.Int("members", len(memberIdx)))

	return outCols, outRows, nil
}

// dropUnwanted removes the enumerated unwanted columns when present.
func (e *Engine) dropUnwanted(cols []string, rows [][]string, report *model.Report) ([]string, [][]string) {
	unwanted := make(map[string]struct{}, len(e.rules.DropColumns))
	for _, name := range e.rules.DropColumns {
		unwanted[name] = struct{}{}
	}

	keep := make([]bool, len(cols))
	removed := 0
	for j, name := range cols {
		if _, gone := unwanted[name]; gone {
			removed++
		} else {
			keep[j] = true
		}
	}
	if removed == 0 {
		return cols, rows
	}

	outCols := make([]string, 0, len(cols)-removed)
	for j, name := range cols {
		if keep[j] {
			outCols = append(outCols, name)
		}
	}
	outRows := make([][]string, len(rows))
	for i, row := range rows {
		outRow := make([]string, 0, len(outCols))
		for j := range cols {
			if keep[j] {
				outRow = append(outRow, row[j])
			}
		}
		outRows[i] = outRow
	}

	report.ColumnsRemoved += removed
	e.logger.Debug("Removed unwanted columns", zap.Int("count", removed))
	return outCols, outRows
}

// remapRatings rewrites rating cells in place: integers covered by the scale
// become their labels, anything else becomes empty with a warning.
func (e *Engine) remapRatings(cols []string, rows [][]string, report *model.Report) {
	if len(e.rules.RatingColumns) == 0 {
		return
	}

	for _, ratingCol := range e.rules.RatingColumns {
		idx := -1
		for j, name := range cols {
			if name == ratingCol {
				idx = j
				break
			}
		}
		if idx < 0 {
			continue
		}

		for i, row := range rows {
			raw := strings.TrimSpace(row[idx])
			if raw == "" {
				continue
			}

			rating, err := strconv.Atoi(raw)
			if err != nil {
				rows[i][idx] = ""
				report.Warn(model.StageRating, ratingCol,
					rowID(cols, row, e.rules.IDColumn),
					fmt.Sprintf("non-numeric rating %q mapped to empty", raw))
				continue
			}

			label, ok := e.rules.RatingScale[rating]
			if !ok {
				rows[i][idx] = ""
				report.Warn(model.StageRating, ratingCol,
					rowID(cols, row, e.rules.IDColumn),
					fmt.Sprintf("rating %d outside scale mapped to empty", rating))
				continue
			}
			rows[i][idx] = label
		}
	}
}
