// pkg/transform/surgery.go
package transform

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// applySurgery runs the ordered structural edit script: deletes, block moves,
// inserts and renames, each addressed by a letter-style ordinal against the
// layout as it exists immediately before that op. A reference outside the
// current layout is schema drift and aborts the transformation. After the
// scripted edits, columns that are empty across all rows are dropped.
func (e *Engine) applySurgery(t *model.Table, report *model.Report) (*model.Table, error) {
	cols := t.Columns()
	rows := t.Rows()

	for i, op := range e.rules.Surgery {
		var err error
		switch op.Kind {
		case model.SurgeryDelete:
			cols, rows, err = deleteColumn(cols, rows, op)
		case model.SurgeryMove:
			cols, rows, err = moveBlock(cols, rows, op)
		case model.SurgeryInsert:
			cols, rows, err = insertColumn(cols, rows, op)
		case model.SurgeryRename:
			cols, err = renameColumn(cols, op)
		default:
			err = fmt.Errorf("unknown surgery kind %q", op.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("surgery op %d (%s): %w", i, op.Kind, err)
		}
	}

	cols, rows, dropped := dropEmptyColumns(cols, rows)
	if len(dropped) > 0 {
		report.ColumnsRemoved += len(dropped)
		e.logger.Debug("Dropped empty columns",
			zap.Int("count", len(dropped)),
			zap.String("columns", strings.Join(dropped, ", ")))
	}

	return model.NewTable(cols, rows)
}

// resolveOrdinal parses a letter reference and bounds-checks it against the
// current column count. Insertion points may sit one past the last column.
func resolveOrdinal(ref string, colCount int, kind model.SurgeryKind) (int, error) {
	idx, err := model.ParseColumnRef(ref)
	if err != nil {
		return 0, err
	}

	limit := colCount
	if kind == model.SurgeryInsert {
		limit = colCount + 1
	}
	if idx >= limit {
		return 0, &SchemaMismatchError{
			Op:          kind,
			Ref:         ref,
			Index:       idx,
			ColumnCount: colCount,
		}
	}
	return idx, nil
}

func deleteColumn(cols []string, rows [][]string, op model.SurgeryOp) ([]string, [][]string, error) {
	idx, err := resolveOrdinal(op.At, len(cols), model.SurgeryDelete)
	if err != nil {
		return nil, nil, err
	}

	cols = append(cols[:idx], cols[idx+1:]...)
	for i, row := range rows {
		rows[i] = append(row[:idx], row[idx+1:]...)
	}
	return cols, rows, nil
}

func moveBlock(cols []string, rows [][]string, op model.SurgeryOp) ([]string, [][]string, error) {
	from, err := resolveOrdinal(op.From, len(cols), model.SurgeryMove)
	if err != nil {
		return nil, nil, err
	}
	to, err := resolveOrdinal(op.To, len(cols), model.SurgeryMove)
	if err != nil {
		return nil, nil, err
	}
	if from > to {
		return nil, nil, fmt.Errorf("invalid block range %s:%s", op.From, op.To)
	}

	// Destination is expressed against the pre-cut layout; empty means append.
	dest := len(cols)
	if op.Dest != "" {
		dest, err = resolveOrdinal(op.Dest, len(cols), model.SurgeryMove)
		if err != nil {
			return nil, nil, err
		}
	}
	if dest >= from && dest <= to {
		return nil, nil, fmt.Errorf("move destination %s lies inside block %s:%s", op.Dest, op.From, op.To)
	}

	cols = moveSlice(cols, from, to, dest)
	for i := range rows {
		rows[i] = moveSlice(rows[i], from, to, dest)
	}
	return cols, rows, nil
}

// moveSlice cuts s[from:to+1] out and reinserts it so that the block starts at
// the position dest referred to before the cut.
func moveSlice(s []string, from, to, dest int) []string {
	block := make([]string, to-from+1)
	copy(block, s[from:to+1])

	rest := make([]string, 0, len(s)-len(block))
	rest = append(rest, s[:from]...)
	rest = append(rest, s[to+1:]...)

	if dest > to {
		dest -= len(block)
	}
	if dest > len(rest) {
		dest = len(rest)
	}

	out := make([]string, 0, len(s))
	out = append(out, rest[:dest]...)
	out = append(out, block...)
	out = append(out, rest[dest:]...)
	return out
}

func insertColumn(cols []string, rows [][]string, op model.SurgeryOp) ([]string, [][]string, error) {
	idx, err := resolveOrdinal(op.At, len(cols), model.SurgeryInsert)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range cols {
		if name == op.Name {
			return nil, nil, fmt.Errorf("insert would duplicate column %q", op.Name)
		}
	}

	cols = append(cols[:idx], append([]string{op.Name}, cols[idx:]...)...)
	for i, row := range rows {
		rows[i] = append(row[:idx], append([]string{""}, row[idx:]...)...)
	}
	return cols, rows, nil
}

func renameColumn(cols []string, op model.SurgeryOp) ([]string, error) {
	idx, err := resolveOrdinal(op.At, len(cols), model.SurgeryRename)
	if err != nil {
		return nil, err
	}
	for i, name := range cols {
		if i != idx && name == op.Name {
			return nil, fmt.Errorf("rename would duplicate column %q", op.Name)
		}
	}

	cols[idx] = op.Name
	return cols, nil
}

// dropEmptyColumns removes every column whose cells are empty (or whitespace)
// across all rows, returning the names of the dropped columns.
func dropEmptyColumns(cols []string, rows [][]string) ([]string, [][]string, []string) {
	if len(rows) == 0 {
		return cols, rows, nil
	}

	keep := make([]bool, len(cols))
	for j := range cols {
		for _, row := range rows {
			if strings.TrimSpace(row[j]) != "" {
				keep[j] = true
				break
			}
		}
	}

	var dropped []string
	outCols := make([]string, 0, len(cols))
	for j, name := range cols {
		if keep[j] {
			outCols = append(outCols, name)
		} else {
			dropped = append(dropped, name)
		}
	}
	if len(dropped) == 0 {
		return cols, rows, nil
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
	return outCols, outRows, dropped
}
