// pkg/validate/validate.go
package validate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// Validator checks a transformed table against the expected output schema and
// aligns its column order before loading. Missing or unexpected columns mean
// the ruleset no longer matches the export and the run must stop.
type Validator struct {
	expected []string
	logger   *zap.Logger
}

// NewValidator creates a validator for the expected column list.
func NewValidator(expected []string, logger *zap.Logger) (*Validator, error) {
	if len(expected) == 0 {
		return nil, fmt.Errorf("expected column list cannot be empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Validator{
		expected: expected,
		logger:   logger,
	}, nil
}

// ValidateColumns compares the table's columns against the expected schema.
// The returned slice holds one message per problem; empty means valid.
// Column order alone is not a validation failure, it is fixed by Reorder.
func (v *Validator) ValidateColumns(t *model.Table) []string {
	current := t.Columns()
	currentSet := make(map[string]struct{}, len(current))
	for _, name := range current {
		currentSet[name] = struct{}{}
	}
	expectedSet := make(map[string]struct{}, len(v.expected))
	for _, name := range v.expected {
		expectedSet[name] = struct{}{}
	}

	var problems []string

	var missing []string
	for _, name := range v.expected {
		if _, ok := currentSet[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("missing columns: %s", strings.Join(missing, "; ")))
	}

	var extra []string
	for _, name := range current {
		if _, ok := expectedSet[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		problems = append(problems, fmt.Sprintf("unexpected columns: %s", strings.Join(extra, "; ")))
	}

	if len(problems) == 0 {
		v.logger.Debug("Column schema validated", zap.Int("columns", len(current)))
	} else {
		v.logger.Warn("Column schema validation failed",
			zap.Int("missing", len(missing)),
			zap.Int("unexpected", len(extra)))
	}

	return problems
}

// Reorder returns a table with columns aligned to the expected order.
// Expected columns that exist come first, in expected order; any extra
// columns keep their relative order at the end.
func (v *Validator) Reorder(t *model.Table) (*model.Table, error) {
	current := t.Columns()
	rows := t.Rows()

	expectedSet := make(map[string]struct{}, len(v.expected))
	for _, name := range v.expected {
		expectedSet[name] = struct{}{}
	}

	order := make([]int, 0, len(current))
	for _, name := range v.expected {
		if idx := t.ColumnIndex(name); idx >= 0 {
			order = append(order, idx)
		}
	}
	for idx, name := range current {
		if _, ok := expectedSet[name]; !ok {
			order = append(order, idx)
		}
	}

	outCols := make([]string, len(order))
	for i, idx := range order {
		outCols[i] = current[idx]
	}
	outRows := make([][]string, len(rows))
	for i, row := range rows {
		outRow := make([]string, len(order))
		for j, idx := range order {
			outRow[j] = row[idx]
		}
		outRows[i] = outRow
	}

	return model.NewTable(outCols, outRows)
}
