// pkg/transform/transform.go
package transform

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// Engine applies the declarative transformation ruleset to a table. It is
// stateless between runs and performs no I/O: table in, table plus report out.
// Steps run in a fixed order: encoding repair, structural column surgery,
// consolidation and categorical remapping, text standardization, then row
// filtering. Each step produces a fresh table snapshot.
type Engine struct {
	rules  *model.Ruleset
	logger *zap.Logger
}

// NewEngine creates a transformation engine for the given ruleset.
func NewEngine(rules *model.Ruleset, logger *zap.Logger) (*Engine, error) {
	if rules == nil {
		return nil, errors.New("ruleset cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}

	return &Engine{
		rules:  rules,
		logger: logger,
	}, nil
}

// Apply runs the full transformation. A SchemaMismatchError aborts with no
// output table; data-level problems are recorded as report warnings and never
// stop the run.
func (e *Engine) Apply(table *model.Table) (*model.Table, *model.Report, error) {
	if table == nil {
		return nil, nil, errors.New("input table cannot be nil")
	}

	report := &model.Report{
		SchemaVersion: e.rules.SchemaVersion,
		RowsIn:        table.RowCount(),
		ColumnsIn:     table.ColumnCount(),
	}

	e.logger.Info("Starting transformation",
		zap.String("schema_version", e.rules.SchemaVersion),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()))

	t := e.repairEncoding(table, report)

	t, err := e.applySurgery(t, report)
	if err != nil {
		e.logger.Error("Column surgery failed", zap.Error(err))
		return nil, nil, err
	}
	e.logger.Debug("Column surgery complete", zap.Int("columns", t.ColumnCount()))

	t, err = e.consolidate(t, report)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("Consolidation complete",
		zap.Int("columns", t.ColumnCount()),
		zap.Int("columns_merged", report.ColumnsMerged))

	t, err = e.standardize(t, report)
	if err != nil {
		return nil, nil, err
	}

	t, err = e.filterRows(t, report)
	if err != nil {
		return nil, nil, err
	}

	report.RowsOut = t.RowCount()
	report.ColumnsOut = t.ColumnCount()

	e.logger.Info("Transformation complete",
		zap.Int("rows_in", report.RowsIn),
		zap.Int("rows_out", report.RowsOut),
		zap.Int("rows_dropped", report.RowsDropped),
		zap.Int("columns_out", report.ColumnsOut),
		zap.Int("warnings", report.WarningCount()))

	return t, report, nil
}

// rowID returns the respondent identifier of a row for warning context, or
// empty if the ID column is not present at this point of the pipeline.
func rowID(cols []string, row []string, idColumn string) string {
	for i, name := range cols {
		if name == idColumn {
			return row[i]
		}
	}
	return ""
}
