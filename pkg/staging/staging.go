// pkg/staging/staging.go
package staging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

const insertBatchSize = 500

// SaveSnapshot replaces the staging snapshot table with the transformed
// table's contents. Every column is stored as TEXT; the snapshot exists for
// inspection and replay, not as the system of record.
func (s *Store) SaveSnapshot(ctx context.Context, runID string, t *model.Table) error {
	cols := t.Columns()
	rows := t.Rows()
	table := quoteIdentifier(s.cfg.SnapshotTable)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback snapshot transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("failed to drop previous snapshot: %w", err)
	}

	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, `"run_id" TEXT NOT NULL`)
	for _, col := range cols {
		defs = append(defs, fmt.Sprintf("%s TEXT", quoteIdentifier(col)))
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", table, strings.Join(defs, ",\n\t"))
	if _, err = tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}

	quotedCols := make([]string, 0, len(cols)+1)
	quotedCols = append(quotedCols, `"run_id"`)
	for _, col := range cols {
		quotedCols = append(quotedCols, quoteIdentifier(col))
	}

	// Insert in batches with positional placeholders
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*(len(cols)+1))
		for i, row := range batch {
			cells := make([]string, len(cols)+1)
			for j := range cells {
				cells[j] = fmt.Sprintf("$%d", i*(len(cols)+1)+j+1)
			}
			placeholders[i] = "(" + strings.Join(cells, ", ") + ")"

			args = append(args, runID)
			for _, cell := range row {
				args = append(args, cell)
			}
		}

		insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			table, strings.Join(quotedCols, ", "), strings.Join(placeholders, ", "))
		if _, err = tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("snapshot batch insert failed: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.logger.Info("Saved staging snapshot",
		zap.String("run_id", runID),
		zap.String("table", s.cfg.SnapshotTable),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(cols)))
	return nil
}

// RecordWarnings batch inserts transformation warnings into the audit table
func (s *Store) RecordWarnings(ctx context.Context, runID string, warnings []model.Warning) error {
	if len(warnings) == 0 {
		return nil
	}

	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTxx(execCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback audit transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	insertSQL := fmt.Sprintf(`
		INSERT INTO %s
		(run_id, stage, column_name, row_identifier, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, quoteIdentifier(s.cfg.AuditTable))

	stmt, err := tx.PreparexContext(execCtx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, w := range warnings {
		_, err = stmt.ExecContext(execCtx,
			runID,
			string(w.Stage),
			w.Column,
			nullableString(w.RowID),
			w.Reason,
			w.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit warnings: %w", err)
	}

	s.logger.Info("Recorded transformation warnings",
		zap.String("run_id", runID),
		zap.Int("count", len(warnings)))
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
