// pkg/model/report.go
package model

import "time"

// Stage identifies the transformation step that produced a warning.
type Stage string

const (
	StageEncoding    Stage = "encoding_repair"
	StageSurgery     Stage = "column_surgery"
	StageConsolidate Stage = "consolidation"
	StageRating      Stage = "rating_mapping"
	StageStandardize Stage = "text_standardization"
	StageFilter      Stage = "row_filtering"
)

// Warning records a non-fatal data problem found during transformation.
// The pipeline always completes in the presence of warnings; they are
// surfaced through the report and persisted to the staging audit trail.
type Warning struct {
	Stage      Stage
	Column     string
	RowID      string
	Reason     string
	OccurredAt time.Time
}

// Report summarizes one transformation run: row and column deltas plus every
// recoverable problem encountered on the way.
type Report struct {
	SchemaVersion  string
	RowsIn         int
	RowsOut        int
	RowsDropped    int
	ColumnsIn      int
	ColumnsOut     int
	ColumnsMerged  int
	ColumnsRemoved int
	Warnings       []Warning
}

// Warn appends a warning to the report.
func (r *Report) Warn(stage Stage, column, rowID, reason string) {
	r.Warnings = append(r.Warnings, Warning{
		Stage:      stage,
		Column:     column,
		RowID:      rowID,
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}

// WarningCount returns the number of recorded warnings.
func (r *Report) WarningCount() int {
	return len(r.Warnings)
}

// WarningsForStage returns the warnings recorded by one stage.
func (r *Report) WarningsForStage(stage Stage) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Stage == stage {
			out = append(out, w)
		}
	}
	return out
}
