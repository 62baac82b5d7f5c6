package pipeline

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunMetrics tracks timings and counts for a single pipeline run.
type RunMetrics struct {
	mu             sync.Mutex
	logger         *zap.Logger
	RunID          string
	StartTime      time.Time
	EndTime        time.Time
	StageDurations map[string]time.Duration
	stageStarts    map[string]time.Time
	RowsExtracted  int
	RowsWritten    int
	RowsDropped    int
	WarningCount   int
}

// NewRunMetrics creates a metrics tracker for a run.
func NewRunMetrics(runID string, logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:         logger,
		RunID:          runID,
		StartTime:      time.Now(),
		StageDurations: make(map[string]time.Duration),
		stageStarts:    make(map[string]time.Time),
	}
}

// StartStage marks the beginning of a named stage.
func (rm *RunMetrics) StartStage(stage string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.stageStarts[stage] = time.Now()
}

// EndStage records the elapsed time for a named stage.
func (rm *RunMetrics) EndStage(stage string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	start, ok := rm.stageStarts[stage]
	if !ok {
		return
	}
	rm.StageDurations[stage] = time.Since(start)
	delete(rm.stageStarts, stage)
}

// Complete marks the run as finished.
func (rm *RunMetrics) Complete() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.EndTime = time.Now()
}

// Duration returns total run time.
func (rm *RunMetrics) Duration() time.Duration {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// StageDuration returns the recorded duration for a stage, zero if the stage
// never completed.
func (rm *RunMetrics) StageDuration(stage string) time.Duration {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.StageDurations[stage]
}

// LogSummary emits the run summary through the structured logger.
func (rm *RunMetrics) LogSummary() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	fields := []zap.Field{
		zap.String("runID", rm.RunID),
		zap.Int("rowsExtracted", rm.RowsExtracted),
		zap.Int("rowsWritten", rm.RowsWritten),
		zap.Int("rowsDropped", rm.RowsDropped),
		zap.Int("warnings", rm.WarningCount),
		zap.Duration("duration", rm.duration()),
	}
	for stage, d := range rm.StageDurations {
		fields = append(fields, zap.Duration(fmt.Sprintf("stage_%s", stage), d))
	}

	rm.logger.Info("Pipeline run summary", fields...)
}

func (rm *RunMetrics) duration() time.Duration {
	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}
