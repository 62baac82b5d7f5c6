package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunMetricsStageTiming(t *testing.T) {
	rm := NewRunMetrics("run-1", zap.NewNop())

	rm.StartStage("extract")
	time.Sleep(5 * time.Millisecond)
	rm.EndStage("extract")

	assert.Greater(t, rm.StageDuration("extract"), time.Duration(0))
	assert.Equal(t, time.Duration(0), rm.StageDuration("transform"))
}

func TestRunMetricsEndWithoutStart(t *testing.T) {
	rm := NewRunMetrics("run-1", zap.NewNop())
	rm.EndStage("never-started")
	assert.Equal(t, time.Duration(0), rm.StageDuration("never-started"))
}

func TestRunMetricsComplete(t *testing.T) {
	rm := NewRunMetrics("run-1", zap.NewNop())
	rm.RowsExtracted = 10
	rm.RowsWritten = 8
	rm.RowsDropped = 2

	rm.Complete()
	assert.False(t, rm.EndTime.IsZero())
	assert.GreaterOrEqual(t, rm.Duration(), time.Duration(0))

	// LogSummary must not panic after completion.
	rm.LogSummary()
}
