// Package pipeline wires the extract, transform, staging, load, and upload
// stages into a single sequential run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/config"
	"github.com/satiap/feedback-ingress/pkg/extract"
	"github.com/satiap/feedback-ingress/pkg/load"
	"github.com/satiap/feedback-ingress/pkg/model"
	"github.com/satiap/feedback-ingress/pkg/staging"
	"github.com/satiap/feedback-ingress/pkg/transform"
	"github.com/satiap/feedback-ingress/pkg/upload"
	"github.com/satiap/feedback-ingress/pkg/validate"
)

// Stage names used for metrics and logging.
const (
	stageExtract   = "extract"
	stageTransform = "transform"
	stageValidate  = "validate"
	stageStage     = "stage"
	stageLoad      = "load"
	stageUpload    = "upload"
)

// Pipeline orchestrates one feedback ingestion run. Stages execute strictly
// in order; each stage consumes the previous stage's table snapshot.
type Pipeline struct {
	cfg       *config.Config
	extractor *extract.CSVExtractor
	engine    *transform.Engine
	validator *validate.Validator
	store     *staging.Store
	writer    *load.ExcelWriter
	uploader  *upload.Uploader
	logger    *zap.Logger
}

// RunResult collects the outputs of a completed run.
type RunResult struct {
	RunID        string
	Report       *model.Report
	Verification *load.VerificationReport
	Metrics      *RunMetrics
	Uploaded     bool
}

// New builds a pipeline from configuration. The staging store and the
// SharePoint uploader are only constructed when their configuration sections
// are present.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	extractor, err := extract.NewCSVExtractor(cfg.CSVPath, cfg.Delimiter(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	engine, err := transform.NewEngine(model.FeedbackRulesV1(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transform engine: %w", err)
	}

	validator, err := validate.NewValidator(model.FeedbackColumnsV1(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	writer, err := load.NewExcelWriter(cfg.ExcelPath, cfg.SheetName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create excel writer: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		engine:    engine,
		validator: validator,
		writer:    writer,
		logger:    logger,
	}

	if cfg.Staging != nil {
		store, err := staging.NewStore(ctx, cfg.Staging, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect staging store: %w", err)
		}
		p.store = store
	}

	if cfg.SharePoint != nil {
		uploader, err := upload.NewUploader(cfg.SharePoint, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create uploader: %w", err)
		}
		p.uploader = uploader
	}

	return p, nil
}

// Close releases held resources.
func (p *Pipeline) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Run executes one full ingestion run and returns its result. A schema
// mismatch or an extraction failure aborts the run; a SharePoint failure is
// reported but does not fail the run, since the workbook already exists on
// disk.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	metrics := NewRunMetrics(runID, p.logger)

	p.logger.Info("Starting pipeline run",
		zap.String("runID", runID),
		zap.String("input", p.cfg.CSVPath),
		zap.String("output", p.cfg.ExcelPath))

	// Extract
	metrics.StartStage(stageExtract)
	raw, err := p.extractor.Extract()
	metrics.EndStage(stageExtract)
	if err != nil {
		return nil, fmt.Errorf("extract stage failed: %w", err)
	}
	metrics.RowsExtracted = raw.RowCount()

	// Transform
	metrics.StartStage(stageTransform)
	cleaned, report, err := p.engine.Apply(raw)
	metrics.EndStage(stageTransform)
	if err != nil {
		if transform.IsSchemaMismatch(err) {
			p.logger.Error("Aborting run: source layout does not match transformation rules",
				zap.String("runID", runID),
				zap.Error(err))
		}
		return nil, fmt.Errorf("transform stage failed: %w", err)
	}
	metrics.RowsDropped = report.RowsDropped
	metrics.WarningCount = report.WarningCount()

	// Validate
	metrics.StartStage(stageValidate)
	problems := p.validator.ValidateColumns(cleaned)
	for _, problem := range problems {
		p.logger.Warn("Schema deviation in transformed table",
			zap.String("runID", runID),
			zap.String("problem", problem))
	}
	final, err := p.validator.Reorder(cleaned)
	metrics.EndStage(stageValidate)
	if err != nil {
		return nil, fmt.Errorf("validate stage failed: %w", err)
	}

	// Stage to Postgres when configured.
	if p.store != nil {
		metrics.StartStage(stageStage)
		err = p.store.SaveSnapshot(ctx, runID, final)
		if err == nil {
			err = p.store.RecordWarnings(ctx, runID, report.Warnings)
		}
		metrics.EndStage(stageStage)
		if err != nil {
			return nil, fmt.Errorf("staging stage failed: %w", err)
		}
	}

	// Load
	metrics.StartStage(stageLoad)
	if err := p.writer.Write(final); err != nil {
		metrics.EndStage(stageLoad)
		return nil, fmt.Errorf("load stage failed: %w", err)
	}
	verification, err := p.writer.Verify(final)
	metrics.EndStage(stageLoad)
	if err != nil {
		return nil, fmt.Errorf("workbook verification failed: %w", err)
	}
	if !verification.OK() {
		return nil, fmt.Errorf("workbook verification mismatch: %s",
			strings.Join(verification.Discrepancies, "; "))
	}
	metrics.RowsWritten = final.RowCount()

	result := &RunResult{
		RunID:        runID,
		Report:       report,
		Verification: verification,
		Metrics:      metrics,
	}

	// Upload; the local workbook is the source of truth, so failures here
	// are logged and surfaced on the result rather than failing the run.
	if p.uploader != nil {
		metrics.StartStage(stageUpload)
		result.Uploaded = p.runUpload(ctx, runID)
		metrics.EndStage(stageUpload)
	}

	metrics.Complete()
	metrics.LogSummary()

	return result, nil
}

func (p *Pipeline) runUpload(ctx context.Context, runID string) bool {
	if err := p.uploader.Upload(ctx, p.cfg.ExcelPath); err != nil {
		p.logger.Error("SharePoint upload failed",
			zap.String("runID", runID),
			zap.Error(err))
		return false
	}

	name := filepath.Base(p.cfg.ExcelPath)
	if _, err := p.uploader.VerifyUpload(ctx, name); err != nil {
		p.logger.Error("SharePoint upload verification failed",
			zap.String("runID", runID),
			zap.String("file", name),
			zap.Error(err))
		return false
	}
	return true
}
