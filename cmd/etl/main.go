package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/satiap/feedback-ingress/pkg/config"
	"github.com/satiap/feedback-ingress/pkg/pipeline"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p, err := pipeline.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build pipeline", zap.Error(err))
		os.Exit(1)
	}
	defer p.Close()

	result, err := p.Run(ctx)
	if err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Pipeline run finished",
		zap.String("runID", result.RunID),
		zap.Int("rowsWritten", result.Metrics.RowsWritten),
		zap.Int("rowsDropped", result.Report.RowsDropped),
		zap.Int("warnings", result.Report.WarningCount()),
		zap.Bool("uploaded", result.Uploaded))
}

// buildLogger constructs a zap logger from the configured level and format.
func buildLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
