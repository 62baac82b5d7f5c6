// pkg/staging/postgres.go
package staging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/config"
)

// Store persists transformed tables and their warning audit trail to a
// Postgres staging database before the Excel load runs.
type Store struct {
	db     *sqlx.DB
	cfg    *config.StagingConfig
	logger *zap.Logger
}

// NewStore creates and validates a staging store connection
func NewStore(ctx context.Context, cfg *config.StagingConfig, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("staging configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	logger.Info("Connecting to staging database",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staging connection: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	// Set statement timeout if configured
	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to staging database: %w", err)
	}

	store := &Store{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	if err := store.setupAuditTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup audit table: %w", err)
	}

	return store, nil
}

// setupAuditTable ensures the warning audit table exists
func (s *Store) setupAuditTable(ctx context.Context) error {
	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			column_name TEXT NOT NULL,
			row_identifier TEXT,
			reason TEXT NOT NULL,
			occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
			recorded_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`, quoteIdentifier(s.cfg.AuditTable))

	execCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := s.db.ExecContext(execCtx, createSQL); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}

	s.logger.Info("Ensured audit table exists", zap.String("table", s.cfg.AuditTable))
	return nil
}

// Close closes the staging database connection
func (s *Store) Close() error {
	s.logger.Info("Closing staging database connection")
	return s.db.Close()
}

// quoteIdentifier properly quotes and escapes a PostgreSQL identifier.
// Survey column names carry spaces and punctuation, so quoting is mandatory.
func quoteIdentifier(name string) string {
	quoted := make([]rune, 0, len(name)+2)
	quoted = append(quoted, '"')
	for _, r := range name {
		if r == '"' {
			quoted = append(quoted, '"')
		}
		quoted = append(quoted, r)
	}
	return string(append(quoted, '"'))
}
