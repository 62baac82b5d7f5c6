// pkg/config/staging.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// StagingConfig holds connection parameters for the Postgres staging store
type StagingConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Table names inside the staging database
	SnapshotTable string
	AuditTable    string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadStagingConfig loads staging database configuration from environment variables
func LoadStagingConfig() (*StagingConfig, error) {
	user := os.Getenv("STAGING_USER")
	if user == "" {
		return nil, errors.New("STAGING_USER environment variable is required")
	}

	password := os.Getenv("STAGING_PASSWORD")
	if password == "" {
		return nil, errors.New("STAGING_PASSWORD environment variable is required")
	}

	database := os.Getenv("STAGING_DB")
	if database == "" {
		return nil, errors.New("STAGING_DB environment variable is required")
	}

	cfg := &StagingConfig{
		Host:     getEnv("STAGING_HOST", "localhost"),
		Port:     getEnvAsInt("STAGING_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("STAGING_SSLMODE", "disable"),

		SnapshotTable: getEnv("STAGING_SNAPSHOT_TABLE", "staging_data"),
		AuditTable:    getEnv("STAGING_AUDIT_TABLE", "transform_warnings"),

		MaxOpenConns:     getEnvAsInt("STAGING_MAX_OPEN_CONNS", 10),
		MaxIdleConns:     getEnvAsInt("STAGING_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  getEnvAsDuration("STAGING_CONN_MAX_LIFETIME_SECONDS", 1800),
		ConnMaxIdleTime:  getEnvAsDuration("STAGING_CONN_MAX_IDLE_TIME_SECONDS", 600),
		StatementTimeout: getEnvAsDuration("STAGING_STATEMENT_TIMEOUT_SECONDS", 300),
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *StagingConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
