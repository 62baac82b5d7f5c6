// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Input CSV export
	CSVPath      string
	CSVDelimiter string

	// Excel output
	ExcelPath string
	SheetName string

	// Collaborator configuration; nil when the stage is disabled
	Staging    *StagingConfig
	SharePoint *SharePointConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		CSVPath:      getEnv("CSV_PATH", "data/datafeedback.csv"),
		CSVDelimiter: getEnv("CSV_DELIMITER", ","),
		ExcelPath:    getEnv("EXCEL_OUTPUT", "data/output/output.xlsx"),
		SheetName:    getEnv("EXCEL_SHEET_NAME", "Source_Raw"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}

	if getEnvAsBool("STAGING_ENABLED", false) {
		stagingCfg, err := LoadStagingConfig()
		if err != nil {
			return nil, errors.New("failed to load staging configuration: " + err.Error())
		}
		cfg.Staging = stagingCfg
	}

	if os.Getenv("SHAREPOINT_SITE") != "" {
		spCfg, err := LoadSharePointConfig()
		if err != nil {
			return nil, errors.New("failed to load SharePoint configuration: " + err.Error())
		}
		cfg.SharePoint = spCfg
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return errors.New("CSV path is required")
	}

	if c.ExcelPath == "" {
		return errors.New("excel output path is required")
	}

	if c.SheetName == "" {
		return errors.New("excel sheet name is required")
	}

	if len([]rune(c.CSVDelimiter)) != 1 {
		return errors.New("CSV delimiter must be a single character")
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSVDelimiter)[0]
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
