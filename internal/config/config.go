package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete application configuration. Statistical
// thresholds live here and are passed into the engines as explicit
// options; the engines never read the environment themselves.
type Config struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Report   ReportConfig
}

// DataConfig holds dataset ingestion settings
type DataConfig struct {
	// File is the survey dataset path (.csv or .xlsx).
	File string
	// SheetName selects the worksheet for xlsx files.
	SheetName string
}

// AnalysisConfig holds the inference thresholds
type AnalysisConfig struct {
	// Alpha is the significance level for interpretation flags.
	Alpha float64
	// ZThreshold is the absolute z-score bound for outlier removal.
	ZThreshold float64
}

// ReportConfig holds report output settings
type ReportConfig struct {
	// MarkdownFile is where the markdown report is written; empty
	// disables the file report.
	MarkdownFile string
	// HTMLFile additionally renders the report to HTML when set.
	HTMLFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Data: DataConfig{
			File:      getEnvOrDefault("DATA_FILE", "data/mental_health_survey.csv"),
			SheetName: getEnvOrDefault("DATA_SHEET", "Sheet1"),
		},
		Analysis: AnalysisConfig{
			Alpha:      getEnvFloatOrDefault("ALPHA", 0.05),
			ZThreshold: getEnvFloatOrDefault("Z_THRESHOLD", 3.0),
		},
		Report: ReportConfig{
			MarkdownFile: getEnvOrDefault("REPORT_MD", ""),
			HTMLFile:     getEnvOrDefault("REPORT_HTML", ""),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Data.File == "" {
		return fmt.Errorf("DATA_FILE is required")
	}
	if cfg.Analysis.Alpha <= 0 || cfg.Analysis.Alpha >= 1 {
		return fmt.Errorf("ALPHA must be in (0, 1), got %g", cfg.Analysis.Alpha)
	}
	if cfg.Analysis.ZThreshold <= 0 {
		return fmt.Errorf("Z_THRESHOLD must be positive, got %g", cfg.Analysis.ZThreshold)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
