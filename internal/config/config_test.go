package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_FILE", "DATA_SHEET", "ALPHA", "Z_THRESHOLD", "REPORT_MD", "REPORT_HTML"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/mental_health_survey.csv", cfg.Data.File)
	assert.Equal(t, "Sheet1", cfg.Data.SheetName)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, 3.0, cfg.Analysis.ZThreshold)
	assert.Empty(t, cfg.Report.MarkdownFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_FILE", "responses.xlsx")
	t.Setenv("DATA_SHEET", "Responses")
	t.Setenv("ALPHA", "0.01")
	t.Setenv("Z_THRESHOLD", "2.5")
	t.Setenv("REPORT_MD", "out/report.md")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "responses.xlsx", cfg.Data.File)
	assert.Equal(t, "Responses", cfg.Data.SheetName)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	assert.Equal(t, 2.5, cfg.Analysis.ZThreshold)
	assert.Equal(t, "out/report.md", cfg.Report.MarkdownFile)
}

func TestLoadRejectsAlphaOutOfRange(t *testing.T) {
	clearEnv(t)

	for _, alpha := range []string{"0", "1", "1.5", "-0.05"} {
		t.Setenv("ALPHA", alpha)
		_, err := Load()
		assert.Errorf(t, err, "alpha %s should fail validation", alpha)
	}
}

func TestLoadRejectsNonPositiveZThreshold(t *testing.T) {
	clearEnv(t)
	t.Setenv("Z_THRESHOLD", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Z_THRESHOLD")
}

func TestLoadIgnoresUnparseableFloat(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALPHA", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha, "Unparseable values fall back to the default")
}
