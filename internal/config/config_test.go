package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Validation.NSplits)
	assert.Equal(t, 24, cfg.Validation.WindowSize)
	assert.Equal(t, 0.95, cfg.Confidence.Level)
	assert.Equal(t, 100.98, cfg.Confidence.PointForecast)
	assert.Equal(t, 84, cfg.Generator.Months)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
validation:
  n_splits: 3
  window_size: 12
generator:
  seed: 7
confidence:
  level: 0.90
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Validation.NSplits)
	assert.Equal(t, 12, cfg.Validation.WindowSize)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, 0.90, cfg.Confidence.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, 84, cfg.Generator.Months)
	assert.Equal(t, 100.0, cfg.Validation.Model.C)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad splits", "validation:\n  n_splits: 0\n"},
		{"bad window", "validation:\n  window_size: 1\n"},
		{"bad level", "confidence:\n  level: 1.5\n"},
		{"bad forecast", "confidence:\n  point_forecast: -1\n"},
		{"bad bias threshold", "diagnostics:\n  bias_threshold: 0\n"},
		{"empty output dir", "output:\n  dir: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "validation: [not a mapping"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
