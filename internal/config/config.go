// Package config loads and validates the analysis configuration from YAML,
// falling back to the defaults used in the published impact study.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Bodhi8/kc-datacenter-impact/internal/confidence"
	"github.com/Bodhi8/kc-datacenter-impact/internal/diagnostics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/sensitivity"
	"github.com/Bodhi8/kc-datacenter-impact/internal/timeseries"
	"github.com/Bodhi8/kc-datacenter-impact/internal/validate"
)

// Config is the full configuration surface of the backtest CLI.
type Config struct {
	Validation  validate.Config            `yaml:"validation"`
	Diagnostics diagnostics.Config         `yaml:"diagnostics"`
	Confidence  ConfidenceConfig           `yaml:"confidence"`
	Generator   timeseries.GeneratorConfig `yaml:"generator"`
	Sensitivity sensitivity.Assumptions    `yaml:"sensitivity"`
	Output      OutputConfig               `yaml:"output"`
}

// ConfidenceConfig holds the interval settings and the long-range point
// forecast the margin is applied to.
type ConfidenceConfig struct {
	Level float64 `yaml:"level"`
	// PointForecast is the 2035 wholesale price projection in $/MWh.
	PointForecast float64               `yaml:"point_forecast"`
	Conversion    confidence.Conversion `yaml:"conversion"`
}

// OutputConfig controls artifact writing.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration of the published analysis.
func Default() *Config {
	return &Config{
		Validation:  validate.DefaultConfig(),
		Diagnostics: diagnostics.DefaultConfig(),
		Confidence: ConfidenceConfig{
			Level:         0.95,
			PointForecast: 100.98,
			Conversion:    confidence.DefaultConversion(),
		},
		Generator:   timeseries.DefaultGeneratorConfig(),
		Sensitivity: sensitivity.DefaultAssumptions(),
		Output:      OutputConfig{Dir: "./artifacts/backtest"},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the composed configuration.
func (c *Config) Validate() error {
	if err := c.Validation.Validate(); err != nil {
		return err
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if c.Confidence.Level <= 0 || c.Confidence.Level >= 1 {
		return fmt.Errorf("config: confidence level must be in (0, 1), got %g", c.Confidence.Level)
	}
	if c.Confidence.PointForecast <= 0 {
		return fmt.Errorf("config: point forecast must be positive, got %g", c.Confidence.PointForecast)
	}
	if err := c.Confidence.Conversion.Validate(); err != nil {
		return err
	}
	if c.Diagnostics.BiasThreshold <= 0 {
		return fmt.Errorf("config: bias threshold must be positive, got %g", c.Diagnostics.BiasThreshold)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("config: output dir must not be empty")
	}
	return nil
}
