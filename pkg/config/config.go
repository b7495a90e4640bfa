// Package config provides the configuration system for flowprep.
// It defines a single EngineConfig structure that is passed explicitly into
// the preprocessing engine constructor; there is no process-wide mutable
// settings object.
//
// The configuration is organized into logical sections:
//   - Limits: input size guards enforced before the pipeline runs
//   - Output: where and how transformed datasets are written
//   - Split: train/test split seeding and stratification
//   - Scaling: numeric scaler behavior toggles
//   - Observability: metrics and logging
//
// Example usage:
//
//	cfg := config.NewEngineConfig()
//	cfg.Limits.MaxRows = 50000
//	cfg.Output.Dir = "/var/lib/flowprep/processed"
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import "fmt"

// EngineConfig is the configuration structure for the preprocessing engine.
type EngineConfig struct {
	// Limits guard input size before any stage runs
	Limits LimitsConfig `yaml:"limits" json:"limits"`

	// Output controls where transformed datasets are written
	Output OutputConfig `yaml:"output" json:"output"`

	// Split controls train/test partitioning
	Split SplitConfig `yaml:"split" json:"split"`

	// Scaling controls numeric scaler behavior
	Scaling ScalingConfig `yaml:"scaling" json:"scaling"`

	// Observability settings for monitoring and debugging
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// LimitsConfig contains input size guards. Zero values mean unlimited.
// The orchestration layer normally enforces its own quota checks before
// invoking the engine; these are a second line of defense.
type LimitsConfig struct {
	// MaxRows rejects source files with more data rows than this
	MaxRows int `yaml:"max_rows" json:"max_rows"`
	// MaxFileSizeMB rejects source files larger than this, in megabytes
	MaxFileSizeMB int `yaml:"max_file_size_mb" json:"max_file_size_mb"`
}

// OutputConfig controls output file placement and format.
type OutputConfig struct {
	// Dir is where generated output files land when no explicit output
	// path is given to the engine
	Dir string `yaml:"dir" json:"dir"`
	// Delimiter is the field delimiter for written files
	Delimiter string `yaml:"delimiter" json:"delimiter"`
}

// SplitConfig controls train/test partitioning.
type SplitConfig struct {
	// Seed makes row assignment reproducible across runs
	Seed int64 `yaml:"seed" json:"seed"`
	// Stratify partitions proportionally by the last column when feasible.
	// Falls back to a plain random split when any class has fewer than
	// two rows or the column is continuous.
	Stratify bool `yaml:"stratify" json:"stratify"`
}

// ScalingConfig controls numeric scaler behavior.
type ScalingConfig struct {
	// ExcludeBinaryColumns skips columns whose values are all 0/1, keeping
	// one-hot indicator columns out of the scaler. Off by default: scaling
	// indicator columns is the documented historical behavior.
	ExcludeBinaryColumns bool `yaml:"exclude_binary_columns" json:"exclude_binary_columns"`
}

// ObservabilityConfig contains monitoring and observability settings.
type ObservabilityConfig struct {
	// EnableMetrics activates Prometheus metrics collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// EnableLogging controls logging output
	EnableLogging bool `yaml:"enable_logging" json:"enable_logging"`
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// NewEngineConfig creates an EngineConfig with sensible defaults.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Limits: LimitsConfig{
			MaxRows:       0,
			MaxFileSizeMB: 0,
		},
		Output: OutputConfig{
			Dir:       ".",
			Delimiter: ",",
		},
		Split: SplitConfig{
			Seed:     42,
			Stratify: false,
		},
		Scaling: ScalingConfig{
			ExcludeBinaryColumns: false,
		},
		Observability: ObservabilityConfig{
			EnableMetrics: false,
			EnableLogging: true,
			LogLevel:      "info",
		},
	}
}

// Validate validates the configuration for correctness.
// The engine calls this on construction to catch errors early.
func (ec *EngineConfig) Validate() error {
	if ec.Limits.MaxRows < 0 {
		return fmt.Errorf("max_rows cannot be negative")
	}
	if ec.Limits.MaxFileSizeMB < 0 {
		return fmt.Errorf("max_file_size_mb cannot be negative")
	}
	if ec.Output.Dir == "" {
		return fmt.Errorf("output dir is required")
	}
	if len(ec.Output.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character")
	}
	switch ec.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (oc *OutputConfig) DelimiterRune() rune {
	for _, r := range oc.Delimiter {
		return r
	}
	return ','
}
