// Package config resolves split settings from flags, environment variables,
// and an optional config file through viper.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lacquerai/jsonl-split/internal/dataset"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// JSONL_SPLIT_TRAIN_RATIO.
const EnvPrefix = "JSONL_SPLIT"

// Keys under which settings are stored in viper and in the config file.
const (
	KeyTrainRatio  = "train_ratio"
	KeyValidRatio  = "valid_ratio"
	KeySeed        = "seed"
	KeyMetricsFile = "metrics_file"
	KeyLogLevel    = "log_level"
	KeyOutput      = "output"
	KeyQuiet       = "quiet"
	KeyVerbose     = "verbose"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// LogLevels lists the accepted --log-level values.
var LogLevels = []string{"debug", "info", "warn", "error", "disabled"}

// Config holds every setting that can come from the config file or the
// environment. Input and output paths are flags only.
type Config struct {
	// Proportion of records assigned to the training subset.
	TrainRatio float64 `json:"train_ratio" yaml:"train_ratio"`
	// Proportion of records assigned to the validation subset.
	ValidRatio float64 `json:"valid_ratio" yaml:"valid_ratio"`
	// Shuffle seed. Leave unset for a different split on every run.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Optional Prometheus textfile written after a successful split.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	// One of debug, info, warn, error, disabled.
	LogLevel string `json:"log_level" yaml:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	// One of text, json, yaml.
	Output string `json:"output" yaml:"output" jsonschema:"enum=text,enum=json,enum=yaml"`
	// Suppress non-essential output.
	Quiet bool `json:"quiet" yaml:"quiet"`
	// Show per-subset details.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// Ratios returns the configured split proportions.
func (c *Config) Ratios() dataset.Ratios {
	return dataset.Ratios{Train: c.TrainRatio, Valid: c.ValidRatio}
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	r := dataset.DefaultRatios()
	return Config{
		TrainRatio: r.Train,
		ValidRatio: r.Valid,
		LogLevel:   "warn",
		Output:     OutputText,
	}
}

// Configure registers defaults and environment handling on v. The seed has no
// default so that v.IsSet reports whether one was supplied.
func Configure(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyTrainRatio, d.TrainRatio)
	v.SetDefault(KeyValidRatio, d.ValidRatio)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyQuiet, d.Quiet)
	v.SetDefault(KeyVerbose, d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the resolved settings out of v. Ratios are not range-checked;
// see dataset.Ratios.Warnings.
func Load(v *viper.Viper) (*Config, error) {
	trainRatio, err := cast.ToFloat64E(v.Get(KeyTrainRatio))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyTrainRatio, err)
	}
	validRatio, err := cast.ToFloat64E(v.Get(KeyValidRatio))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyValidRatio, err)
	}

	cfg := &Config{
		TrainRatio:  trainRatio,
		ValidRatio:  validRatio,
		MetricsFile: v.GetString(KeyMetricsFile),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		Quiet:       v.GetBool(KeyQuiet),
		Verbose:     v.GetBool(KeyVerbose),
	}

	if v.IsSet(KeySeed) {
		seed, err := cast.ToInt64E(v.Get(KeySeed))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", KeySeed, err)
		}
		cfg.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown output formats and log levels.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", c.Output)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("unsupported log level %q (want one of %s)", c.LogLevel, strings.Join(LogLevels, ", "))
	}
	return nil
}
