// Package config provides layered configuration loading for winnow.
// Values come from defaults, an optional YAML file, then environment variables;
// command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chriscorrea/winnow/internal/dedup"
	"github.com/chriscorrea/winnow/internal/logging"
	"github.com/chriscorrea/winnow/internal/similarity"
	"gopkg.in/yaml.v3"
)

// Config contains all winnow configuration settings.
type Config struct {
	// Dedup contains settings for the similarity graph and representative selection.
	Dedup DedupConfig `yaml:"dedup"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `yaml:"logging"`
}

// DedupConfig configures token deduplication.
type DedupConfig struct {
	// Threshold is the minimum similarity score for two tokens to be linked.
	// Range: 0 to 100
	Threshold int `yaml:"threshold"`

	// Scorer names the similarity method: "ratio", "levenshtein" or "stem".
	Scorer string `yaml:"scorer"`

	// TieBreakSuffix is preferred when two tokens have equal neighbor counts.
	// An empty value disables the tie-break preference.
	TieBreakSuffix string `yaml:"tie_break_suffix"`

	// Workers is the number of goroutines scoring pairs. 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// LoggingConfig configures winnow's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "error" (default), "warn", "info" or "debug".
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Dedup: DedupConfig{
			Threshold:      dedup.DefaultThreshold,
			Scorer:         similarity.Ratio.String(),
			TieBreakSuffix: dedup.DefaultTieBreakSuffix,
			Workers:        0,
		},
		Logging: LoggingConfig{
			Level: "error",
		},
	}
}

// DefaultPath returns ~/.config/winnow/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "winnow", "config.yaml")
}

// Load builds the configuration: defaults -> YAML file -> environment variables.
// An explicit path must exist; the default path is optional.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg = fileConfig
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// no config file is fine
		default:
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Dedup.Threshold < 0 || c.Dedup.Threshold > similarity.MaxScore {
		return fmt.Errorf("threshold must be between 0 and %d, got %d", similarity.MaxScore, c.Dedup.Threshold)
	}

	if _, err := similarity.ParseMethod(c.Dedup.Scorer); err != nil {
		return err
	}

	if c.Dedup.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Dedup.Workers)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// applyEnvOverrides applies WINNOW_* environment variables to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WINNOW_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WINNOW_THRESHOLD %q: %w", v, err)
		}
		cfg.Dedup.Threshold = n
	}

	if v := os.Getenv("WINNOW_SCORER"); v != "" {
		cfg.Dedup.Scorer = v
	}

	// set-but-empty disables the tie-break, so presence is what matters here
	if v, ok := os.LookupEnv("WINNOW_TIE_BREAK_SUFFIX"); ok {
		cfg.Dedup.TieBreakSuffix = v
	}

	if v := os.Getenv("WINNOW_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WINNOW_WORKERS %q: %w", v, err)
		}
		cfg.Dedup.Workers = n
	}

	if v := os.Getenv("WINNOW_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return nil
}
