package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// FileName is the config file looked up in the working directory
const FileName = ".walrus.json"

// Config represents the full walrus configuration
type Config struct {
	Bucket BucketConfig `json:"bucket"`
	Clock  ClockConfig  `json:"clock"`
	Log    LogConfig    `json:"log"`
	Board  BoardConfig  `json:"board"`
}

// BucketConfig selects the default bucket
type BucketConfig struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// ClockConfig controls the clock used to timestamp state changes. With Start
// set, a stepping clock starts there and advances by Step on every reading;
// otherwise the wall clock is used.
type ClockConfig struct {
	Start string `json:"start,omitempty"`
	Step  string `json:"step"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// BoardConfig contains interactive board settings
type BoardConfig struct {
	HideDescriptors bool `json:"hideDescriptors"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Bucket: BucketConfig{
			Name:     "team A's queue",
			Strategy: "walrus",
		},
		Clock: ClockConfig{
			Step: "24h",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads .walrus.json from dir, falling back to defaults when the
// file does not exist
func LoadConfig(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile loads the config at path. Comments and trailing commas are
// allowed. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse standardizes JSONC input, migrates it and fills in defaults
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config syntax: %w", err)
	}

	cfg, err := ParseVersionedConfig(std)
	if err != nil {
		return nil, err
	}
	cfg = MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Bucket.Name == "" {
		cfg.Bucket.Name = defaults.Bucket.Name
	}
	if cfg.Bucket.Strategy == "" {
		cfg.Bucket.Strategy = defaults.Bucket.Strategy
	}

	if cfg.Clock.Step == "" {
		cfg.Clock.Step = defaults.Clock.Step
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}

	return cfg
}

// Validate checks every field that has a closed set of values
func (c *Config) Validate() error {
	switch c.Bucket.Strategy {
	case "team", "walrus":
	default:
		return fmt.Errorf("bucket.strategy: unknown strategy %q", c.Bucket.Strategy)
	}

	if _, err := time.ParseDuration(c.Clock.Step); err != nil {
		return fmt.Errorf("clock.step: %w", err)
	}
	if _, _, err := c.ClockStart(); err != nil {
		return err
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}

	return nil
}

// ClockStart returns the configured start time and whether one is set
func (c *Config) ClockStart() (time.Time, bool, error) {
	if c.Clock.Start == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, c.Clock.Start)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("clock.start: %w", err)
	}
	return t, true, nil
}

// ClockStep returns the configured step, or zero if it cannot be parsed
func (c *Config) ClockStep() time.Duration {
	d, _ := time.ParseDuration(c.Clock.Step)
	return d
}

// NewLogger builds the slog logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level: unknown level %q", s)
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
