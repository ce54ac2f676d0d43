package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "team A's queue", cfg.Bucket.Name)
	assert.Equal(t, "walrus", cfg.Bucket.Strategy)

	assert.Empty(t, cfg.Clock.Start)
	assert.Equal(t, 24*time.Hour, cfg.ClockStep())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.False(t, cfg.Board.HideDescriptors)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithComments(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{
		// the version field is optional for hand-written files
		"version": 1,
		"bucket": {
			"name": "team B's queue",
			"strategy": "team", // flat list
		},
		/* deterministic clock */
		"clock": {"start": "2020-01-01T00:00:00Z", "step": "1h"},
		"log": {"level": "debug", "format": "json"},
		"board": {"hideDescriptors": true},
	}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0644))

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "team B's queue", cfg.Bucket.Name)
	assert.Equal(t, "team", cfg.Bucket.Strategy)
	assert.Equal(t, time.Hour, cfg.ClockStep())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Board.HideDescriptors)

	start, ok, err := cfg.ClockStart()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoadConfigPartialUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(`{"bucket": {"name": "ops"}}`), 0644))

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.Bucket.Name)
	assert.Equal(t, "walrus", cfg.Bucket.Strategy)
	assert.Equal(t, "24h", cfg.Clock.Step)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "syntax", content: `{"bucket": `, errMsg: "invalid config syntax"},
		{name: "strategy", content: `{"bucket": {"strategy": "stack"}}`, errMsg: "bucket.strategy"},
		{name: "step", content: `{"clock": {"step": "daily"}}`, errMsg: "clock.step"},
		{name: "start", content: `{"clock": {"start": "yesterday"}}`, errMsg: "clock.start"},
		{name: "level", content: `{"log": {"level": "loud"}}`, errMsg: "log.level"},
		{name: "format", content: `{"log": {"format": "xml"}}`, errMsg: "log.format"},
		{name: "future version", content: `{"version": 99}`, errMsg: "newer than supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(tt.content), 0644))

			_, err := LoadConfig(tmpDir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := DefaultConfig()
	cfg.Bucket.Name = "saved"
	cfg.Clock.Start = "1592-03-14T00:00:00Z"
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfigUnwritable(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Bucket: BucketConfig{Strategy: "team"},
		Log:    LogConfig{Level: "warn"},
	}

	merged := MergeWithDefaults(cfg)

	assert.Equal(t, "team A's queue", merged.Bucket.Name)
	assert.Equal(t, "team", merged.Bucket.Strategy)
	assert.Equal(t, "24h", merged.Clock.Step)
	assert.Equal(t, "warn", merged.Log.Level)
	assert.Equal(t, "text", merged.Log.Format)
}

func TestMergeWithDefaultsEmptyConfig(t *testing.T) {
	merged := MergeWithDefaults(&Config{})
	assert.Equal(t, DefaultConfig(), merged)
}

func TestClockStartUnset(t *testing.T) {
	_, ok, err := DefaultConfig().ClockStart()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		wantInfo bool
		contains string
	}{
		{name: "text info", level: "info", format: "text", wantInfo: true, contains: "msg=hello"},
		{name: "json debug", level: "debug", format: "json", wantInfo: true, contains: `"msg":"hello"`},
		{name: "warn hides info", level: "warn", format: "text", wantInfo: false},
		{name: "unknown level falls back to info", level: "LOUD", format: "text", wantInfo: true, contains: "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Log.Level = tt.level
			cfg.Log.Format = tt.format

			var buf bytes.Buffer
			cfg.NewLogger(&buf).Info("hello")

			if !tt.wantInfo {
				assert.Empty(t, buf.String())
				return
			}
			assert.True(t, strings.Contains(buf.String(), tt.contains), buf.String())
		})
	}
}

func TestParseLevelCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}
