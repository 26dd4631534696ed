package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/purpleworks/workshop/internal/config"
)

func TestNew(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_OUTPUT", "stderr")

	logger, err := New()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  appConfig.LoggerConfig
	}{
		{"json info", appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"console debug", appConfig.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"}},
		{"warn to stderr", appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "stderr"}},
		{"empty config", appConfig.LoggerConfig{}},
		{"invalid level falls back to info", appConfig.LoggerConfig{Level: "not-a-level", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Debugw("logger built", "case", tt.name)
		})
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workshop.log")
	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Infow("team added", "team_id", "t1")
	logger.Debugw("dropped below level")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "team added", entry["msg"])
	assert.Equal(t, "t1", entry["team_id"])
	assert.Equal(t, "workshop", entry["service"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewWithConfig_UnwritableOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "workshop.log")
	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json", Output: path})
	assert.Error(t, err)
	assert.Nil(t, logger)
}
