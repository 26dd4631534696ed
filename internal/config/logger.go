package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Log encodings.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is a zap level name (debug, info, warn, error).
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Format: GetEnv("LOG_FORMAT", LogFormatJSON),
		Output: GetEnv("LOG_OUTPUT", "stdout"),
	}
}

// ZapLevel parses Level, falling back to info.
func (c LoggerConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Development reports whether the developer-friendly zap preset applies:
// console output or debug logging.
func (c LoggerConfig) Development() bool {
	return c.Format == LogFormatConsole || c.ZapLevel() == zapcore.DebugLevel
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil || level > zapcore.ErrorLevel {
		return fmt.Errorf("invalid log level: %s (must be: debug, info, warn, error)", c.Level)
	}
	if c.Format != LogFormatJSON && c.Format != LogFormatConsole {
		return fmt.Errorf("invalid log format: %s (must be: json, console)", c.Format)
	}
	return nil
}
