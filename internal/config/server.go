package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP listener configuration.
// Event streams and page dialog waits clear WriteTimeout per request.
type ServerConfig struct {
	// Host is the listen host; empty listens on every interface.
	Host string
	// Port is the listen port, with or without a leading colon.
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// ShutdownTimeout bounds the graceful drain after SIGINT or SIGTERM.
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv loads listener configuration from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:              GetEnv("SERVER_HOST", ""),
		Port:              GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:       GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		ReadHeaderTimeout: GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
		WriteTimeout:      GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:       GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:   GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Address is the host:port the server listens on.
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate validates listener configuration.
func (c ServerConfig) Validate() error {
	port, err := strconv.Atoi(strings.TrimPrefix(c.Port, ":"))
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %q", c.Port)
	}

	for name, d := range map[string]time.Duration{
		"SERVER_READ_TIMEOUT":        c.ReadTimeout,
		"SERVER_READ_HEADER_TIMEOUT": c.ReadHeaderTimeout,
		"SERVER_WRITE_TIMEOUT":       c.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":        c.IdleTimeout,
		"SERVER_SHUTDOWN_TIMEOUT":    c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be greater than 0", name)
		}
	}
	return nil
}
