package config

import "fmt"

// FeedConfig configures the cross-instance change relay.
// The relay is disabled when RedisAddr is empty.
type FeedConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Channel is the pub/sub channel carrying store changes.
	Channel string
}

// LoadFeedConfigFromEnv loads change feed configuration from environment variables.
func LoadFeedConfigFromEnv() FeedConfig {
	return FeedConfig{
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		Channel:       GetEnv("REDIS_CHANNEL", "workshop:teams"),
	}
}

// RelayEnabled reports whether store changes are relayed through redis.
func (c FeedConfig) RelayEnabled() bool {
	return c.RedisAddr != ""
}

// Validate validates change feed configuration.
func (c FeedConfig) Validate() error {
	if !c.RelayEnabled() {
		return nil
	}
	if c.Channel == "" {
		return fmt.Errorf("REDIS_CHANNEL must not be empty when REDIS_ADDR is set")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	return nil
}
