// Package retry repeats store connection attempts with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config is a retry policy.
type Config struct {
	// MaxAttempts counts the first attempt too.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps every wait.
	MaxDelay time.Duration
	// Multiplier grows the wait after each failed attempt.
	Multiplier float64
	// RetryableErrors are error message fragments worth another attempt, matched
	// case-insensitively. An empty list retries every error.
	RetryableErrors []string
}

// ErrNoAttempts is returned for a policy that allows no attempt at all.
var ErrNoAttempts = errors.New("retry: MaxAttempts must be greater than 0")

// networkErrors are dial failures shared by every networked store.
var networkErrors = []string{
	"connection refused",
	"connection reset",
	"connection timed out",
	"i/o timeout",
	"dial tcp",
	"no such host",
	"network is unreachable",
}

// DefaultConfig retries every error five times over roughly half a minute.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}

// PostgresConfig retries network failures and a server that is still starting.
func PostgresConfig() Config {
	return withErrors(DefaultConfig(),
		"the database system is starting up",
		"too many connections",
		"server closed the connection",
	)
}

// MongoConfig retries network failures, server selection timeouts and a replica
// set that has not elected a primary yet.
func MongoConfig() Config {
	return withErrors(DefaultConfig(),
		"server selection error",
		"no reachable servers",
		"notwritableprimary",
		"not primary",
		"ping failed",
	)
}

// SQLiteConfig retries a database file held by another writer.
func SQLiteConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = 100 * time.Millisecond
	cfg.MaxDelay = 2 * time.Second
	cfg.RetryableErrors = []string{"database is locked", "sqlite_busy"}
	return cfg
}

func withErrors(cfg Config, extra ...string) Config {
	cfg.RetryableErrors = append(append([]string{}, networkErrors...), extra...)
	return cfg
}

// Retryable reports whether err matches the policy.
func (c Config) Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if len(c.RetryableErrors) == 0 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range c.RetryableErrors {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// Backoff is the wait after the given zero-based failed attempt, before jitter.
func (c Config) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	mult := c.Multiplier
	if mult < 1 {
		mult = 1
	}

	delay := float64(c.InitialDelay) * math.Pow(mult, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// jitter spreads d by up to 10% either way.
func jitter(d time.Duration) time.Duration {
	//nolint:gosec // jitter has no security requirement
	return d + time.Duration(float64(d)*0.1*(rand.Float64()*2-1))
}

// DoWithResult calls fn until it succeeds, returns a non-retryable error, runs out
// of attempts or ctx ends. The last error is returned.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, ErrNoAttempts
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !cfg.Retryable(err) || attempt == cfg.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(jitter(cfg.Backoff(attempt)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
