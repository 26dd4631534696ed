// Package timeprovider wraps time.Now so callers can substitute a fixed clock in tests.
package timeprovider

import "time"

// TimeProvider returns the current time.
type TimeProvider interface {
	Now() time.Time
}

// New returns a TimeProvider backed by the system clock, in UTC.
func New() TimeProvider {
	return &timeProvider{}
}

type timeProvider struct{}

func (*timeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a TimeProvider that starts at a given instant and advances by Step on every call.
type Fixed struct {
	Current time.Time
	Step    time.Duration
}

// Now returns the current instant and advances the clock.
func (f *Fixed) Now() time.Time {
	now := f.Current
	f.Current = f.Current.Add(f.Step)
	return now
}
