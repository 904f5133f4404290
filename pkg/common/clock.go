package common

import "time"

// Clock supplies the wall-clock time used for commit timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Used in tests and for
// reproducible commits.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

// NewFixedClock creates a FixedClock from Unix seconds.
func NewFixedClock(unixSeconds int64) FixedClock {
	return FixedClock{At: time.Unix(unixSeconds, 0).UTC()}
}

// NowUnixSeconds returns the clock's current time as Unix seconds.
func NowUnixSeconds(c Clock) int64 {
	if c == nil {
		c = SystemClock{}
	}
	return c.Now().Unix()
}
