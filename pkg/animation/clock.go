package animation

import "time"

// Clock provides wall time to tickers. The default implementation uses
// system time; tests inject a fake via SetClock to step frames exactly.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the ticker clock and returns the previous one so
// callers can restore it during cleanup. Nil restores system time.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
