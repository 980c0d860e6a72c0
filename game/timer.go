package game

import (
	"time"

	"github.com/loov/hrtime"
)

// Timer measures the wall-clock interval between frames.
type Timer struct {
	clock func() time.Duration
	last  time.Duration
}

// NewTimer starts a timer at the clock's current reading.
//
// Parameters:
//   - clock: a monotonic clock; nil uses hrtime.Now
//
// Returns:
//   - *Timer: the started timer
func NewTimer(clock func() time.Duration) *Timer {
	if clock == nil {
		clock = hrtime.Now
	}
	return &Timer{clock: clock, last: clock()}
}

// Tick starts a new frame and returns the seconds elapsed since the previous one.
func (t *Timer) Tick() float32 {
	now := t.clock()
	elapsed := now - t.last
	t.last = now
	return float32(elapsed.Seconds())
}
