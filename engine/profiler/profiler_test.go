package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(time.Second), WithClock(clock.Now))

	for i := 0; i < 99; i++ {
		clock.now = clock.now.Add(10 * time.Millisecond)
		assert.False(t, p.Tick(), "frame %d", i)
	}
	clock.now = clock.now.Add(10 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 100, p.Last().FPS, 1e-9)
	assert.Greater(t, p.Last().SysMB, 0.0)

	clock.now = clock.now.Add(time.Millisecond)
	assert.False(t, p.Tick())
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(-time.Second))
	assert.Equal(t, time.Second, p.Interval())

	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.Interval())
}
