package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often statistics are logged. Non-positive values keep the default.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.SetInterval(interval)
	}
}

// WithClock replaces the wall clock used to measure intervals.
func WithClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.clock = clock
	}
}
