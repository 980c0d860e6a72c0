// Package profiler logs frame rate and memory statistics at a fixed interval.
package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one interval's worth of measurements.
type Stats struct {
	FPS float64
	// HeapMB is live heap memory.
	HeapMB float64
	// AllocRateMB is heap allocation churn per second over the interval.
	AllocRateMB float64
	GCCount     uint32
	// LastPause and MaxPause are GC pauses, MaxPause over the interval.
	LastPause time.Duration
	MaxPause  time.Duration
	// SysMB is memory obtained from the OS.
	SysMB float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
type Profiler struct {
	clock          func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a Profiler. The interval defaults to one second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		clock:          time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()
	return p
}

// SetInterval changes the reporting interval. Non-positive values are ignored.
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Interval returns the reporting interval.
func (p *Profiler) Interval() time.Duration {
	return p.updateInterval
}

// Last returns the most recently logged statistics.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame. When the interval has elapsed it logs the statistics at Info.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := p.clock()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}
	if gc := stats.GCCount; gc > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		stats.LastPause = time.Duration(p.memStats.PauseNs[(gc-1)%256])
		start := p.lastGCCount
		if gc-start > 256 {
			start = gc - 256
		}
		for i := start; i < gc; i++ {
			stats.MaxPause = max(stats.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	slog.Info("profiler",
		"fps", stats.FPS,
		"heap_mb", stats.HeapMB,
		"alloc_rate_mb_s", stats.AllocRateMB,
		"gc", stats.GCCount,
		"gc_last", stats.LastPause,
		"gc_max", stats.MaxPause,
		"sys_mb", stats.SysMB,
	)

	p.last = stats
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
