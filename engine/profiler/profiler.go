package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is one profiler report.
type Stats struct {
	FPS          float64
	HeapMB       float64
	AllocRateMBs float64
	NumGC        uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Logs stats through zap at a configurable interval.
type Profiler struct {
	logger         *zap.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger reports are written to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets the time between reports.
//
// Parameters:
//   - interval: the report interval; non-positive values keep the 1 second default
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and reports go to
// a no-op logger unless WithLogger is given.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zap.NewNop(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	return p.tickAt(time.Now())
}

// Last returns the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) tickAt(currentTime time.Time) bool {
	p.frameCount++
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc is cumulative and Sys is the process footprint.
	s := Stats{
		FPS:    float64(p.frameCount) / elapsed.Seconds(),
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:  p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMBs = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.NumGC > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.NumGC-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.NumGC-startIdx > 256 {
			startIdx = s.NumGC - 256
		}
		for i := startIdx; i < s.NumGC; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("profiler",
		zap.Float64("fps", s.FPS),
		zap.Float64("heap_mb", s.HeapMB),
		zap.Float64("alloc_rate_mb_s", s.AllocRateMBs),
		zap.Uint32("gc", s.NumGC),
		zap.Uint64("gc_last_pause_us", s.LastPauseUs),
		zap.Uint64("gc_max_pause_us", s.MaxPauseUs),
		zap.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
