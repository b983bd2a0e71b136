package profiler

import (
	"log"
	"runtime"
	"strings"
	"time"
)

// Profiler tracks tick rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	logger         *log.Logger
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	probes         []Probe
	now            func() time.Time
}

// Probe contributes one labelled figure to each stats line, such as the number of
// active controllers or the bytes of pose data uploaded.
type Probe struct {
	Label string
	Value func() string
}

// NewProfiler creates a new Profiler with the given options.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// AddProbe appends a figure reported with every stats line.
//
// Parameters:
//   - label: the label printed before the value
//   - value: returns the current value
func (p *Profiler) AddProbe(label string, value func() string) {
	p.probes = append(p.probes, Probe{Label: label, Value: value})
}

// Tick should be called once per simulation tick.
// Logs statistics when the update interval has elapsed: ticks per second, heap usage,
// allocation rate, GC count/pause times, total memory and every registered probe.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.tickCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	tps := float64(p.tickCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	var extra strings.Builder
	for _, probe := range p.probes {
		extra.WriteString(" | ")
		extra.WriteString(probe.Label)
		extra.WriteString(": ")
		extra.WriteString(probe.Value())
	}

	p.logger.Printf("[Profiler] TPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB%s",
		tps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB, extra.String())

	p.tickCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
