package engine

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-actor/engine/profiler"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene"
	"github.com/Carmen-Shannon/oxy-actor/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the engine's profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / tps)
	}
}

// WithFixedStep makes every tick report exactly the configured tick period instead of the
// measured wall-clock delta, so headless runs are reproducible.
//
// Parameters:
//   - fixed: true to use a fixed step
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFixedStep(fixed bool) EngineBuilderOption {
	return func(e *engine) {
		e.fixedStep = fixed
	}
}

// WithTickLimit stops the engine after n ticks. Zero runs until Quit.
//
// Parameters:
//   - n: the tick limit
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickLimit(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.tickLimit = n
	}
}

// WithWindow sets the window whose message loop Run drives. Without one the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining update order (lower first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithLogger sets the logger used for engine diagnostics.
//
// Parameters:
//   - logger: the logger, nil keeps log.Default()
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
