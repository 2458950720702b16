package engine

import (
	"log"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/profiler"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
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
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default one-second profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine polls for input and lifetime.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSink sets where each frame is drawn: the GPU pass, a terminal frontend or a draw.Recorder.
//
// Parameters:
//   - sink: the draw target
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSink(sink draw.Sink) EngineBuilderOption {
	return func(e *engine) {
		e.sink = sink
	}
}

// WithClock overrides the frame clock. Defaults to the window when it implements Clock.
func WithClock(c Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithLogger routes the engine's "[Engine]" lines, and the default profiler's, to logger.
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithScene registers a scene at the given key during engine construction.
// The active scene with the lowest key is the one updated and drawn.
//
// Parameters:
//   - key: the ordering key (lower wins)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
