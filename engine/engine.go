package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/profiler"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// Window is the platform side of the frame loop. window.Window satisfies it; so does a
// terminal frontend or a test fake.
type Window interface {
	input.Source

	// IsRunning reports false once the user closed the window.
	IsRunning() bool

	// SetResizeCallback registers the framebuffer resize handler.
	SetResizeCallback(callback func(width, height int))

	Width() int
	Height() int
}

// Clock is a monotonic time source in seconds.
type Clock interface {
	Time() float64
}

// Resizer is implemented by sinks that own a framebuffer, such as the GPU chessboard pass.
type Resizer interface {
	Resize(width, height int)
}

// engine implements the Engine interface.
// Runs poll, update and draw on the calling goroutine, one tick per frame.
type engine struct {
	mu *sync.Mutex

	running bool
	quit    bool

	window Window
	clock  Clock
	sink   draw.Sink
	logger *log.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(deltaTime float32, events []selection.Event)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)
}

// Engine is the main entry point for the visualizer.
// It polls the window, advances the current scene and draws it to the sink once per frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - Window: the window instance, or nil for a headless engine
	Window() Window

	// Sink returns the draw target each frame is sent to.
	Sink() draw.Sink

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called after each scene update.
	//
	// Parameters:
	//   - callback: receives the frame's delta time in seconds and the selection events it produced
	SetTickCallback(callback func(deltaTime float32, events []selection.Event))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given key.
	// The active scene with the lowest key is the current scene.
	//
	// Parameters:
	//   - key: the ordering key (lower wins)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key.
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes.
	Scenes() map[int]scene.Scene

	// CurrentScene returns the active scene with the lowest key, or nil if none is active.
	CurrentScene() scene.Scene

	// Tick runs one frame: poll input, update the current scene, draw it and tick the profiler.
	// Returns false once the scene requested quit, the window closed or Quit was called.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//
	// Returns:
	//   - bool: whether the loop should continue
	//   - error: the first draw error
	Tick(dt float32) (bool, error)

	// Run ticks until Tick reports false or fails. Blocks the calling goroutine, which must be
	// the one that created the window.
	//
	// Returns:
	//   - error: ErrNoWindow, or the draw error that stopped the loop
	Run() error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Registers a resize handler on the window that forwards new framebuffer sizes to every scene
// and to the sink when it implements Resizer.
//
// Parameters:
//   - options: functional options for engine configuration (window, sink, profiling, scenes...)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:     &sync.Mutex{},
		scenes: make(map[int]scene.Scene),
		logger: log.Default(),
		sleep:  time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger, time.Second)
	}
	if e.clock == nil {
		if c, ok := e.window.(Clock); ok {
			e.clock = c
		} else {
			e.clock = newWallClock()
		}
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Sink() draw.Sink {
	return e.sink
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.Scenes() {
		s.Resize(width, height)
	}
	if r, ok := e.sink.(Resizer); ok {
		r.Resize(width, height)
	}
}

func (e *engine) Tick(dt float32) (bool, error) {
	e.mu.Lock()
	if e.quit {
		e.mu.Unlock()
		return false, nil
	}
	win := e.window
	e.mu.Unlock()

	if win != nil {
		win.PollEvents()
		if !win.IsRunning() {
			e.logger.Printf("[Engine] window closed")
			e.Quit()
			return false, nil
		}
	}

	s := e.CurrentScene()
	if s != nil && win != nil {
		events := s.Update(dt, win)
		if e.tickCallback != nil {
			e.tickCallback(dt, events)
		}
		if s.QuitRequested() {
			e.logger.Printf("[Engine] quit requested by scene %s", s.Name())
			e.Quit()
			return false, nil
		}
	}

	if s != nil && e.sink != nil {
		if err := s.Draw(e.sink); err != nil {
			return false, fmt.Errorf("engine: %w", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	return true, nil
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	last := e.clock.Time()
	for {
		frameStart := e.clock.Time()
		dt := float32(frameStart - last)
		last = frameStart

		ok, err := e.Tick(dt)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			elapsed := time.Duration((e.clock.Time() - frameStart) * float64(time.Second))
			if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
}

// Quit stops the loop after the current frame.
func (e *engine) Quit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quit = true
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32, events []selection.Event)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[int]scene.Scene, len(e.scenes))
	for k, s := range e.scenes {
		out[k] = s
	}
	return out
}

func (e *engine) CurrentScene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			return s
		}
	}
	return nil
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// wallClock measures seconds since the engine was built.
type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Time() float64 {
	return time.Since(c.start).Seconds()
}
