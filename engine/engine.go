package engine

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"go.uber.org/zap"
)

// maxTicksPerFrame bounds the fixed-step catch-up after a long stall.
const maxTicksPerFrame = 8

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine: no window configured")

// Surface is the part of a window the engine loop drives. window.Window satisfies it.
type Surface interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	IsRunning() bool
	SwapBuffers()
	RequestClose()
	Width() int
	Height() int
}

// engine implements the Engine interface.
// Runs input polling, fixed-step updates and drawing on the goroutine that owns the GL context.
type engine struct {
	mu     *sync.Mutex
	logger *zap.Logger

	window Surface

	profiler         *profiler.Profiler
	profilingEnabled bool
	profileInterval  time.Duration

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)

	lastFrame   time.Time
	lastRender  time.Time
	accumulator time.Duration

	quit    bool
	restart bool
}

// Engine is the main entry point for the engine.
// It orchestrates the frame loop, scene updates and drawing.
type Engine interface {
	// Window returns the surface the engine drives, or nil.
	//
	// Returns:
	//   - Surface: the window
	Window() Surface

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the fixed update rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the fixed update step.
	//
	// Returns:
	//   - time.Duration: duration of one tick
	TickRate() time.Duration

	// SetTickCallback registers the function called each fixed tick, before scenes update.
	// Use this for game logic and input processing.
	//
	// Parameters:
	//   - callback: function receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each rendered frame after the scenes draw
	// and before the buffers swap.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous rendered frame in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key and sets the scene's z-index to match.
	// Scenes are updated and drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key without cleaning it up.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run initializes every registered scene and runs the frame loop until the window closes,
	// Quit is called or a restart is requested.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()

	// RequestRestart stops the loop after the current frame and marks the run as needing a restart.
	RequestRestart()

	// RestartRequested reports whether the last run ended with RequestRestart.
	//
	// Returns:
	//   - bool: true if a restart was requested
	RestartRequested() bool

	// CleanUp releases every registered scene.
	CleanUp()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern. When a window
// is configured its resize events are forwarded to every scene that renders to the window.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		logger:          zap.NewNop(),
		scenes:          make(map[int]scene.Scene),
		engineTickRate:  time.Second / 60,
		profileInterval: time.Second,
		sleep:           time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(
		profiler.WithLogger(e.logger.Named("profiler")),
		profiler.WithInterval(e.profileInterval),
	)

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() Surface {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	e.mu.Lock()
	e.quit = false
	e.restart = false
	e.accumulator = 0
	e.mu.Unlock()

	width, height := e.window.Width(), e.window.Height()
	for _, s := range e.sortedScenes() {
		s.Init()
		if s.Target() == nil && width > 0 && height > 0 {
			if err := s.SetViewport(width, height); err != nil {
				e.logger.Warn("scene viewport", zap.String("scene", s.Name()), zap.Error(err))
			}
		}
	}

	e.logger.Info("engine loop starting",
		zap.Int("scenes", len(e.scenes)),
		zap.Duration("tick", e.engineTickRate),
		zap.Duration("frame_limit", e.renderFrameLimit),
	)

	start := time.Now()
	e.lastFrame = start
	e.lastRender = start
	e.window.SetUpdateCallback(func() {
		e.frame(time.Now())
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)

	e.logger.Info("engine loop stopped", zap.Bool("restart", e.RestartRequested()))
	return nil
}

func (e *engine) Quit() {
	e.mu.Lock()
	e.quit = true
	e.mu.Unlock()
}

func (e *engine) RequestRestart() {
	e.mu.Lock()
	e.quit = true
	e.restart = true
	e.mu.Unlock()
}

func (e *engine) RestartRequested() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.restart
}

func (e *engine) CleanUp() {
	for _, s := range e.sortedScenes() {
		s.CleanUp()
	}
}

// frame runs one loop iteration: fixed ticks for the elapsed time, then at most one rendered frame.
func (e *engine) frame(now time.Time) {
	elapsed := max(now.Sub(e.lastFrame), 0)
	e.lastFrame = now
	e.accumulator += elapsed

	scenes := e.sortedScenes()
	step := e.engineTickRate
	stepSeconds := float32(step.Seconds())

	ticks := 0
	for e.accumulator >= step && ticks < maxTicksPerFrame {
		if e.tickCallback != nil {
			e.tickCallback(stepSeconds)
		}
		for _, s := range scenes {
			s.Update(stepSeconds)
		}
		e.accumulator -= step
		ticks++
	}
	if ticks == maxTicksPerFrame && e.accumulator >= step {
		e.logger.Debug("dropping update backlog", zap.Duration("backlog", e.accumulator))
		e.accumulator = 0
	}

	e.render(now, scenes)

	if e.stopping() {
		e.window.RequestClose()
	}
}

// render draws every active scene in ascending z-index order and presents the frame.
func (e *engine) render(now time.Time, scenes []scene.Scene) {
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - now.Sub(e.lastRender); remaining > 0 {
			e.sleep(remaining)
			now = now.Add(remaining)
		}
	}
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	// Scenes on the window composite into one frame: only the first one that clears does so.
	windowCleared := false
	for _, s := range scenes {
		if !s.Active() {
			continue
		}
		if s.Target() != nil {
			s.Draw()
			continue
		}
		clear := s.Clears() && !windowCleared
		windowCleared = windowCleared || clear
		s.DrawLayer(clear)
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	e.window.SwapBuffers()

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

// resize forwards window size changes to scenes that draw straight to the window.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.sortedScenes() {
		if s.Target() != nil {
			continue
		}
		if err := s.SetViewport(width, height); err != nil {
			e.logger.Warn("scene viewport", zap.String("scene", s.Name()), zap.Error(err))
		}
	}
}

func (e *engine) stopping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quit
}

// sortedScenes returns the registered scenes ordered by ascending key.
func (e *engine) sortedScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.scenes[k])
	}
	return out
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickDuration(fps)
}

func (e *engine) TickRate() time.Duration {
	return e.engineTickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		return
	}
	s.SetZIndex(key)
	e.mu.Lock()
	e.scenes[key] = s
	e.mu.Unlock()
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	delete(e.scenes, key)
	e.mu.Unlock()
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickDuration converts a tick rate to a step, defaulting to 60Hz.
func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameDuration converts a frame cap to a minimum frame time; 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
