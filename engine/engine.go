// Package engine runs the frame loop: host events go to the scene and renderer, one frame per
// window update, with frame errors handled by kind.
package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/profiler"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer"
	"github.com/Carmen-Shannon/rusteroids/engine/window"
	"github.com/pkg/errors"
)

// Scene is the game side of the loop. Every method is called on the main thread.
type Scene interface {
	// Setup registers the scene's geometry with the renderer. Called once by Run.
	Setup(r renderer.Renderer) error

	// Resize is called with every non-zero window size, before the renderer is resized.
	Resize(width, height int)

	// Key receives key transitions the renderer did not handle.
	Key(event common.InputEvent)

	// Tick advances the scene and uploads its transforms. Called once per frame before Render.
	Tick(r renderer.Renderer) error

	// ApplyConfig hot-applies a reloaded configuration.
	ApplyConfig(cfg config.Config)
}

// engine implements the Engine interface.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	scene    Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	// configUpdates delivers validated reloads; nil when hot reload is off.
	configUpdates <-chan config.Config

	// configured is set by the first non-zero resize; frames are skipped until then.
	configured bool

	// err is the fatal error that stopped the loop.
	err error
}

// Engine drives one scene through one renderer inside one window.
type Engine interface {
	// Window returns the host window.
	Window() window.Window

	// Renderer returns the frame driver.
	Renderer() renderer.Renderer

	// EnableProfiler turns on periodic frame statistics.
	EnableProfiler()

	// DisableProfiler turns off periodic frame statistics.
	DisableProfiler()

	// ProfilerEnabled reports whether frame statistics are being logged.
	ProfilerEnabled() bool

	// Run sets up the scene, wires the window callbacks, performs the initial resize and
	// processes window messages until the window closes or a fatal frame error occurs.
	//
	// Returns:
	//   - error: the scene setup error or the fatal frame error, nil on a normal close
	Run() error

	// Quit asks the window to close after the current frame.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an engine around an open window and a constructed renderer.
//
// Parameters:
//   - win: the host window
//   - r: the renderer drawing into the window's surface
//   - scene: the game scene
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(win window.Window, r renderer.Renderer, scene Scene, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:   win,
		renderer: r,
		scene:    scene,
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window       { return e.window }
func (e *engine) Renderer() renderer.Renderer { return e.renderer }
func (e *engine) EnableProfiler()             { e.profilingEnabled = true }
func (e *engine) DisableProfiler()            { e.profilingEnabled = false }
func (e *engine) ProfilerEnabled() bool       { return e.profilingEnabled }

func (e *engine) Run() error {
	if err := e.scene.Setup(e.renderer); err != nil {
		return errors.Wrap(err, "engine: scene setup")
	}

	e.window.SetResizeCallback(e.resize)
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.key(common.InputEvent{Key: keyCode, Pressed: true})
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		e.key(common.InputEvent{Key: keyCode, Pressed: false})
	})
	e.window.SetCloseCallback(func() {
		slog.Info("close requested")
	})
	e.window.SetUpdateCallback(e.frame)

	e.resize(e.window.Size())
	e.window.ProcessMessages()
	return e.err
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.scene.Resize(width, height)
	e.renderer.Resize(width, height)
	e.configured = true
}

func (e *engine) key(event common.InputEvent) {
	if e.renderer.Input(event) {
		return
	}
	e.scene.Key(event)
}

// frame runs one iteration: drain config reloads, tick the scene, render, and react to the frame error.
func (e *engine) frame() {
	if !e.configured || e.err != nil {
		return
	}
	e.drainConfigUpdates()

	if err := e.scene.Tick(e.renderer); err != nil {
		slog.Error("scene tick failed", "error", err)
		e.stop(err)
		return
	}

	err := e.renderer.Render()
	switch {
	case err == nil:
	case gpu.IsRecoverable(err):
		slog.Debug("surface lost or outdated, reconfiguring", "error", err)
		e.renderer.Resize(e.renderer.Size())
	case gpu.IsFatal(err):
		slog.Error("out of memory", "error", err)
		e.stop(err)
		return
	case gpu.IsTimeout(err):
		slog.Warn("surface timeout", "error", err)
	default:
		slog.Error("render failed", "error", err)
		e.stop(err)
		return
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

func (e *engine) stop(err error) {
	e.err = err
	e.window.RequestClose()
}

func (e *engine) drainConfigUpdates() {
	for {
		select {
		case cfg, ok := <-e.configUpdates:
			if !ok {
				e.configUpdates = nil
				return
			}
			e.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig hot-applies physics through the scene, plus profiler enablement and interval.
func (e *engine) applyConfig(cfg config.Config) {
	e.scene.ApplyConfig(cfg)
	e.profilingEnabled = cfg.Profiler.Enabled
	if interval, err := cfg.Profiler.IntervalDuration(); err == nil {
		e.profiler.SetInterval(interval)
	}
	slog.Info("config applied", "profiler", cfg.Profiler.Enabled)
}
