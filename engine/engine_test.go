package engine

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/gputest"
	"github.com/Carmen-Shannon/rusteroids/engine/model"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer"
	"github.com/Carmen-Shannon/rusteroids/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of update iterations. Events scheduled in script fire before the
// update of the matching iteration.
type fakeWindow struct {
	width, height int
	iterations    int
	script        map[int]func(w *fakeWindow)

	running   bool
	updates   int
	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onClose   func()
}

var _ window.Window = &fakeWindow{}

func newFakeWindow(width, height, iterations int) *fakeWindow {
	return &fakeWindow{width: width, height: height, iterations: iterations, running: true, script: map[int]func(*fakeWindow){}}
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32))   { w.onKeyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(callback func(keyCode uint32))     { w.onKeyUp = callback }
func (w *fakeWindow) SetCloseCallback(callback func())                   { w.onClose = callback }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor         { return nil }
func (w *fakeWindow) IsRunning() bool                                    { return w.running }
func (w *fakeWindow) Size() (int, int)                                   { return w.width, w.height }

func (w *fakeWindow) Close() error {
	w.running = false
	return nil
}

func (w *fakeWindow) RequestClose() {
	if w.running && w.onClose != nil {
		w.onClose()
	}
	w.running = false
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.iterations && w.running; i++ {
		if event, ok := w.script[i]; ok {
			event(w)
		}
		w.updates++
		w.onUpdate()
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.onResize(width, height)
}

type fakeScene struct {
	setupErr error
	tickErr  error

	geometry renderer.GeometryID
	ticks    int
	resizes  [][2]int
	keys     []common.InputEvent
	configs  []config.Config
}

func (s *fakeScene) Setup(r renderer.Renderer) error {
	if s.setupErr != nil {
		return s.setupErr
	}
	id, err := r.AddGeometry([]model.Vertex{{}, {Position: [2]float32{1, 1}}})
	s.geometry = id
	return err
}

func (s *fakeScene) Resize(width, height int)      { s.resizes = append(s.resizes, [2]int{width, height}) }
func (s *fakeScene) Key(event common.InputEvent)   { s.keys = append(s.keys, event) }
func (s *fakeScene) ApplyConfig(cfg config.Config) { s.configs = append(s.configs, cfg) }

func (s *fakeScene) Tick(r renderer.Renderer) error {
	s.ticks++
	if s.tickErr != nil {
		return s.tickErr
	}
	return r.Update(s.geometry, common.IdentityMatrix())
}

func newTestEngine(t *testing.T, win *fakeWindow, opts ...EngineBuilderOption) (Engine, *fakeScene, *gputest.Backend) {
	t.Helper()
	b := gputest.NewBackend()
	r, err := renderer.NewRenderer(context.Background(), b, win.width, win.height)
	require.NoError(t, err)
	s := &fakeScene{}
	return NewEngine(win, r, s, opts...), s, b
}

func presented(b *gputest.Backend) int {
	n := 0
	for _, f := range b.Surface.Frames {
		if f.Presented {
			n++
		}
	}
	return n
}

func TestRunRendersEveryIteration(t *testing.T) {
	win := newFakeWindow(800, 600, 3)
	e, s, b := newTestEngine(t, win)

	require.NoError(t, e.Run())

	assert.Equal(t, [][2]int{{800, 600}}, s.resizes)
	assert.Equal(t, 3, s.ticks)
	assert.Equal(t, 3, presented(b))
	assert.Len(t, b.Queue.Submitted, 3)
}

func TestRunSkipsFramesUntilConfigured(t *testing.T) {
	win := newFakeWindow(0, 0, 4)
	win.script[2] = func(w *fakeWindow) { w.resize(640, 480) }
	e, s, b := newTestEngine(t, win)

	require.NoError(t, e.Run())

	assert.Equal(t, 2, s.ticks)
	assert.Equal(t, 2, presented(b))
	assert.Equal(t, uint32(640), b.Surface.LastConfig().Width)
}

func TestZeroResizeIsIgnored(t *testing.T) {
	win := newFakeWindow(800, 600, 2)
	win.script[1] = func(w *fakeWindow) { w.resize(0, 600) }
	e, s, b := newTestEngine(t, win)
	configs := len(b.Surface.Configs)

	require.NoError(t, e.Run())

	assert.Len(t, s.resizes, 1)
	assert.Len(t, b.Surface.Configs, configs+1)
	assert.Equal(t, 2, s.ticks)
}

func TestLostSurfaceIsReconfigured(t *testing.T) {
	win := newFakeWindow(800, 600, 2)
	e, s, b := newTestEngine(t, win)
	b.Surface.AcquireErrs = []error{gpu.NewFrameError(gpu.ErrSurfaceLost, nil)}
	configs := len(b.Surface.Configs)

	require.NoError(t, e.Run())

	// One for the initial resize, one for the lost surface.
	assert.Len(t, b.Surface.Configs, configs+2)
	assert.Equal(t, uint32(800), b.Surface.LastConfig().Width)
	assert.Equal(t, 2, s.ticks)
	assert.Equal(t, 1, presented(b))
}

func TestOutOfMemoryStopsLoop(t *testing.T) {
	win := newFakeWindow(800, 600, 5)
	e, s, b := newTestEngine(t, win)
	b.Surface.AcquireErrs = []error{gpu.NewFrameError(gpu.ErrOutOfMemory, nil)}

	err := e.Run()

	assert.ErrorIs(t, err, gpu.ErrOutOfMemory)
	assert.False(t, win.running)
	assert.Equal(t, 1, win.updates)
	assert.Equal(t, 1, s.ticks)
	assert.Equal(t, 0, presented(b))
}

func TestTimeoutSkipsFrame(t *testing.T) {
	win := newFakeWindow(800, 600, 3)
	e, s, b := newTestEngine(t, win)
	b.Surface.AcquireErrs = []error{gpu.NewFrameError(gpu.ErrSurfaceTimeout, nil)}

	require.NoError(t, e.Run())

	assert.Equal(t, 3, s.ticks)
	assert.Equal(t, 2, presented(b))
}

func TestSceneErrorsStopLoop(t *testing.T) {
	win := newFakeWindow(800, 600, 3)
	e, s, _ := newTestEngine(t, win)
	s.tickErr = errors.New("tick exploded")

	assert.EqualError(t, e.Run(), "tick exploded")
	assert.Equal(t, 1, s.ticks)

	win = newFakeWindow(800, 600, 3)
	e, s, _ = newTestEngine(t, win)
	s.setupErr = errors.New("no geometry")

	assert.EqualError(t, e.Run(), "engine: scene setup: no geometry")
	assert.Equal(t, 0, win.updates)
}

func TestKeysReachScene(t *testing.T) {
	win := newFakeWindow(800, 600, 2)
	win.script[0] = func(w *fakeWindow) { w.onKeyDown(common.KeyW) }
	win.script[1] = func(w *fakeWindow) { w.onKeyUp(common.KeyW) }
	e, s, _ := newTestEngine(t, win)

	require.NoError(t, e.Run())

	assert.Equal(t, []common.InputEvent{
		{Key: common.KeyW, Pressed: true},
		{Key: common.KeyW, Pressed: false},
	}, s.keys)
}

func TestConfigUpdatesAreDrainedEachFrame(t *testing.T) {
	updates := make(chan config.Config, 2)
	cfg := config.Default()
	cfg.Profiler.Enabled = true
	cfg.Profiler.Interval = "250ms"
	updates <- cfg

	win := newFakeWindow(800, 600, 2)
	win.script[1] = func(*fakeWindow) { close(updates) }
	e, s, _ := newTestEngine(t, win, WithConfigUpdates(updates))

	require.NoError(t, e.Run())

	require.Len(t, s.configs, 1)
	assert.True(t, s.configs[0].Profiler.Enabled)
	assert.True(t, e.ProfilerEnabled())
}

func TestQuitClosesWindow(t *testing.T) {
	win := newFakeWindow(800, 600, 10)
	e, s, _ := newTestEngine(t, win, WithProfiling(true))
	win.script[3] = func(*fakeWindow) { e.Quit() }

	require.NoError(t, e.Run())
	assert.Equal(t, 4, s.ticks)

	e.DisableProfiler()
	assert.False(t, e.ProfilerEnabled())
}
