package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the host window: it owns the surface handle and delivers resize, key, close and redraw events.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration.
	// The frame loop runs from here, on the main thread.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetCloseCallback sets the callback fired once when a close is requested, by the user or by RequestClose.
	SetCloseCallback(callback func())

	// SurfaceDescriptor returns a platform-specific wgpu.SurfaceDescriptor built by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling the update callback each iteration.
	ProcessMessages()

	// Size returns the framebuffer size in pixels.
	Size() (int, int)
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied to user resizes. A zero maximum means unlimited.
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height track the framebuffer, not the window frame.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	closeNotified bool

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onClose   func()
}

var _ Window = &engineWindow{}

// NewWindow creates and shows the host window. Panics if GLFW or the window cannot be created.
// Must be called from the main goroutine; the OS thread is locked for GLFW.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Rusteroids",
		minWidth:  200,
		minHeight: 200,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *engineWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32))   { w.onKeyDown = callback }
func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32))     { w.onKeyUp = callback }
func (w *engineWindow) SetCloseCallback(callback func())                   { w.onClose = callback }

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
	w.notifyClose()
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
	w.notifyClose()
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

// notifyClose fires the close callback at most once.
func (w *engineWindow) notifyClose() {
	if w.closeNotified {
		return
	}
	w.closeNotified = true
	if w.onClose != nil {
		w.onClose()
	}
}
