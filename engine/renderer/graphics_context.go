package renderer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pkg/errors"
)

// frameLatency is the desired maximum number of frames queued ahead of presentation.
const frameLatency = 2

// graphicsContext is the implementation of the GraphicsContext interface.
type graphicsContext struct {
	mu *sync.Mutex

	device  gpu.Device
	queue   gpu.Queue
	surface gpu.Surface
	config  gpu.SurfaceConfiguration

	width  int
	height int

	// preferredPresentMode is used when the surface supports it, otherwise the first reported mode is.
	preferredPresentMode *gpu.PresentMode
}

// GraphicsContext owns the device, queue, and configured presentation surface.
type GraphicsContext interface {
	// Resize reconfigures the surface. Does nothing if either dimension is zero or negative.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Size returns the last accepted surface size.
	//
	// Returns:
	//   - int: the width in pixels
	//   - int: the height in pixels
	Size() (int, int)

	// Format returns the negotiated surface format.
	Format() gpu.TextureFormat

	// Config returns the surface configuration currently applied.
	Config() gpu.SurfaceConfiguration

	Device() gpu.Device
	Queue() gpu.Queue

	// AcquireFrame takes the next swapchain image.
	//
	// Returns:
	//   - gpu.Frame: the frame to render into
	//   - error: a *gpu.FrameError if no frame could be acquired
	AcquireFrame() (gpu.Frame, error)

	// Submit hands a finished command buffer to the queue.
	Submit(cmd gpu.CommandBuffer)

	// Present schedules the frame for display.
	Present(frame gpu.Frame)

	// Release frees the surface and device.
	Release()
}

var _ GraphicsContext = &graphicsContext{}

// NewGraphicsContext opens the backend and configures its surface at width x height.
// The format is the first sRGB format reported, falling back to the first format; the alpha mode
// is the first reported.
//
// Parameters:
//   - ctx: cancels the blocking adapter and device requests
//   - backend: the graphics backend to open
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - opts: functional options
//
// Returns:
//   - GraphicsContext: the configured context
//   - error: an error if no adapter or device could be acquired, or the surface cannot be configured
func NewGraphicsContext(ctx context.Context, backend gpu.Backend, width, height int, opts ...GraphicsContextBuilderOption) (GraphicsContext, error) {
	g := &graphicsContext{
		mu:     &sync.Mutex{},
		width:  max(width, 1),
		height: max(height, 1),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "graphics context")
	}
	device, queue, surface, err := backend.Open(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "graphics context: open backend")
	}
	if err := ctx.Err(); err != nil {
		device.Release()
		surface.Release()
		return nil, errors.Wrap(err, "graphics context")
	}

	caps := surface.Capabilities()
	if len(caps.Formats) == 0 || len(caps.PresentModes) == 0 || len(caps.AlphaModes) == 0 {
		device.Release()
		surface.Release()
		return nil, errors.New("graphics context: surface is not compatible with the adapter")
	}

	g.device = device
	g.queue = queue
	g.surface = surface
	g.config = gpu.SurfaceConfiguration{
		Format:                     selectFormat(caps.Formats),
		Width:                      uint32(g.width),
		Height:                     uint32(g.height),
		PresentMode:                selectPresentMode(caps.PresentModes, g.preferredPresentMode),
		AlphaMode:                  caps.AlphaModes[0],
		DesiredMaximumFrameLatency: frameLatency,
	}
	if err := surface.Configure(g.config); err != nil {
		g.Release()
		return nil, errors.Wrap(err, "graphics context: configure surface")
	}

	slog.Info("surface configured",
		"format", g.config.Format.Name,
		"present_mode", g.config.PresentMode.String(),
		"alpha_mode", g.config.AlphaMode,
		"width", g.width,
		"height", g.height,
	)
	return g, nil
}

func selectFormat(formats []gpu.TextureFormat) gpu.TextureFormat {
	for _, f := range formats {
		if f.SRGB {
			return f
		}
	}
	return formats[0]
}

func selectPresentMode(modes []gpu.PresentMode, preferred *gpu.PresentMode) gpu.PresentMode {
	if preferred != nil {
		for _, m := range modes {
			if m == *preferred {
				return m
			}
		}
		slog.Warn("present mode not supported, using first reported", "wanted", preferred.String(), "using", modes[0].String())
	}
	return modes[0]
}

func (g *graphicsContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.width, g.height = width, height
	g.config.Width = uint32(width)
	g.config.Height = uint32(height)
	if err := g.surface.Configure(g.config); err != nil {
		slog.Error("surface reconfigure failed", "width", width, "height", height, "error", err)
	}
}

func (g *graphicsContext) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

func (g *graphicsContext) Format() gpu.TextureFormat {
	return g.config.Format
}

func (g *graphicsContext) Config() gpu.SurfaceConfiguration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.config
}

func (g *graphicsContext) Device() gpu.Device {
	return g.device
}

func (g *graphicsContext) Queue() gpu.Queue {
	return g.queue
}

func (g *graphicsContext) AcquireFrame() (gpu.Frame, error) {
	frame, err := g.surface.AcquireFrame()
	if err != nil {
		var fe *gpu.FrameError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, gpu.NewFrameError(gpu.ErrSurfaceLost, err)
	}
	return frame, nil
}

func (g *graphicsContext) Submit(cmd gpu.CommandBuffer) {
	g.queue.Submit(cmd)
}

func (g *graphicsContext) Present(frame gpu.Frame) {
	frame.Present()
}

func (g *graphicsContext) Release() {
	if g.surface != nil {
		g.surface.Release()
		g.surface = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
}
