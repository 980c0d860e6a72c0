// Package wgpu_backend implements the gpu contract on top of the cogentcore WebGPU binding.
package wgpu_backend

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// LogLevelEnv names the environment variable that sets the native wgpu log level.
const LogLevelEnv = "WGPU_LOG_LEVEL"

// Backend opens a WebGPU adapter, device, and queue compatible with one window surface.
type Backend struct {
	surfaceDescriptor    *wgpu.SurfaceDescriptor
	forceFallbackAdapter bool
}

var _ gpu.Backend = &Backend{}

// NewBackend returns a backend for the surface described by surfaceDescriptor.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, usually from the window host
//   - opts: functional options
//
// Returns:
//   - *Backend: the unopened backend
func NewBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...BackendBuilderOption) *Backend {
	b := &Backend{surfaceDescriptor: surfaceDescriptor}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open requests an adapter compatible with the surface, then a device and its queue.
// The requests block; ctx is checked before and after each of them.
func (b *Backend) Open(ctx context.Context) (gpu.Device, gpu.Queue, gpu.Surface, error) {
	ApplyLogLevel(os.Getenv(LogLevelEnv))

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(b.surfaceDescriptor)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    surface,
	})
	if err != nil {
		surface.Release()
		return nil, nil, nil, errors.Wrap(err, "request adapter")
	}
	if err := ctx.Err(); err != nil {
		adapter.Release()
		surface.Release()
		return nil, nil, nil, err
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		return nil, nil, nil, errors.Wrap(err, "request device")
	}
	if err := ctx.Err(); err != nil {
		device.Release()
		adapter.Release()
		surface.Release()
		return nil, nil, nil, err
	}
	slog.Info("adapter and device acquired", "fallback", b.forceFallbackAdapter)

	q := &queue{queue: device.GetQueue()}
	d := &deviceImpl{device: device, queue: q}
	s := &surfaceImpl{surface: surface, adapter: adapter, device: device}
	return d, q, s, nil
}

// ApplyLogLevel maps a level name (off, error, warn, info, debug, trace) to the native log level.
// Unknown or empty names leave the level unchanged.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - bool: whether a level was applied
func ApplyLogLevel(level string) bool {
	switch strings.ToUpper(level) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	default:
		return false
	}
	return true
}
