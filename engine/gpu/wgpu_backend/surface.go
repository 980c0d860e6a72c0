package wgpu_backend

import (
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

type surfaceImpl struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var _ gpu.Surface = &surfaceImpl{}

func (s *surfaceImpl) Capabilities() gpu.SurfaceCapabilities {
	caps := s.surface.GetCapabilities(s.adapter)

	out := gpu.SurfaceCapabilities{
		Formats:      make([]gpu.TextureFormat, 0, len(caps.Formats)),
		PresentModes: make([]gpu.PresentMode, 0, len(caps.PresentModes)),
		AlphaModes:   make([]gpu.AlphaMode, 0, len(caps.AlphaModes)),
	}
	for _, f := range caps.Formats {
		out.Formats = append(out.Formats, fromTextureFormat(f))
	}
	for _, m := range caps.PresentModes {
		if mode, ok := fromPresentMode(m); ok {
			out.PresentModes = append(out.PresentModes, mode)
		}
	}
	for _, a := range caps.AlphaModes {
		out.AlphaModes = append(out.AlphaModes, gpu.AlphaMode(a))
	}
	return out
}

// Configure applies the configuration. The native binding does not expose a frame latency
// setting, so DesiredMaximumFrameLatency is only logged.
func (s *surfaceImpl) Configure(config gpu.SurfaceConfiguration) error {
	caps := s.surface.GetCapabilities(s.adapter)
	if len(caps.AlphaModes) == 0 {
		return errors.New("configure surface: no alpha modes reported")
	}
	alphaMode := caps.AlphaModes[0]
	for _, a := range caps.AlphaModes {
		if gpu.AlphaMode(a) == config.AlphaMode {
			alphaMode = a
		}
	}

	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      wgpu.TextureFormat(config.Format.ID),
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: toPresentMode(config.PresentMode),
		AlphaMode:   alphaMode,
	})
	slog.Debug("surface configured", "width", config.Width, "height", config.Height, "frame_latency", config.DesiredMaximumFrameLatency)
	return nil
}

func (s *surfaceImpl) AcquireFrame() (gpu.Frame, error) {
	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, classifyAcquireError(err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, gpu.NewFrameError(gpu.ErrSurfaceLost, err)
	}
	return &frame{surface: s.surface, texture: texture, view: &textureView{view: view}}, nil
}

func (s *surfaceImpl) Release() {
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
}

// classifyAcquireError maps a native surface texture error onto the frame error taxonomy.
// The binding reports the surface status only in the error text; anything unrecognised is treated as lost.
func classifyAcquireError(err error) *gpu.FrameError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "outofmemory"), strings.Contains(msg, "out of memory"):
		return gpu.NewFrameError(gpu.ErrOutOfMemory, err)
	case strings.Contains(msg, "timeout"):
		return gpu.NewFrameError(gpu.ErrSurfaceTimeout, err)
	case strings.Contains(msg, "outdated"):
		return gpu.NewFrameError(gpu.ErrSurfaceOutdated, err)
	default:
		return gpu.NewFrameError(gpu.ErrSurfaceLost, err)
	}
}

type frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *textureView
}

func (f *frame) View() gpu.TextureView {
	return f.view
}

func (f *frame) Present() {
	f.surface.Present()
	f.release()
}

func (f *frame) Discard() {
	f.release()
}

func (f *frame) release() {
	f.view.Release()
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
