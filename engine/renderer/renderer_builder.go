package renderer

import (
	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/camera"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/pipeline"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color each frame's render pass clears to. Defaults to transparent black.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(color common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithShaderSource replaces the embedded WGSL program. The source must declare the same
// bindings and vertex inputs as the embedded one.
//
// Parameters:
//   - source: WGSL source
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader source to a renderer
func WithShaderSource(source string) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderSource = source
	}
}

// WithPresentMode prefers a present mode over the first one the surface reports.
//
// Parameters:
//   - mode: the preferred present mode
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode to a renderer
func WithPresentMode(mode gpu.PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = &mode
	}
}

// WithPipelineOptions forwards options to the pipeline build.
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineOptions = append(r.pipelineOptions, opts...)
	}
}

// WithCameraOptions forwards options to the camera, e.g. to move the clip planes.
func WithCameraOptions(opts ...camera.CameraBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.cameraOptions = append(r.cameraOptions, opts...)
	}
}
