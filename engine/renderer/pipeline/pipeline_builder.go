package pipeline

import "github.com/Carmen-Shannon/rusteroids/engine/gpu"

// PipelineBuilderOption is a functional option for configuring a pipeline before it is compiled.
type PipelineBuilderOption func(p *pipeline)

// WithEntryPoints sets the vertex and fragment shader entry points.
//
// Parameters:
//   - vertex: the vertex entry point name
//   - fragment: the fragment entry point name
//
// Returns:
//   - PipelineBuilderOption: a function that applies the entry points to a pipeline
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntryPoint = vertex
		p.fragmentEntryPoint = fragment
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that applies the topology to a pipeline
func WithTopology(topology gpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that applies the cull mode to a pipeline
func WithCullMode(mode gpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithFrontFace sets the winding order treated as front-facing.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: a function that applies the front face to a pipeline
func WithFrontFace(frontFace gpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithBlend sets the color blend mode.
//
// Parameters:
//   - blend: the blend mode
//
// Returns:
//   - PipelineBuilderOption: a function that applies the blend mode to a pipeline
func WithBlend(blend gpu.BlendMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = blend
	}
}

// WithSampleCount sets the multisample count. Values below 1 are clamped to 1.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - PipelineBuilderOption: a function that applies the sample count to a pipeline
func WithSampleCount(count uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.sampleCount = max(count, 1)
	}
}
