package pipeline

import (
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pkg/errors"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used in labels.
	pipelineKey string

	// The following properties configure the pipeline at creation and can be set with the builder options.

	vertexEntryPoint   string
	fragmentEntryPoint string
	topology           gpu.PrimitiveTopology
	frontFace          gpu.FrontFace
	cullMode           gpu.CullMode
	blend              gpu.BlendMode
	sampleCount        uint32

	// renderPipeline is the compiled pipeline.
	renderPipeline gpu.RenderPipeline
}

// Pipeline is an immutable vertex+fragment render pipeline, built once and reused for every
// frame and every geometry.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// RenderPipeline returns the compiled backend pipeline.
	//
	// Returns:
	//   - gpu.RenderPipeline: the pipeline object
	RenderPipeline() gpu.RenderPipeline

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - gpu.PrimitiveTopology: the topology
	Topology() gpu.PrimitiveTopology

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - gpu.CullMode: the cull mode
	CullMode() gpu.CullMode

	// FrontFace returns the front face winding.
	//
	// Returns:
	//   - gpu.FrontFace: the winding
	FrontFace() gpu.FrontFace

	// Blend returns the color blend mode.
	//
	// Returns:
	//   - gpu.BlendMode: the blend mode
	Blend() gpu.BlendMode

	// SampleCount returns the multisample count.
	//
	// Returns:
	//   - uint32: the sample count
	SampleCount() uint32

	// Bind sets this pipeline on the pass.
	//
	// Parameters:
	//   - pass: the render pass being encoded
	Bind(pass gpu.RenderPass)

	// Release frees the backend pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline compiles a pipeline from shader source, a vertex layout, and the bind group layouts in slot order.
// Defaults: line-strip topology, counter-clockwise front face, back-face culling, a single sample,
// replace blending, no depth/stencil, and vs_main / fs_main entry points.
//
// Parameters:
//   - device: the device to compile on
//   - pipelineKey: the unique key of the pipeline
//   - shaderSource: WGSL source containing both entry points
//   - vertexLayout: the layout of vertex buffer slot 0
//   - bindingLayouts: bind group layouts, index = slot
//   - target: the color target format
//   - opts: functional options overriding the defaults
//
// Returns:
//   - Pipeline: the compiled pipeline
//   - error: an error if the shader or pipeline could not be created
func NewPipeline(
	device gpu.Device,
	pipelineKey string,
	shaderSource string,
	vertexLayout gpu.VertexBufferLayout,
	bindingLayouts []gpu.BindGroupLayout,
	target gpu.TextureFormat,
	opts ...PipelineBuilderOption,
) (Pipeline, error) {
	p := &pipeline{
		pipelineKey:        pipelineKey,
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		topology:           gpu.PrimitiveTopologyLineStrip,
		frontFace:          gpu.FrontFaceCCW,
		cullMode:           gpu.CullModeBack,
		blend:              gpu.BlendModeReplace,
		sampleCount:        1,
	}
	for _, opt := range opts {
		opt(p)
	}

	for i, l := range bindingLayouts {
		if l == nil {
			return nil, errors.Errorf("pipeline %q: binding layout %d is nil", pipelineKey, i)
		}
	}

	created, err := device.CreateRenderPipeline(gpu.RenderPipelineDescriptor{
		Label:              pipelineKey + " Render Pipeline",
		ShaderSource:       shaderSource,
		VertexEntryPoint:   p.vertexEntryPoint,
		FragmentEntryPoint: p.fragmentEntryPoint,
		VertexLayouts:      []gpu.VertexBufferLayout{vertexLayout},
		BindGroupLayouts:   bindingLayouts,
		TargetFormat:       target,
		Primitive: gpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Blend:       p.blend,
		SampleCount: p.sampleCount,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline %q", pipelineKey)
	}
	p.renderPipeline = created
	return p, nil
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) RenderPipeline() gpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) Topology() gpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) CullMode() gpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() gpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) Blend() gpu.BlendMode {
	return p.blend
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) Bind(pass gpu.RenderPass) {
	pass.SetPipeline(p.renderPipeline)
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
