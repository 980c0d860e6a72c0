package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/gputest"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/layout"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layouts(t *testing.T, b *gputest.Backend) []gpu.BindGroupLayout {
	t.Helper()
	camera, err := b.Device.CreateBindGroupLayout(layout.Mat4LayoutDescriptor("camera"))
	require.NoError(t, err)
	model, err := b.Device.CreateBindGroupLayout(layout.Mat4LayoutDescriptor("model"))
	require.NoError(t, err)
	return []gpu.BindGroupLayout{camera, model}
}

func TestNewPipelineDefaults(t *testing.T) {
	b := gputest.NewBackend()
	vertexLayout := layout.VertexLayout(layout.Float32x2, layout.Float32x3)
	target := gpu.TextureFormat{ID: 2, Name: "bgra8unorm-srgb", SRGB: true}

	p, err := NewPipeline(b.Device, "gadget", "// wgsl", vertexLayout, layouts(t, b), target)
	require.NoError(t, err)

	require.Len(t, b.Device.Pipelines, 1)
	desc := b.Device.Pipelines[0].Desc
	assert.Equal(t, "gadget Render Pipeline", desc.Label)
	assert.Equal(t, "// wgsl", desc.ShaderSource)
	assert.Equal(t, "vs_main", desc.VertexEntryPoint)
	assert.Equal(t, "fs_main", desc.FragmentEntryPoint)
	assert.Equal(t, []gpu.VertexBufferLayout{vertexLayout}, desc.VertexLayouts)
	assert.Len(t, desc.BindGroupLayouts, 2)
	assert.Equal(t, target, desc.TargetFormat)
	assert.Equal(t, gpu.PrimitiveState{
		Topology:  gpu.PrimitiveTopologyLineStrip,
		FrontFace: gpu.FrontFaceCCW,
		CullMode:  gpu.CullModeBack,
	}, desc.Primitive)
	assert.Equal(t, gpu.BlendModeReplace, desc.Blend)
	assert.Equal(t, uint32(1), desc.SampleCount)

	assert.Equal(t, "gadget", p.PipelineKey())
	assert.Same(t, b.Device.Pipelines[0], p.RenderPipeline())
}

func TestNewPipelineOptions(t *testing.T) {
	b := gputest.NewBackend()
	p, err := NewPipeline(b.Device, "filled", "", layout.VertexLayout(layout.Float32x2), layouts(t, b), gpu.TextureFormat{},
		WithTopology(gpu.PrimitiveTopologyTriangleList),
		WithCullMode(gpu.CullModeNone),
		WithFrontFace(gpu.FrontFaceCW),
		WithBlend(gpu.BlendModeAlpha),
		WithSampleCount(0),
		WithEntryPoints("v", "f"),
	)
	require.NoError(t, err)

	assert.Equal(t, gpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, gpu.CullModeNone, p.CullMode())
	assert.Equal(t, gpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, gpu.BlendModeAlpha, p.Blend())
	assert.Equal(t, uint32(1), p.SampleCount())
	assert.Equal(t, "v", b.Device.Pipelines[0].Desc.VertexEntryPoint)
}

func TestNewPipelineErrors(t *testing.T) {
	b := gputest.NewBackend()
	_, err := NewPipeline(b.Device, "gadget", "", gpu.VertexBufferLayout{}, []gpu.BindGroupLayout{nil}, gpu.TextureFormat{})
	assert.ErrorContains(t, err, "binding layout 0 is nil")

	b.Device.PipelineErr = errors.New("shader compile failed")
	_, err = NewPipeline(b.Device, "gadget", "", gpu.VertexBufferLayout{}, layouts(t, b), gpu.TextureFormat{})
	assert.ErrorContains(t, err, `pipeline "gadget": shader compile failed`)
}

func TestBindSetsPipeline(t *testing.T) {
	b := gputest.NewBackend()
	p, err := NewPipeline(b.Device, "gadget", "", gpu.VertexBufferLayout{}, layouts(t, b), gpu.TextureFormat{})
	require.NoError(t, err)

	pass := &gputest.RenderPass{}
	p.Bind(pass)
	assert.Equal(t, []gputest.Command{{Op: "SetPipeline", Label: "gadget Render Pipeline"}}, pass.Commands)
}
