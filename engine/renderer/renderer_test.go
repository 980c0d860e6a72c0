package renderer

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/gputest"
	"github.com/Carmen-Shannon/rusteroids/engine/model"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/pipeline"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wedge = []model.Vertex{
	{Position: [2]float32{0, 20}, Color: [3]float32{1, 1, 1}},
	{Position: [2]float32{10, -20}, Color: [3]float32{1, 1, 1}},
	{Position: [2]float32{0, -10}, Color: [3]float32{1, 1, 1}},
	{Position: [2]float32{-10, -20}, Color: [3]float32{1, 1, 1}},
	{Position: [2]float32{0, 20}, Color: [3]float32{1, 1, 1}},
}

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) (Renderer, *gputest.Backend) {
	t.Helper()
	b := gputest.NewBackend()
	r, err := NewRenderer(context.Background(), b, 800, 600, opts...)
	require.NoError(t, err)
	return r, b
}

func TestNewRendererBuildsSharedLayoutAndPipeline(t *testing.T) {
	r, b := newTestRenderer(t)

	require.Len(t, b.Device.Layouts, 1)
	assert.Equal(t, "mat4_layout_descriptor", b.Device.Layouts[0].Label())

	require.Len(t, b.Device.Pipelines, 1)
	desc := b.Device.Pipelines[0].Desc
	assert.Equal(t, "line_strip Render Pipeline", desc.Label)
	assert.Equal(t, b.Surface.LastConfig().Format, desc.TargetFormat)
	assert.Equal(t, uint64(model.VertexSize), desc.VertexLayouts[0].ArrayStride)
	assert.Equal(t, gpu.PrimitiveTopologyLineStrip, desc.Primitive.Topology)

	assert.True(t, r.Camera().Ready())
	assert.Equal(t, uint32(800), r.Camera().Width())
	assert.Equal(t, 0, r.GeometryCount())
}

func TestNewRendererRejectsMismatchedShader(t *testing.T) {
	src := `
struct In { @location(0) p: vec4<f32>, };
@group(0) @binding(0) var<uniform> camera: mat4x4<f32>;
@group(1) @binding(0) var<uniform> model: mat4x4<f32>;
@vertex fn vs_main(v: In) -> @builtin(position) vec4<f32> { return v.p; }
@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`
	b := gputest.NewBackend()
	_, err := NewRenderer(context.Background(), b, 800, 600, WithShaderSource(src))
	assert.ErrorContains(t, err, "1 vertex inputs, layout has 2 attributes")
	assert.Equal(t, 0, b.Opens)
}

func TestNewRendererSetupFailure(t *testing.T) {
	b := gputest.NewBackend()
	b.OpenErr = errors.New("no adapter found")
	_, err := NewRenderer(context.Background(), b, 800, 600)
	assert.ErrorContains(t, err, "no adapter found")

	b = gputest.NewBackend()
	b.Device.PipelineErr = errors.New("bad shader")
	_, err = NewRenderer(context.Background(), b, 800, 600)
	assert.ErrorContains(t, err, "bad shader")
	assert.True(t, b.Surface.Released)
}

func TestAddGeometryAssignsSequentialIDs(t *testing.T) {
	r, b := newTestRenderer(t)

	first, err := r.AddGeometry(wedge)
	require.NoError(t, err)
	second, err := r.AddGeometry(wedge[:2])
	require.NoError(t, err)

	assert.Equal(t, GeometryID(0), first)
	assert.Equal(t, GeometryID(1), second)
	assert.Equal(t, 2, r.GeometryCount())
	assert.Equal(t, 1, r.Geometry(second).Index())
	assert.Nil(t, r.Geometry(7))

	labels := make([]string, 0, len(b.Device.Buffers))
	for _, buf := range b.Device.Buffers {
		labels = append(labels, buf.Label())
	}
	assert.Equal(t, []string{"camera", "vertex0_buffer", "mesh0", "vertex1_buffer", "mesh1"}, labels)
}

func TestUpdateTargetsOneGeometry(t *testing.T) {
	r, _ := newTestRenderer(t)
	a, err := r.AddGeometry(wedge)
	require.NoError(t, err)
	c, err := r.AddGeometry(wedge)
	require.NoError(t, err)

	m := [16]float32(common.ModelMatrix2D(10, 5, 0))
	require.NoError(t, r.Update(c, m))
	assert.Equal(t, common.IdentityMatrix(), r.Geometry(a).ModelMatrix())
	assert.Equal(t, m, r.Geometry(c).ModelMatrix())

	err = r.Update(2, m)
	assert.ErrorIs(t, err, ErrUnknownGeometry)

	require.NoError(t, r.UpdateAll(m))
	assert.Equal(t, m, r.Geometry(a).ModelMatrix())
}

func TestRenderEncodesOnePass(t *testing.T) {
	r, b := newTestRenderer(t)
	_, err := r.AddGeometry(wedge)
	require.NoError(t, err)

	require.NoError(t, r.Render())

	require.Len(t, b.Device.Encoders, 1)
	enc := b.Device.Encoders[0]
	require.Len(t, enc.Passes, 1)
	pass := enc.Passes[0]

	assert.Equal(t, common.Transparent, pass.Desc.ClearColor)
	assert.Same(t, b.Surface.Frames[0].View(), pass.Desc.Target)
	assert.Equal(t, []gputest.Command{
		{Op: "SetPipeline", Label: "line_strip Render Pipeline"},
		{Op: "SetBindGroup", Slot: 0, Label: "camera_bind_group"},
		{Op: "SetBindGroup", Slot: 1, Label: "mesh0_bind_group"},
		{Op: "SetVertexBuffer", Slot: 0, Label: "vertex0_buffer"},
		{Op: "Draw", Args: [4]uint32{5, 1, 0, 0}},
		{Op: "End"},
	}, pass.Commands)

	assert.True(t, enc.Finished)
	require.Len(t, b.Queue.Submitted, 1)
	assert.Same(t, enc, b.Queue.Submitted[0].Encoder)
	assert.True(t, b.Surface.Frames[0].Presented)
}

func TestRenderWithClearColor(t *testing.T) {
	red := common.Color{R: 1, A: 1}
	r, b := newTestRenderer(t, WithClearColor(red))
	require.NoError(t, r.Render())
	assert.Equal(t, red, b.Device.Encoders[0].Passes[0].Desc.ClearColor)
	assert.Equal(t, []string{"SetPipeline", "SetBindGroup", "End"}, b.Device.Encoders[0].Passes[0].Ops())
}

func TestRenderPassesAcquireErrorThrough(t *testing.T) {
	r, b := newTestRenderer(t)
	b.Surface.AcquireErrs = []error{gpu.NewFrameError(gpu.ErrOutOfMemory, nil)}

	err := r.Render()
	assert.True(t, gpu.IsFatal(err))
	assert.Empty(t, b.Device.Encoders)
	assert.Empty(t, b.Queue.Submitted)
}

func TestRendererResize(t *testing.T) {
	r, b := newTestRenderer(t)

	r.Resize(0, 0)
	assert.Len(t, b.Surface.Configs, 1)

	r.Resize(1024, 768)
	w, h := r.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, uint32(1024), r.Camera().Width())
	assert.Equal(t, 1, b.Device.Buffers[0].Writes)

	r.Resize(1024, 768)
	assert.Equal(t, 1, b.Device.Buffers[0].Writes)
	assert.Len(t, b.Surface.Configs, 3)
}

func TestRendererInputIsNeverConsumed(t *testing.T) {
	r, _ := newTestRenderer(t)
	assert.False(t, r.Input(common.InputEvent{Key: common.KeyW, Pressed: true}))
}

func TestRendererPipelineOptions(t *testing.T) {
	_, b := newTestRenderer(t, WithPipelineOptions(pipeline.WithSampleCount(4)), WithPresentMode(gpu.PresentModeMailbox))
	assert.Equal(t, uint32(4), b.Device.Pipelines[0].Desc.SampleCount)
	assert.Equal(t, gpu.PresentModeMailbox, b.Surface.LastConfig().PresentMode)
}
