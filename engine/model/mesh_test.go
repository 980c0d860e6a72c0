package model

import (
	"testing"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/gputest"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triangle = []Vertex{
	{Position: [2]float32{0, 1}, Color: [3]float32{1, 0, 0}},
	{Position: [2]float32{-1, -1}, Color: [3]float32{0, 1, 0}},
	{Position: [2]float32{1, -1}, Color: [3]float32{0, 0, 1}},
}

func createdGeometry(t *testing.T, index int) (GeometryBuffer, *gputest.Backend) {
	t.Helper()
	b := gputest.NewBackend()
	l, err := b.Device.CreateBindGroupLayout(layout.Mat4LayoutDescriptor("model"))
	require.NoError(t, err)
	g := NewGeometryBuffer(triangle)
	require.NoError(t, g.Create(b.Device, l, index))
	return g, b
}

func TestVertexIsPacked(t *testing.T) {
	v := Vertex{Position: [2]float32{1, 2}, Color: [3]float32{3, 4, 5}}
	assert.Equal(t, VertexSize, v.Size())
	assert.Equal(t, common.ValueToBytes(v), v.Marshal())
	assert.Len(t, MarshalVertices(triangle), 3*VertexSize)
}

func TestVertexLayoutMatchesVertex(t *testing.T) {
	l := layout.VertexLayoutOf[Vertex]()
	assert.Equal(t, uint64(VertexSize), l.ArrayStride)
	require.Len(t, l.Attributes, 2)
	assert.Equal(t, uint64(8), l.Attributes[1].Offset)
}

func TestCreateUploadsVerticesAndIdentityModel(t *testing.T) {
	g, b := createdGeometry(t, 2)

	require.Len(t, b.Device.Buffers, 2)
	vb := b.Device.Buffers[0]
	assert.Equal(t, "vertex2_buffer", vb.Label())
	assert.Equal(t, gpu.BufferUsageVertex, vb.Usage())
	assert.Equal(t, uint64(len(triangle)*VertexSize), vb.Size())
	assert.Equal(t, MarshalVertices(triangle), vb.Contents)

	mb := b.Device.Buffers[1]
	assert.Equal(t, "mesh2", mb.Label())
	assert.Equal(t, common.MatrixBytes(common.IdentityMatrix()), mb.Contents)

	assert.True(t, g.Created())
	assert.Equal(t, 2, g.Index())
	assert.Equal(t, uint32(3), g.VertexCount())
}

func TestNewGeometryBufferCopiesVertices(t *testing.T) {
	src := append([]Vertex(nil), triangle...)
	g := NewGeometryBuffer(src)
	src[0].Position[0] = 42

	assert.Equal(t, float32(0), g.Vertices()[0].Position[0])
}

func TestDrawBindsModelThenVertexBuffer(t *testing.T) {
	g, _ := createdGeometry(t, 0)
	pass := &gputest.RenderPass{}

	g.Draw(pass, common.InstanceRange{First: 0, Count: 1})

	require.Len(t, pass.Commands, 3)
	assert.Equal(t, gputest.Command{Op: "SetBindGroup", Slot: 1, Label: "mesh0_bind_group"}, pass.Commands[0])
	assert.Equal(t, gputest.Command{Op: "SetVertexBuffer", Slot: 0, Label: "vertex0_buffer"}, pass.Commands[1])
	assert.Equal(t, [4]uint32{3, 1, 0, 0}, pass.Commands[2].Args)
}

func TestDrawBeforeCreatePanics(t *testing.T) {
	g := NewGeometryBuffer(triangle)
	assert.PanicsWithValue(t, "geometry: draw before create", func() {
		g.Draw(&gputest.RenderPass{}, common.SingleInstance)
	})
}

func TestUpdateBeforeCreateIsNoOp(t *testing.T) {
	b := gputest.NewBackend()
	g := NewGeometryBuffer(triangle)

	assert.NoError(t, g.Update(b.Queue, [16]float32{}))
	assert.Equal(t, 0, b.Queue.Writes)
	assert.Equal(t, common.IdentityMatrix(), g.ModelMatrix())
}

func TestUpdateWritesModelMatrix(t *testing.T) {
	g, b := createdGeometry(t, 0)
	m := [16]float32(common.ModelMatrix2D(10, 5, 0))

	require.NoError(t, g.Update(b.Queue, m))
	assert.Equal(t, common.MatrixBytes(m), b.Device.Buffers[1].Contents)
	assert.Equal(t, 0, b.Device.Buffers[0].Writes)
	assert.Equal(t, m, g.ModelMatrix())
}

func TestReleaseFreesBuffers(t *testing.T) {
	g, b := createdGeometry(t, 0)
	g.Release()

	for _, buf := range b.Device.Buffers {
		assert.True(t, buf.Released, buf.Label())
	}
	assert.False(t, g.Created())
}
