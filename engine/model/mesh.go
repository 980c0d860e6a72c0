package model

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/uniform"
	"github.com/pkg/errors"
)

// geometryBuffer is the unexported implementation of GeometryBuffer.
type geometryBuffer struct {
	// vertices is an immutable host-side copy of the vertex list.
	vertices []Vertex
	// index is assigned by Create and used in debug labels.
	index int

	// The following fields are nil until Create runs.

	// vertexBuffer holds len(vertices) * VertexSize bytes and is never resized.
	vertexBuffer gpu.Buffer
	// model is the per-instance model matrix bound at slot 1.
	model uniform.UniformResource[[16]float32]
}

// GeometryBuffer owns a static vertex list, its GPU vertex buffer, and a model-matrix uniform.
type GeometryBuffer interface {
	// Create uploads the vertices to a vertex buffer and creates the model uniform initialised to identity.
	//
	// Parameters:
	//   - device: the device to allocate on
	//   - layout: the shared model-matrix layout
	//   - index: the geometry index, used in debug labels
	//
	// Returns:
	//   - error: an error if a GPU resource could not be created
	Create(device gpu.Device, layout gpu.BindGroupLayout, index int) error

	// Update writes a new model matrix. Silently does nothing before Create.
	//
	// Parameters:
	//   - queue: the queue to write through
	//   - matrix: the model matrix in upload order
	//
	// Returns:
	//   - error: an error if the upload failed
	Update(queue gpu.Queue, matrix [16]float32) error

	// Draw binds the model uniform at slot 1 and the vertex buffer at slot 0, then draws every vertex.
	// Panics if called before Create.
	//
	// Parameters:
	//   - pass: the render pass being encoded
	//   - instances: the instances to draw
	Draw(pass gpu.RenderPass, instances common.InstanceRange)

	// Vertices returns a copy of the vertex list.
	Vertices() []Vertex

	// VertexCount returns the number of vertices drawn.
	VertexCount() uint32

	// Created reports whether Create has run.
	Created() bool

	// Index returns the index assigned by Create, or -1 before.
	Index() int

	// ModelMatrix returns the last uploaded model matrix, or identity before Create.
	ModelMatrix() [16]float32

	// Release frees the vertex buffer and model uniform.
	Release()
}

var _ GeometryBuffer = &geometryBuffer{}

// NewGeometryBuffer copies vertices into a new, not yet created, geometry buffer.
//
// Parameters:
//   - vertices: the vertex list; the caller may reuse the slice
//
// Returns:
//   - GeometryBuffer: the geometry buffer
func NewGeometryBuffer(vertices []Vertex) GeometryBuffer {
	return &geometryBuffer{
		vertices: slices.Clone(vertices),
		index:    -1,
	}
}

func (g *geometryBuffer) Create(device gpu.Device, layout gpu.BindGroupLayout, index int) error {
	vertexBuffer, err := device.CreateBuffer(gpu.BufferDescriptor{
		Label:    fmt.Sprintf("vertex%d_buffer", index),
		Usage:    gpu.BufferUsageVertex,
		Contents: MarshalVertices(g.vertices),
	})
	if err != nil {
		return errors.Wrapf(err, "geometry %d: create vertex buffer", index)
	}

	model, err := uniform.New(device, common.IdentityMatrix(), layout, fmt.Sprintf("mesh%d", index))
	if err != nil {
		vertexBuffer.Release()
		return errors.Wrapf(err, "geometry %d", index)
	}

	g.vertexBuffer = vertexBuffer
	g.model = model
	g.index = index
	return nil
}

func (g *geometryBuffer) Update(queue gpu.Queue, matrix [16]float32) error {
	if g.model == nil {
		return nil
	}
	return g.model.Update(queue, matrix)
}

func (g *geometryBuffer) Draw(pass gpu.RenderPass, instances common.InstanceRange) {
	if g.vertexBuffer == nil || g.model == nil {
		panic("geometry: draw before create")
	}
	g.model.Bind(pass, 1)
	pass.SetVertexBuffer(0, g.vertexBuffer)
	pass.Draw(g.VertexCount(), instances.Count, 0, instances.First)
}

func (g *geometryBuffer) Vertices() []Vertex {
	return slices.Clone(g.vertices)
}

func (g *geometryBuffer) VertexCount() uint32 {
	return uint32(len(g.vertices))
}

func (g *geometryBuffer) Created() bool {
	return g.vertexBuffer != nil
}

func (g *geometryBuffer) Index() int {
	return g.index
}

func (g *geometryBuffer) ModelMatrix() [16]float32 {
	if g.model == nil {
		return common.IdentityMatrix()
	}
	return g.model.Value()
}

func (g *geometryBuffer) Release() {
	if g.model != nil {
		g.model.Release()
		g.model = nil
	}
	if g.vertexBuffer != nil {
		g.vertexBuffer.Release()
		g.vertexBuffer = nil
	}
}
