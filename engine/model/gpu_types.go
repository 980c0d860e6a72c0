package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// VertexSize is the packed size of a Vertex in bytes.
const VertexSize = 20

// Vertex is the GPU layout of a single line-strip vertex.
// Matches the shader's VertexInput: location 0 = position, location 1 = color.
// Size: 20 bytes, no padding.
type Vertex struct {
	Position [2]float32 // offset 0: model-space position (8 bytes)
	Color    [3]float32 // offset 8: linear RGB color (12 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (20)
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the vertex into 20 little-endian bytes.
//
// Returns:
//   - []byte: the serialized vertex
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	v.put(buf)
	return buf
}

func (v *Vertex) put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[2]))
}

// MarshalVertices serializes a vertex list back to back.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * VertexSize bytes
func MarshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i := range vertices {
		vertices[i].put(buf[i*VertexSize:])
	}
	return buf
}
