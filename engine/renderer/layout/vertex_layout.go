// Package layout derives vertex buffer layouts and uniform binding layouts from a static
// registration table of field kinds.
package layout

import (
	"fmt"
	"reflect"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
)

// FieldKind is the semantic shape of one vertex or uniform field.
type FieldKind int

const (
	Float32 FieldKind = iota
	Float32x2
	Float32x3
	Float32x4
	Mat4x4
)

// fieldInfo is the registration entry of a FieldKind.
type fieldInfo struct {
	name    string
	size    uint64
	formats []gpu.VertexFormat // one per consumed shader location
}

// fieldTable is the static registration table. Mat4x4 spans four vec4 locations.
var fieldTable = map[FieldKind]fieldInfo{
	Float32:   {name: "f32", size: 4, formats: []gpu.VertexFormat{gpu.VertexFormatFloat32}},
	Float32x2: {name: "vec2<f32>", size: 8, formats: []gpu.VertexFormat{gpu.VertexFormatFloat32x2}},
	Float32x3: {name: "vec3<f32>", size: 12, formats: []gpu.VertexFormat{gpu.VertexFormatFloat32x3}},
	Float32x4: {name: "vec4<f32>", size: 16, formats: []gpu.VertexFormat{gpu.VertexFormatFloat32x4}},
	Mat4x4: {name: "mat4x4<f32>", size: 64, formats: []gpu.VertexFormat{
		gpu.VertexFormatFloat32x4, gpu.VertexFormatFloat32x4, gpu.VertexFormatFloat32x4, gpu.VertexFormatFloat32x4,
	}},
}

// goTypeKinds maps Go field types to their FieldKind.
var goTypeKinds = map[reflect.Type]FieldKind{
	reflect.TypeOf(float32(0)):      Float32,
	reflect.TypeOf([2]float32{}):    Float32x2,
	reflect.TypeOf([3]float32{}):    Float32x3,
	reflect.TypeOf([4]float32{}):    Float32x4,
	reflect.TypeOf([16]float32{}):   Mat4x4,
	reflect.TypeOf([4][4]float32{}): Mat4x4,
}

// Size returns the byte size of the kind.
func (k FieldKind) Size() uint64 {
	return mustInfo(k).size
}

func (k FieldKind) String() string {
	info, ok := fieldTable[k]
	if !ok {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return info.name
}

func mustInfo(k FieldKind) fieldInfo {
	info, ok := fieldTable[k]
	if !ok {
		panic(fmt.Sprintf("layout: unregistered field kind %d", int(k)))
	}
	return info
}

// VertexLayout lays out the given fields back to back, assigning shader locations in order.
//
// Parameters:
//   - kinds: the vertex fields in declaration order
//
// Returns:
//   - gpu.VertexBufferLayout: per-vertex layout with tightly packed offsets
func VertexLayout(kinds ...FieldKind) gpu.VertexBufferLayout {
	l := gpu.VertexBufferLayout{StepMode: gpu.VertexStepModeVertex}
	var offset uint64
	var location uint32
	for _, k := range kinds {
		info := mustInfo(k)
		step := info.size / uint64(len(info.formats))
		for i, f := range info.formats {
			l.Attributes = append(l.Attributes, gpu.VertexAttribute{
				Format:         f,
				Offset:         offset + uint64(i)*step,
				ShaderLocation: location,
			})
			location++
		}
		offset += info.size
	}
	l.ArrayStride = offset
	return l
}

// KindsOf resolves the field kinds of a struct type through the Go type table.
// Panics if t is not a struct or a field type is not registered.
//
// Parameters:
//   - t: the struct type
//
// Returns:
//   - []FieldKind: one kind per field, in declaration order
func KindsOf(t reflect.Type) []FieldKind {
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("layout: %s is not a struct", t))
	}
	kinds := make([]FieldKind, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		k, ok := goTypeKinds[f.Type]
		if !ok {
			panic(fmt.Sprintf("layout: field %s.%s has unregistered type %s", t.Name(), f.Name, f.Type))
		}
		if f.Offset != sumSizes(kinds) {
			panic(fmt.Sprintf("layout: field %s.%s is padded (offset %d)", t.Name(), f.Name, f.Offset))
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// VertexLayoutOf derives the vertex layout of the struct type T.
//
// Returns:
//   - gpu.VertexBufferLayout: layout whose stride equals the packed size of T
func VertexLayoutOf[T any]() gpu.VertexBufferLayout {
	return VertexLayout(KindsOf(reflect.TypeFor[T]())...)
}

func sumSizes(kinds []FieldKind) uintptr {
	var n uint64
	for _, k := range kinds {
		n += k.Size()
	}
	return uintptr(n)
}
