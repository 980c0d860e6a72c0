package shader

import (
	"testing"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReflectsEmbeddedProgram(t *testing.T) {
	r := Default()

	assert.Equal(t, "vs_main", r.VertexEntryPoint)
	assert.Equal(t, "fs_main", r.FragmentEntryPoint)
	assert.Equal(t, []Binding{
		{Group: 0, Binding: 0, AddressSpace: "uniform", Name: "camera", Type: "mat4x4<f32>"},
		{Group: 1, Binding: 0, AddressSpace: "uniform", Name: "model", Type: "mat4x4<f32>"},
	}, r.Bindings)
	assert.Equal(t, []VertexInput{
		{Location: 0, Name: "position", Format: gpu.VertexFormatFloat32x2},
		{Location: 1, Name: "color", Format: gpu.VertexFormatFloat32x3},
	}, r.VertexInputs)

	require.NoError(t, r.CheckUniform(0, 64))
	require.NoError(t, r.CheckUniform(1, 64))
}

func TestReflectIgnoresComments(t *testing.T) {
	src := `
/* struct Old { @location(0) a: vec4<f32>, } /* nested */ */
struct In {
    // @location(3) ghost: f32,
    @location(2) uv: vec2f,
};
@group(0) @binding(0) var<uniform> scale: f32;
@vertex fn main_v(v: In) -> @builtin(position) vec4<f32> { return vec4<f32>(v.uv, 0.0, 1.0); }
@fragment fn main_f() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`
	r, err := Reflect(src)
	require.NoError(t, err)
	assert.Equal(t, "main_v", r.VertexEntryPoint)
	assert.Equal(t, "main_f", r.FragmentEntryPoint)
	assert.Equal(t, []VertexInput{{Location: 2, Name: "uv", Format: gpu.VertexFormatFloat32x2}}, r.VertexInputs)
	assert.Equal(t, uint64(4), r.Bindings[0].Size())
}

func TestReflectErrors(t *testing.T) {
	_, err := Reflect(`@fragment fn f() {}`)
	assert.ErrorContains(t, err, "no @vertex entry point")

	_, err = Reflect(`struct I { @location(0) p: vec2<f32>, }; @vertex fn v(i: I) {}`)
	assert.ErrorContains(t, err, "no @fragment entry point")

	_, err = Reflect(`@vertex fn v(i: Missing) {} @fragment fn f() {}`)
	assert.ErrorContains(t, err, `vertex input struct "Missing" not declared`)

	_, err = Reflect(`struct I { @location(0) p: vec2<i32>, }; @vertex fn v(i: I) {} @fragment fn f() {}`)
	assert.ErrorContains(t, err, "unsupported type vec2<i32>")
}

func TestCheckVertexLayout(t *testing.T) {
	r := Default()
	good := gpu.VertexBufferLayout{
		ArrayStride: 20,
		Attributes: []gpu.VertexAttribute{
			{Format: gpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gpu.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1},
		},
	}
	assert.NoError(t, r.CheckVertexLayout(good))

	short := good
	short.Attributes = good.Attributes[:1]
	assert.ErrorContains(t, r.CheckVertexLayout(short), "2 vertex inputs, layout has 1 attributes")

	wrong := good
	wrong.Attributes = []gpu.VertexAttribute{good.Attributes[0], {Format: gpu.VertexFormatFloat32x4, ShaderLocation: 1}}
	assert.ErrorContains(t, r.CheckVertexLayout(wrong), "location 1 is float32x3")
}

func TestCheckUniformMismatch(t *testing.T) {
	r := Default()
	assert.ErrorContains(t, r.CheckUniform(0, 16), "want 16 bytes")
	assert.ErrorContains(t, r.CheckUniform(2, 64), "group 2 binding 0 not declared")
}
