package layout

import "github.com/Carmen-Shannon/rusteroids/engine/gpu"

// UniformLayoutDescriptor describes a bind group layout with a single uniform at binding 0,
// visible to the vertex stage.
//
// Parameters:
//   - label: debug label of the layout
//   - size: minimum binding size in bytes
//
// Returns:
//   - gpu.BindGroupLayoutDescriptor: the single-entry descriptor
func UniformLayoutDescriptor(label string, size uint64) gpu.BindGroupLayoutDescriptor {
	return gpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gpu.BindGroupLayoutEntry{
			{
				Binding:        0,
				Visibility:     gpu.ShaderStageVertex,
				Type:           gpu.BindingTypeUniform,
				MinBindingSize: size,
			},
		},
	}
}

// Mat4LayoutDescriptor is the layout shared by the camera and model uniforms.
func Mat4LayoutDescriptor(label string) gpu.BindGroupLayoutDescriptor {
	return UniformLayoutDescriptor(label, Mat4x4.Size())
}
