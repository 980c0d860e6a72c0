package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pkg/errors"
)

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field: optional attributes, name, colon, type
	fieldRegex = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)

	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)\s*\(\s*\w+\s*:\s*(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// vertexFormats maps WGSL vertex input types to their attribute format.
var vertexFormats = map[string]gpu.VertexFormat{
	"f32":       gpu.VertexFormatFloat32,
	"vec2<f32>": gpu.VertexFormatFloat32x2,
	"vec2f":     gpu.VertexFormatFloat32x2,
	"vec3<f32>": gpu.VertexFormatFloat32x3,
	"vec3f":     gpu.VertexFormatFloat32x3,
	"vec4<f32>": gpu.VertexFormatFloat32x4,
	"vec4f":     gpu.VertexFormatFloat32x4,
}

// uniformSizes maps the WGSL types allowed in a uniform declaration to their byte size.
var uniformSizes = map[string]uint64{
	"f32":         4,
	"vec2<f32>":   8,
	"vec4<f32>":   16,
	"mat4x4<f32>": 64,
	"mat4x4f":     64,
}

// Binding is one @group/@binding resource declaration.
type Binding struct {
	Group        uint32
	Binding      uint32
	AddressSpace string
	Name         string
	Type         string
}

// Size returns the byte size of the bound type, or 0 if it is not a known uniform type.
func (b Binding) Size() uint64 {
	return uniformSizes[b.Type]
}

// VertexInput is one @location field of the vertex entry point's input struct.
type VertexInput struct {
	Location uint32
	Name     string
	Format   gpu.VertexFormat
}

// Reflection is what Reflect extracts from a WGSL module.
type Reflection struct {
	VertexEntryPoint   string
	FragmentEntryPoint string
	// Bindings are sorted by group, then binding.
	Bindings []Binding
	// VertexInputs are sorted by location.
	VertexInputs []VertexInput
}

// Reflect parses the entry points, resource bindings, and vertex inputs out of WGSL source.
//
// Parameters:
//   - source: the WGSL source
//
// Returns:
//   - Reflection: the parsed module interface
//   - error: an error if either entry point is missing or the vertex input uses an unsupported type
func Reflect(source string) (Reflection, error) {
	cleaned := stripComments(source)

	vertex := vertexEntryRegex.FindStringSubmatch(cleaned)
	if vertex == nil {
		return Reflection{}, errors.New("shader: no @vertex entry point taking a struct input")
	}
	fragment := fragmentEntryRegex.FindStringSubmatch(cleaned)
	if fragment == nil {
		return Reflection{}, errors.New("shader: no @fragment entry point")
	}

	r := Reflection{
		VertexEntryPoint:   vertex[1],
		FragmentEntryPoint: fragment[1],
		Bindings:           parseBindings(cleaned),
	}

	structs := parseStructs(cleaned)
	input, ok := structs[vertex[2]]
	if !ok {
		return Reflection{}, errors.Errorf("shader: vertex input struct %q not declared", vertex[2])
	}
	for _, f := range input {
		if f.builtin {
			continue
		}
		if f.location < 0 {
			return Reflection{}, errors.Errorf("shader: vertex input field %q has no @location", f.name)
		}
		format, ok := vertexFormats[f.typeName]
		if !ok {
			return Reflection{}, errors.Errorf("shader: vertex input field %q has unsupported type %s", f.name, f.typeName)
		}
		r.VertexInputs = append(r.VertexInputs, VertexInput{
			Location: uint32(f.location),
			Name:     f.name,
			Format:   format,
		})
	}
	sort.Slice(r.VertexInputs, func(i, j int) bool {
		return r.VertexInputs[i].Location < r.VertexInputs[j].Location
	})
	return r, nil
}

// CheckVertexLayout reports the first mismatch between the vertex inputs and a host-side layout.
//
// Parameters:
//   - layout: the vertex buffer layout bound at slot 0
//
// Returns:
//   - error: nil if every input has an attribute of the same location and format, and vice versa
func (r Reflection) CheckVertexLayout(layout gpu.VertexBufferLayout) error {
	if len(layout.Attributes) != len(r.VertexInputs) {
		return errors.Errorf("shader: %d vertex inputs, layout has %d attributes", len(r.VertexInputs), len(layout.Attributes))
	}
	for _, in := range r.VertexInputs {
		found := false
		for _, attr := range layout.Attributes {
			if attr.ShaderLocation != in.Location {
				continue
			}
			if attr.Format != in.Format {
				return errors.Errorf("shader: location %d is %s, layout has %s", in.Location, in.Format, attr.Format)
			}
			found = true
		}
		if !found {
			return errors.Errorf("shader: no layout attribute for location %d", in.Location)
		}
	}
	return nil
}

// CheckUniform reports whether group/binding 0 is a uniform of the given size.
//
// Parameters:
//   - group: the bind group slot
//   - size: the expected byte size
//
// Returns:
//   - error: nil if the declaration exists and matches
func (r Reflection) CheckUniform(group uint32, size uint64) error {
	for _, b := range r.Bindings {
		if b.Group != group || b.Binding != 0 {
			continue
		}
		if b.AddressSpace != "uniform" {
			return errors.Errorf("shader: group %d binding 0 is var<%s>, want uniform", group, b.AddressSpace)
		}
		if b.Size() != size {
			return errors.Errorf("shader: group %d binding 0 is %s (%d bytes), want %d bytes", group, b.Type, b.Size(), size)
		}
		return nil
	}
	return errors.Errorf("shader: group %d binding 0 not declared", group)
}

func parseBindings(cleaned string) []Binding {
	var out []Binding
	for _, m := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.ParseUint(m[1], 10, 32)
		binding, _ := strconv.ParseUint(m[2], 10, 32)
		out = append(out, Binding{
			Group:        uint32(group),
			Binding:      uint32(binding),
			AddressSpace: strings.TrimSpace(m[3]),
			Name:         m[4],
			Type:         strings.Join(strings.Fields(m[5]), ""),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}
