package gpu

import "github.com/Carmen-Shannon/rusteroids/common"

// BufferUsage is a bitmask of the ways a buffer may be used.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageUniform
	BufferUsageCopyDst
)

// Has reports whether all bits of flag are set.
func (u BufferUsage) Has(flag BufferUsage) bool {
	return u&flag == flag
}

// ShaderStage is a bitmask of shader stages a binding is visible to.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
)

// BindingType is the kind of resource bound at a layout slot.
type BindingType uint32

const (
	BindingTypeUniform BindingType = iota
)

// VertexFormat is the element format of one vertex attribute.
type VertexFormat uint32

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// String returns the WGSL-style name of the format.
func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat32:
		return "float32"
	case VertexFormatFloat32x2:
		return "float32x2"
	case VertexFormatFloat32x3:
		return "float32x3"
	case VertexFormatFloat32x4:
		return "float32x4"
	default:
		return "unknown"
	}
}

// VertexStepMode selects whether an attribute advances per vertex or per instance.
type VertexStepMode uint32

const (
	VertexStepModeVertex VertexStepMode = iota
	VertexStepModeInstance
)

// PrimitiveTopology is the primitive assembly mode.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyLineStrip PrimitiveTopology = iota
	PrimitiveTopologyLineList
	PrimitiveTopologyTriangleList
	PrimitiveTopologyTriangleStrip
)

// FrontFace is the winding order of front-facing triangles.
type FrontFace uint32

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// CullMode selects which faces are discarded.
type CullMode uint32

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// BlendMode is the color blend equation of the single color target.
type BlendMode uint32

const (
	BlendModeReplace BlendMode = iota
	BlendModeAlpha
	BlendModeNone
)

// PresentMode is how frames are delivered to the display.
type PresentMode uint32

const (
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

// String returns the configuration name of the mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeFifoRelaxed:
		return "fifo_relaxed"
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	default:
		return "unknown"
	}
}

// ParsePresentMode maps a configuration name to a PresentMode.
//
// Parameters:
//   - name: one of fifo, fifo_relaxed, immediate, mailbox
//
// Returns:
//   - PresentMode: the parsed mode
//   - bool: false if the name is not recognised
func ParsePresentMode(name string) (PresentMode, bool) {
	for _, m := range []PresentMode{PresentModeFifo, PresentModeFifoRelaxed, PresentModeImmediate, PresentModeMailbox} {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// AlphaMode is a backend-native composite alpha mode. The renderer only forwards it.
type AlphaMode uint32

// TextureFormat is a backend-native surface format tagged with its color space.
type TextureFormat struct {
	ID   uint32
	Name string
	SRGB bool
}

// SurfaceCapabilities lists what a surface supports, in backend preference order.
type SurfaceCapabilities struct {
	Formats      []TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// SurfaceConfiguration sizes and formats the swapchain.
type SurfaceConfiguration struct {
	Format                     TextureFormat
	Width                      uint32
	Height                     uint32
	PresentMode                PresentMode
	AlphaMode                  AlphaMode
	DesiredMaximumFrameLatency uint32
}

// BufferDescriptor describes a buffer created with initial contents.
type BufferDescriptor struct {
	Label    string
	Usage    BufferUsage
	Contents []byte
}

// BindGroupLayoutEntry describes one slot of a bind group layout.
type BindGroupLayoutEntry struct {
	Binding        uint32
	Visibility     ShaderStage
	Type           BindingType
	MinBindingSize uint64
}

// BindGroupLayoutDescriptor describes a bind group layout.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupEntry binds a whole buffer to a slot.
type BindGroupEntry struct {
	Binding uint32
	Buffer  Buffer
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// VertexAttribute is one attribute within a vertex buffer layout.
type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes how a vertex buffer is read.
type VertexBufferLayout struct {
	ArrayStride uint64
	StepMode    VertexStepMode
	Attributes  []VertexAttribute
}

// PrimitiveState is the fixed-function primitive configuration.
type PrimitiveState struct {
	Topology  PrimitiveTopology
	FrontFace FrontFace
	CullMode  CullMode
}

// RenderPipelineDescriptor describes a vertex+fragment pipeline with a single color target.
type RenderPipelineDescriptor struct {
	Label              string
	ShaderSource       string
	VertexEntryPoint   string
	FragmentEntryPoint string
	VertexLayouts      []VertexBufferLayout
	BindGroupLayouts   []BindGroupLayout
	TargetFormat       TextureFormat
	Primitive          PrimitiveState
	Blend              BlendMode
	SampleCount        uint32
}

// RenderPassDescriptor opens a pass that clears Target to ClearColor.
type RenderPassDescriptor struct {
	Label      string
	Target     TextureView
	ClearColor common.Color
}
