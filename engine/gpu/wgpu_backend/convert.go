package wgpu_backend

import (
	"fmt"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

var srgbFormats = map[wgpu.TextureFormat]bool{
	wgpu.TextureFormatBGRA8UnormSrgb: true,
	wgpu.TextureFormatRGBA8UnormSrgb: true,
}

func fromTextureFormat(f wgpu.TextureFormat) gpu.TextureFormat {
	return gpu.TextureFormat{
		ID:   uint32(f),
		Name: fmt.Sprint(f),
		SRGB: srgbFormats[f],
	}
}

var presentModes = []struct {
	native wgpu.PresentMode
	mode   gpu.PresentMode
}{
	{wgpu.PresentModeFifo, gpu.PresentModeFifo},
	{wgpu.PresentModeFifoRelaxed, gpu.PresentModeFifoRelaxed},
	{wgpu.PresentModeImmediate, gpu.PresentModeImmediate},
	{wgpu.PresentModeMailbox, gpu.PresentModeMailbox},
}

func fromPresentMode(m wgpu.PresentMode) (gpu.PresentMode, bool) {
	for _, p := range presentModes {
		if p.native == m {
			return p.mode, true
		}
	}
	return 0, false
}

func toPresentMode(m gpu.PresentMode) wgpu.PresentMode {
	for _, p := range presentModes {
		if p.mode == m {
			return p.native
		}
	}
	return wgpu.PresentModeFifo
}

func toBufferUsage(u gpu.BufferUsage) wgpu.BufferUsage {
	var out wgpu.BufferUsage
	if u.Has(gpu.BufferUsageVertex) {
		out |= wgpu.BufferUsageVertex
	}
	if u.Has(gpu.BufferUsageUniform) {
		out |= wgpu.BufferUsageUniform
	}
	if u.Has(gpu.BufferUsageCopyDst) {
		out |= wgpu.BufferUsageCopyDst
	}
	return out
}

func toShaderStage(s gpu.ShaderStage) wgpu.ShaderStage {
	var out wgpu.ShaderStage
	if s&gpu.ShaderStageVertex != 0 {
		out |= wgpu.ShaderStageVertex
	}
	if s&gpu.ShaderStageFragment != 0 {
		out |= wgpu.ShaderStageFragment
	}
	return out
}

func toVertexFormat(f gpu.VertexFormat) wgpu.VertexFormat {
	switch f {
	case gpu.VertexFormatFloat32:
		return wgpu.VertexFormatFloat32
	case gpu.VertexFormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case gpu.VertexFormatFloat32x3:
		return wgpu.VertexFormatFloat32x3
	default:
		return wgpu.VertexFormatFloat32x4
	}
}

func toVertexBufferLayout(l gpu.VertexBufferLayout) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         toVertexFormat(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		}
	}
	stepMode := wgpu.VertexStepModeVertex
	if l.StepMode == gpu.VertexStepModeInstance {
		stepMode = wgpu.VertexStepModeInstance
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: l.ArrayStride,
		StepMode:    stepMode,
		Attributes:  attrs,
	}
}

func toTopology(t gpu.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch t {
	case gpu.PrimitiveTopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case gpu.PrimitiveTopologyTriangleList:
		return wgpu.PrimitiveTopologyTriangleList
	case gpu.PrimitiveTopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	default:
		return wgpu.PrimitiveTopologyLineStrip
	}
}

func toFrontFace(f gpu.FrontFace) wgpu.FrontFace {
	if f == gpu.FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func toCullMode(c gpu.CullMode) wgpu.CullMode {
	switch c {
	case gpu.CullModeFront:
		return wgpu.CullModeFront
	case gpu.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

// toBlendState returns nil for BlendModeNone, which disables blending on the target.
func toBlendState(b gpu.BlendMode) *wgpu.BlendState {
	switch b {
	case gpu.BlendModeNone:
		return nil
	case gpu.BlendModeAlpha:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	default:
		replace := wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		}
		return &wgpu.BlendState{Color: replace, Alpha: replace}
	}
}
