package wgpu_backend

import (
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

type deviceImpl struct {
	device *wgpu.Device
	queue  *queue
}

var _ gpu.Device = &deviceImpl{}

func (d *deviceImpl) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    desc.Label,
		Contents: desc.Contents,
		Usage:    toBufferUsage(desc.Usage),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create buffer %q", desc.Label)
	}
	return &buffer{buffer: buf, label: desc.Label, size: uint64(len(desc.Contents)), usage: desc.Usage}, nil
}

func (d *deviceImpl) CreateBindGroupLayout(desc gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    e.Binding,
			Visibility: toShaderStage(e.Visibility),
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: e.MinBindingSize,
			},
		}
	}
	layout, err := d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create bind group layout %q", desc.Label)
	}
	return &bindGroupLayout{layout: layout, label: desc.Label}, nil
}

func (d *deviceImpl) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	layout, ok := desc.Layout.(*bindGroupLayout)
	if !ok {
		return nil, errors.Errorf("bind group %q: layout %T is not a wgpu layout", desc.Label, desc.Layout)
	}
	entries := make([]wgpu.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		buf, ok := e.Buffer.(*buffer)
		if !ok {
			return nil, errors.Errorf("bind group %q: entry %d buffer %T is not a wgpu buffer", desc.Label, i, e.Buffer)
		}
		entries[i] = wgpu.BindGroupEntry{
			Binding: e.Binding,
			Buffer:  buf.buffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create bind group %q", desc.Label)
	}
	return &bindGroup{group: group, label: desc.Label}, nil
}

func (d *deviceImpl) CreateRenderPipeline(desc gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: desc.Label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: desc.ShaderSource,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create shader module")
	}

	layouts := make([]*wgpu.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, l := range desc.BindGroupLayouts {
		wl, ok := l.(*bindGroupLayout)
		if !ok {
			module.Release()
			return nil, errors.Errorf("bind group layout %d (%T) is not a wgpu layout", i, l)
		}
		layouts[i] = wl.layout
	}
	pipelineLayout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label + " Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		module.Release()
		return nil, errors.Wrap(err, "create pipeline layout")
	}

	vertexLayouts := make([]wgpu.VertexBufferLayout, len(desc.VertexLayouts))
	for i, vl := range desc.VertexLayouts {
		vertexLayouts[i] = toVertexBufferLayout(vl)
	}

	created, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntryPoint,
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    wgpu.TextureFormat(desc.TargetFormat.ID),
					Blend:     toBlendState(desc.Blend),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  toTopology(desc.Primitive.Topology),
			FrontFace: toFrontFace(desc.Primitive.FrontFace),
			CullMode:  toCullMode(desc.Primitive.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: max(desc.SampleCount, 1),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		pipelineLayout.Release()
		module.Release()
		return nil, errors.Wrapf(err, "create render pipeline %q", desc.Label)
	}
	return &renderPipeline{pipeline: created, layout: pipelineLayout, module: module, label: desc.Label}, nil
}

func (d *deviceImpl) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, errors.Wrap(err, "create command encoder")
	}
	return &commandEncoder{encoder: encoder}, nil
}

func (d *deviceImpl) Release() {
	if d.queue != nil && d.queue.queue != nil {
		d.queue.queue.Release()
		d.queue.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
}

type queue struct {
	queue *wgpu.Queue
}

var _ gpu.Queue = &queue{}

func (q *queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return errors.Errorf("write buffer: %T is not a wgpu buffer", buf)
	}
	return q.queue.WriteBuffer(b.buffer, offset, data)
}

func (q *queue) Submit(commands ...gpu.CommandBuffer) {
	buffers := make([]*wgpu.CommandBuffer, 0, len(commands))
	for _, c := range commands {
		if cb, ok := c.(*commandBuffer); ok {
			buffers = append(buffers, cb.buffer)
		}
	}
	q.queue.Submit(buffers...)
}

type buffer struct {
	buffer *wgpu.Buffer
	label  string
	size   uint64
	usage  gpu.BufferUsage
}

func (b *buffer) Label() string          { return b.label }
func (b *buffer) Size() uint64           { return b.size }
func (b *buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *buffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type bindGroupLayout struct {
	layout *wgpu.BindGroupLayout
	label  string
}

func (l *bindGroupLayout) Label() string { return l.label }
func (l *bindGroupLayout) Release() {
	if l.layout != nil {
		l.layout.Release()
		l.layout = nil
	}
}

type bindGroup struct {
	group *wgpu.BindGroup
	label string
}

func (g *bindGroup) Label() string { return g.label }
func (g *bindGroup) Release() {
	if g.group != nil {
		g.group.Release()
		g.group = nil
	}
}

type renderPipeline struct {
	pipeline *wgpu.RenderPipeline
	layout   *wgpu.PipelineLayout
	module   *wgpu.ShaderModule
	label    string
}

func (p *renderPipeline) Label() string { return p.label }
func (p *renderPipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.layout.Release()
		p.module.Release()
		p.pipeline = nil
	}
}

type commandEncoder struct {
	encoder *wgpu.CommandEncoder
}

// BeginRenderPass opens a pass with one color attachment that clears on load and stores.
// Panics if the target did not come from this backend.
func (e *commandEncoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPass {
	view, ok := desc.Target.(*textureView)
	if !ok {
		panic(errors.Errorf("render pass %q: target %T is not a wgpu view", desc.Label, desc.Target))
	}
	pass := e.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view.view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: desc.ClearColor.R,
					G: desc.ClearColor.G,
					B: desc.ClearColor.B,
					A: desc.ClearColor.A,
				},
			},
		},
	})
	return &renderPass{pass: pass}
}

func (e *commandEncoder) Finish() (gpu.CommandBuffer, error) {
	cb, err := e.encoder.Finish(nil)
	if err != nil {
		return nil, errors.Wrap(err, "finish command encoder")
	}
	return &commandBuffer{buffer: cb}, nil
}

func (e *commandEncoder) Release() {
	if e.encoder != nil {
		e.encoder.Release()
		e.encoder = nil
	}
}

type renderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *renderPass) SetPipeline(pipeline gpu.RenderPipeline) {
	p.pass.SetPipeline(pipeline.(*renderPipeline).pipeline)
}

func (p *renderPass) SetBindGroup(slot uint32, group gpu.BindGroup) {
	p.pass.SetBindGroup(slot, group.(*bindGroup).group, nil)
}

func (p *renderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	p.pass.SetVertexBuffer(slot, buf.(*buffer).buffer, 0, wgpu.WholeSize)
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *renderPass) End() error {
	p.pass.End()
	p.pass.Release()
	return nil
}

type commandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (c *commandBuffer) Release() {
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
}

type textureView struct {
	view *wgpu.TextureView
}

func (v *textureView) Release() {
	if v.view != nil {
		v.view.Release()
		v.view = nil
	}
}
