// Package gputest provides an in-memory implementation of the gpu contract that records every
// call so renderer components can be tested without a GPU or a window.
package gputest

import (
	"context"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pkg/errors"
)

// Command is one recorded render-pass call.
type Command struct {
	// Op is SetPipeline, SetBindGroup, SetVertexBuffer, Draw or End.
	Op    string
	Slot  uint32
	Label string
	Args  [4]uint32
}

// Backend is a fake gpu.Backend. Configure it before Open.
type Backend struct {
	Device  *Device
	Queue   *Queue
	Surface *Surface

	// OpenErr is returned by Open when set.
	OpenErr error
	// Opens counts Open calls.
	Opens int
}

var _ gpu.Backend = &Backend{}

// NewBackend returns a backend whose surface reports the given formats.
// With no formats it reports a single non-sRGB and a single sRGB format, in that order.
//
// Parameters:
//   - formats: surface formats in preference order
//
// Returns:
//   - *Backend: the fake backend
func NewBackend(formats ...gpu.TextureFormat) *Backend {
	if len(formats) == 0 {
		formats = []gpu.TextureFormat{
			{ID: 1, Name: "bgra8unorm"},
			{ID: 2, Name: "bgra8unorm-srgb", SRGB: true},
		}
	}
	q := &Queue{}
	return &Backend{
		Device: &Device{queue: q},
		Queue:  q,
		Surface: &Surface{
			Caps: gpu.SurfaceCapabilities{
				Formats:      formats,
				PresentModes: []gpu.PresentMode{gpu.PresentModeFifo, gpu.PresentModeMailbox},
				AlphaModes:   []gpu.AlphaMode{7, 8},
			},
		},
	}
}

func (b *Backend) Open(ctx context.Context) (gpu.Device, gpu.Queue, gpu.Surface, error) {
	b.Opens++
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}
	if b.OpenErr != nil {
		return nil, nil, nil, b.OpenErr
	}
	return b.Device, b.Queue, b.Surface, nil
}

// Buffer is a fake buffer holding its bytes.
type Buffer struct {
	label    string
	usage    gpu.BufferUsage
	Contents []byte
	// Writes counts queue writes into this buffer.
	Writes   int
	Released bool
}

func (b *Buffer) Label() string          { return b.label }
func (b *Buffer) Size() uint64           { return uint64(len(b.Contents)) }
func (b *Buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *Buffer) Release()               { b.Released = true }

type labelled struct {
	label    string
	Released bool
}

func (l *labelled) Label() string { return l.label }
func (l *labelled) Release()      { l.Released = true }

// BindGroupLayout is a fake layout.
type BindGroupLayout struct {
	labelled
	Desc gpu.BindGroupLayoutDescriptor
}

// BindGroup is a fake bind group.
type BindGroup struct {
	labelled
	Desc gpu.BindGroupDescriptor
}

// RenderPipeline is a fake pipeline.
type RenderPipeline struct {
	labelled
	Desc gpu.RenderPipelineDescriptor
}

// Device is a fake device recording every resource it creates.
type Device struct {
	queue *Queue

	Buffers    []*Buffer
	Layouts    []*BindGroupLayout
	BindGroups []*BindGroup
	Pipelines  []*RenderPipeline
	Encoders   []*CommandEncoder

	// PipelineErr is returned by CreateRenderPipeline when set.
	PipelineErr error
	Released    bool
}

var _ gpu.Device = &Device{}

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	b := &Buffer{label: desc.Label, usage: desc.Usage, Contents: append([]byte(nil), desc.Contents...)}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) CreateBindGroupLayout(desc gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	l := &BindGroupLayout{labelled: labelled{label: desc.Label}, Desc: desc}
	d.Layouts = append(d.Layouts, l)
	return l, nil
}

func (d *Device) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	if desc.Layout == nil {
		return nil, errors.Errorf("bind group %q has no layout", desc.Label)
	}
	g := &BindGroup{labelled: labelled{label: desc.Label}, Desc: desc}
	d.BindGroups = append(d.BindGroups, g)
	return g, nil
}

func (d *Device) CreateRenderPipeline(desc gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	if d.PipelineErr != nil {
		return nil, d.PipelineErr
	}
	p := &RenderPipeline{labelled: labelled{label: desc.Label}, Desc: desc}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	e := &CommandEncoder{label: label, queue: d.queue}
	d.Encoders = append(d.Encoders, e)
	return e, nil
}

func (d *Device) Release() { d.Released = true }

// Queue is a fake queue applying writes to fake buffers.
type Queue struct {
	// Writes counts all buffer writes.
	Writes int
	// Submitted holds every submitted command buffer in order.
	Submitted []*CommandBuffer
}

var _ gpu.Queue = &Queue{}

func (q *Queue) WriteBuffer(buffer gpu.Buffer, offset uint64, data []byte) error {
	b, ok := buffer.(*Buffer)
	if !ok {
		return errors.Errorf("foreign buffer %T", buffer)
	}
	if offset+uint64(len(data)) > uint64(len(b.Contents)) {
		return errors.Errorf("write of %d bytes at %d overflows %q (%d bytes)", len(data), offset, b.label, len(b.Contents))
	}
	copy(b.Contents[offset:], data)
	b.Writes++
	q.Writes++
	return nil
}

func (q *Queue) Submit(commands ...gpu.CommandBuffer) {
	for _, c := range commands {
		q.Submitted = append(q.Submitted, c.(*CommandBuffer))
	}
}

// Surface is a fake presentation surface.
type Surface struct {
	Caps gpu.SurfaceCapabilities
	// Configs holds every configuration applied, in order.
	Configs []gpu.SurfaceConfiguration
	// AcquireErrs are returned by successive AcquireFrame calls before frames are handed out.
	AcquireErrs []error
	// Frames holds every frame handed out.
	Frames   []*Frame
	Released bool
}

var _ gpu.Surface = &Surface{}

func (s *Surface) Capabilities() gpu.SurfaceCapabilities { return s.Caps }

func (s *Surface) Configure(config gpu.SurfaceConfiguration) error {
	s.Configs = append(s.Configs, config)
	return nil
}

func (s *Surface) AcquireFrame() (gpu.Frame, error) {
	if len(s.AcquireErrs) > 0 {
		err := s.AcquireErrs[0]
		s.AcquireErrs = s.AcquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f := &Frame{view: &TextureView{}}
	s.Frames = append(s.Frames, f)
	return f, nil
}

func (s *Surface) Release() { s.Released = true }

// LastConfig returns the most recent configuration, or the zero value.
func (s *Surface) LastConfig() gpu.SurfaceConfiguration {
	if len(s.Configs) == 0 {
		return gpu.SurfaceConfiguration{}
	}
	return s.Configs[len(s.Configs)-1]
}

// Frame is a fake swapchain image.
type Frame struct {
	view      *TextureView
	Presented bool
	Discarded bool
}

func (f *Frame) View() gpu.TextureView { return f.view }
func (f *Frame) Present()              { f.Presented = true }
func (f *Frame) Discard()              { f.Discarded = true }

// TextureView is a fake render target.
type TextureView struct {
	Released bool
}

func (v *TextureView) Release() { v.Released = true }

// CommandEncoder records render passes.
type CommandEncoder struct {
	label    string
	queue    *Queue
	Passes   []*RenderPass
	Finished bool
	Released bool
}

func (e *CommandEncoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPass {
	p := &RenderPass{Desc: desc}
	e.Passes = append(e.Passes, p)
	return p
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	e.Finished = true
	return &CommandBuffer{Encoder: e}, nil
}

func (e *CommandEncoder) Release() { e.Released = true }

// CommandBuffer wraps the encoder it came from.
type CommandBuffer struct {
	Encoder  *CommandEncoder
	Released bool
}

func (c *CommandBuffer) Release() { c.Released = true }

// RenderPass records commands in order.
type RenderPass struct {
	Desc     gpu.RenderPassDescriptor
	Commands []Command
	Ended    bool
}

func (p *RenderPass) SetPipeline(pipeline gpu.RenderPipeline) {
	p.Commands = append(p.Commands, Command{Op: "SetPipeline", Label: pipeline.Label()})
}

func (p *RenderPass) SetBindGroup(slot uint32, group gpu.BindGroup) {
	p.Commands = append(p.Commands, Command{Op: "SetBindGroup", Slot: slot, Label: group.Label()})
}

func (p *RenderPass) SetVertexBuffer(slot uint32, buffer gpu.Buffer) {
	p.Commands = append(p.Commands, Command{Op: "SetVertexBuffer", Slot: slot, Label: buffer.Label()})
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.Commands = append(p.Commands, Command{Op: "Draw", Args: [4]uint32{vertexCount, instanceCount, firstVertex, firstInstance}})
}

func (p *RenderPass) End() error {
	p.Ended = true
	p.Commands = append(p.Commands, Command{Op: "End"})
	return nil
}

// Ops returns the recorded operation names in order.
func (p *RenderPass) Ops() []string {
	ops := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		ops[i] = c.Op
	}
	return ops
}
