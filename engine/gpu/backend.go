// Package gpu defines the graphics capability set the renderer consumes.
// It mirrors the small slice of WebGPU the game needs so that the renderer, camera, meshes and
// uniforms can be driven by the cogentcore/webgpu backend in production and by an in-memory
// recorder in tests.
package gpu

import "context"

// Backend opens a device, queue and presentation surface for one window.
type Backend interface {
	// Open selects an adapter compatible with the window surface and requests a device and queue.
	// This is the only asynchronous step of start-up; a failure is fatal to the caller.
	//
	// Parameters:
	//   - ctx: cancels the adapter/device request
	//
	// Returns:
	//   - Device: the logical device
	//   - Queue: the device queue
	//   - Surface: the presentation surface bound to the window
	//   - error: non-nil if no compatible adapter or device is available
	Open(ctx context.Context) (Device, Queue, Surface, error)
}

// Device creates GPU resources.
type Device interface {
	// CreateBuffer allocates a buffer initialised with desc.Contents.
	//
	// Parameters:
	//   - desc: label, usage flags and initial contents
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: an error if allocation failed
	CreateBuffer(desc BufferDescriptor) (Buffer, error)

	// CreateBindGroupLayout creates a bind group layout.
	//
	// Parameters:
	//   - desc: the layout entries
	//
	// Returns:
	//   - BindGroupLayout: the created layout
	//   - error: an error if creation failed
	CreateBindGroupLayout(desc BindGroupLayoutDescriptor) (BindGroupLayout, error)

	// CreateBindGroup binds concrete buffers to the slots of a layout.
	//
	// Parameters:
	//   - desc: the layout and the buffer entries
	//
	// Returns:
	//   - BindGroup: the created bind group
	//   - error: an error if creation failed
	CreateBindGroup(desc BindGroupDescriptor) (BindGroup, error)

	// CreateRenderPipeline compiles the shader and builds an immutable render pipeline.
	//
	// Parameters:
	//   - desc: shader, vertex layouts, bind group layouts and fixed-function state
	//
	// Returns:
	//   - RenderPipeline: the created pipeline
	//   - error: an error if shader compilation or pipeline creation failed
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)

	// CreateCommandEncoder starts recording GPU commands.
	//
	// Returns:
	//   - CommandEncoder: the encoder
	//   - error: an error if the encoder could not be created
	CreateCommandEncoder(label string) (CommandEncoder, error)

	Release()
}

// Queue submits work and uploads buffer data.
type Queue interface {
	// WriteBuffer replaces buffer bytes starting at offset.
	WriteBuffer(buffer Buffer, offset uint64, data []byte) error
	// Submit hands finished command buffers to the GPU.
	Submit(commands ...CommandBuffer)
}

// Surface is the presentation target of a window.
type Surface interface {
	// Capabilities reports the formats, present modes and alpha modes the surface supports.
	Capabilities() SurfaceCapabilities

	// Configure (re)creates the swapchain.
	Configure(config SurfaceConfiguration) error

	// AcquireFrame obtains the next presentable image.
	// Errors are *FrameError values of kind Lost, Outdated, OutOfMemory or Timeout.
	AcquireFrame() (Frame, error)

	Release()
}

// Frame is one acquired swapchain image.
type Frame interface {
	// View is the render target for the image.
	View() TextureView
	// Present schedules the image for display and releases the frame.
	Present()
	// Discard releases the frame without presenting it.
	Discard()
}

// CommandEncoder records one frame's worth of commands.
type CommandEncoder interface {
	// BeginRenderPass opens a render pass against desc.Target.
	BeginRenderPass(desc RenderPassDescriptor) RenderPass
	// Finish closes the encoder.
	Finish() (CommandBuffer, error)
	Release()
}

// RenderPass encodes draw state and draw calls.
type RenderPass interface {
	SetPipeline(pipeline RenderPipeline)
	SetBindGroup(slot uint32, group BindGroup)
	SetVertexBuffer(slot uint32, buffer Buffer)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}

// Buffer is a GPU buffer with a fixed size.
type Buffer interface {
	Label() string
	Size() uint64
	Usage() BufferUsage
	Release()
}

// BindGroupLayout describes the slots a pipeline expects for one bind group.
type BindGroupLayout interface {
	Label() string
	Release()
}

// BindGroup associates concrete resources with a layout.
type BindGroup interface {
	Label() string
	Release()
}

// RenderPipeline is an immutable compiled pipeline.
type RenderPipeline interface {
	Label() string
	Release()
}

// CommandBuffer is a finished, submittable command list.
type CommandBuffer interface {
	Release()
}

// TextureView is a render target view.
type TextureView interface {
	Release()
}
