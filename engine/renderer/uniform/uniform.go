package uniform

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pkg/errors"
)

// uniformResource is the unexported implementation of UniformResource.
type uniformResource[T any] struct {
	// label is a debug label used for the buffer and bind group.
	label string

	// value is the last value uploaded.
	value T

	// The following fields are GPU resources owned by this uniform.

	// buffer holds exactly unsafe.Sizeof(T) bytes.
	buffer gpu.Buffer
	// bindGroup links buffer to the externally supplied layout at binding 0.
	bindGroup gpu.BindGroup
}

// UniformResource owns a fixed-size uniform buffer and the bind group that exposes it to shaders.
// All writes to the buffer go through Update, so the buffer always holds the last value passed in.
//
// Usage pattern:
//  1. Owner creates the resource with New against a layout shared by all owners of the same shape
//  2. Owner calls Update whenever the value changes
//  3. Owner calls Bind while encoding a render pass
type UniformResource[T any] interface {
	// Update replaces the full buffer contents with value.
	//
	// Parameters:
	//   - queue: the queue to write through
	//   - value: the new value
	//
	// Returns:
	//   - error: an error if the queue write failed
	Update(queue gpu.Queue, value T) error

	// UpdateBytes replaces the full buffer contents with raw bytes.
	// Panics if len(data) differs from Size().
	//
	// Parameters:
	//   - queue: the queue to write through
	//   - data: exactly Size() bytes
	//
	// Returns:
	//   - error: an error if the queue write failed
	UpdateBytes(queue gpu.Queue, data []byte) error

	// Bind attaches the bind group to the given slot of the pass.
	//
	// Parameters:
	//   - pass: the render pass being encoded
	//   - slot: the bind group index
	Bind(pass gpu.RenderPass, slot uint32)

	// Value returns the last value passed to New or Update.
	//
	// Returns:
	//   - T: the current value
	Value() T

	// Label returns the debug label.
	Label() string

	// Size returns the buffer size in bytes.
	Size() uint64

	// Buffer returns the uniform buffer.
	Buffer() gpu.Buffer

	// BindGroup returns the bind group.
	BindGroup() gpu.BindGroup

	// Release frees the buffer and bind group.
	Release()
}

var _ UniformResource[[16]float32] = &uniformResource[[16]float32]{}

// New allocates a uniform buffer initialised to value and a bind group linking it to layout at binding 0.
// The buffer is usable as a uniform and as a copy destination.
//
// Parameters:
//   - device: the device to allocate on
//   - value: the initial contents
//   - layout: the bind group layout the buffer is bound against
//   - label: debug label
//
// Returns:
//   - UniformResource[T]: the created resource
//   - error: an error if the buffer or bind group could not be created
func New[T any](device gpu.Device, value T, layout gpu.BindGroupLayout, label string) (UniformResource[T], error) {
	buffer, err := device.CreateBuffer(gpu.BufferDescriptor{
		Label:    label,
		Usage:    gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
		Contents: common.ValueToBytes(value),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "uniform %q: create buffer", label)
	}

	bindGroup, err := device.CreateBindGroup(gpu.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Buffer: buffer},
		},
	})
	if err != nil {
		buffer.Release()
		return nil, errors.Wrapf(err, "uniform %q: create bind group", label)
	}

	return &uniformResource[T]{
		label:     label,
		value:     value,
		buffer:    buffer,
		bindGroup: bindGroup,
	}, nil
}

func (u *uniformResource[T]) Update(queue gpu.Queue, value T) error {
	if err := u.write(queue, common.ValueToBytes(value)); err != nil {
		return err
	}
	u.value = value
	return nil
}

func (u *uniformResource[T]) UpdateBytes(queue gpu.Queue, data []byte) error {
	if uint64(len(data)) != u.Size() {
		panic(fmt.Sprintf("uniform %q: update of %d bytes, buffer holds %d", u.label, len(data), u.Size()))
	}
	if err := u.write(queue, data); err != nil {
		return err
	}
	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), len(data)), data)
	u.value = v
	return nil
}

func (u *uniformResource[T]) write(queue gpu.Queue, data []byte) error {
	if err := queue.WriteBuffer(u.buffer, 0, data); err != nil {
		return errors.Wrapf(err, "uniform %q: write", u.label)
	}
	return nil
}

func (u *uniformResource[T]) Bind(pass gpu.RenderPass, slot uint32) {
	pass.SetBindGroup(slot, u.bindGroup)
}

func (u *uniformResource[T]) Value() T {
	return u.value
}

func (u *uniformResource[T]) Label() string {
	return u.label
}

func (u *uniformResource[T]) Size() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

func (u *uniformResource[T]) Buffer() gpu.Buffer {
	return u.buffer
}

func (u *uniformResource[T]) BindGroup() gpu.BindGroup {
	return u.bindGroup
}

func (u *uniformResource[T]) Release() {
	if u.bindGroup != nil {
		u.bindGroup.Release()
		u.bindGroup = nil
	}
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
