package common

import (
	"unsafe"
)

// SliceToBytes returns a byte view of a slice of plain values for GPU buffer uploads.
// The returned slice shares memory with data.
//
// Parameters:
//   - data: source slice of any fixed-size type
//
// Returns:
//   - []byte: byte view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// ValueToBytes copies a plain value into a new byte slice of exactly unsafe.Sizeof(v) bytes.
//
// Parameters:
//   - v: the value to copy
//
// Returns:
//   - []byte: an owned copy of the value's memory
func ValueToBytes[T any](v T) []byte {
	size := int(unsafe.Sizeof(v))
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&v)), size))
	return out
}
