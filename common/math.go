package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthRemap returns the matrix that maps OpenGL clip depth [-1, 1] onto the WebGPU depth range [0, 1].
// Columns are (1,0,0,0), (0,1,0,0), (0,0,0.5,0), (0,0,0.5,1).
//
// Returns:
//   - mgl32.Mat4: the depth remap matrix (column-major)
func DepthRemap() mgl32.Mat4 {
	return mgl32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0,
		0, 0, 0.5, 1,
	}
}

// OrthographicLH builds a left-handed orthographic projection mapping depth [near, far] to [0, 1].
// mgl32.Ortho is right-handed with OpenGL depth, so the matrix is assembled by hand.
//
// Parameters:
//   - left, right: horizontal extent of the view volume
//   - bottom, top: vertical extent of the view volume
//   - near, far: depth extent of the view volume
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func OrthographicLH(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rcpWidth := 1 / (right - left)
	rcpHeight := 1 / (top - bottom)
	r := 1 / (far - near)
	return mgl32.Mat4{
		rcpWidth + rcpWidth, 0, 0, 0,
		0, rcpHeight + rcpHeight, 0, 0,
		0, 0, r, 0,
		-(left + right) * rcpWidth, -(top + bottom) * rcpHeight, -r * near, 1,
	}
}

// ModelMatrix2D composes a translation on the XY plane with a rotation around Z.
// Result: Translate(x, y, 0) * RotateZ(radians).
//
// Parameters:
//   - x, y: translation
//   - radians: rotation around the Z axis
//
// Returns:
//   - mgl32.Mat4: the model matrix (column-major)
func ModelMatrix2D(x, y, radians float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, 0).Mul4(mgl32.HomogRotate3DZ(radians))
}

// MatrixBytes serializes a column-major matrix into 64 little-endian bytes for a uniform upload.
//
// Parameters:
//   - m: the 16 matrix elements in upload order
//
// Returns:
//   - []byte: the serialized bytes
func MatrixBytes(m [16]float32) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// IdentityMatrix returns the 4x4 identity in upload order.
func IdentityMatrix() [16]float32 {
	return mgl32.Ident4()
}
