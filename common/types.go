// package common contains plain value types and helpers shared across the engine and game packages.
package common

// InputEvent is a keyboard transition delivered by the window host.
type InputEvent struct {
	// Key is the GLFW key code (see key_codes.go).
	Key uint32
	// Pressed is true for press/repeat and false for release.
	Pressed bool
}

// Color is a linear RGBA color in the 0..1 range.
type Color struct {
	R, G, B, A float64
}

// Transparent is fully transparent black, the default clear color.
var Transparent = Color{}

// InstanceRange selects the instances covered by a draw call.
type InstanceRange struct {
	First uint32
	Count uint32
}

// SingleInstance draws exactly instance 0.
var SingleInstance = InstanceRange{First: 0, Count: 1}
