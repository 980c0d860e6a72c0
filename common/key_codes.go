package common

// Key codes delivered by the window host.
// These match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // thrust
	KeyA     = 65  // turn left
	KeyD     = 68  // turn right
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // quit
)
