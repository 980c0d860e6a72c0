package renderer

import "github.com/Carmen-Shannon/rusteroids/engine/gpu"

// GraphicsContextBuilderOption is a functional option applied to a graphics context during NewGraphicsContext.
type GraphicsContextBuilderOption func(*graphicsContext)

// WithPreferredPresentMode requests a present mode. The first reported mode is used if the surface does not support it.
//
// Parameters:
//   - mode: the preferred present mode
//
// Returns:
//   - GraphicsContextBuilderOption: a function that applies the present mode preference
func WithPreferredPresentMode(mode gpu.PresentMode) GraphicsContextBuilderOption {
	return func(g *graphicsContext) {
		g.preferredPresentMode = &mode
	}
}
