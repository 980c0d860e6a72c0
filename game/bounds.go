package game

import (
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// BoundingBox is an axis-aligned rectangle in world units.
type BoundingBox struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// DefaultBoundingBox is unbounded in every direction.
func DefaultBoundingBox() BoundingBox {
	inf := math32.Inf(1)
	return BoundingBox{
		Min: mgl32.Vec2{-inf, -inf},
		Max: mgl32.Vec2{inf, inf},
	}
}

// BoundingBoxFromResolution centers a box of the given pixel size on the origin.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - BoundingBox: the box [-res/2, res/2]
func BoundingBoxFromResolution(width, height int) BoundingBox {
	half := mgl32.Vec2{float32(width) / 2, float32(height) / 2}
	return BoundingBox{Min: half.Mul(-1), Max: half}
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p mgl32.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// BoundaryPolicy decides where an object that left its bounding box reappears.
type BoundaryPolicy interface {
	// Name is the configuration name of the policy.
	Name() string

	// Apply returns the corrected position for a point outside box.
	//
	// Parameters:
	//   - pos: the out-of-bounds position
	//   - box: the violated bounding box
	//
	// Returns:
	//   - mgl32.Vec2: the new position
	Apply(pos mgl32.Vec2, box BoundingBox) mgl32.Vec2
}

var (
	// MirrorPosition reflects the whole position through the origin.
	MirrorPosition BoundaryPolicy = mirrorPosition{}
	// MirrorAxis negates only the coordinates outside their range.
	MirrorAxis BoundaryPolicy = mirrorAxis{}
)

type mirrorPosition struct{}

func (mirrorPosition) Name() string { return config.BoundaryMirrorPosition }

func (mirrorPosition) Apply(pos mgl32.Vec2, _ BoundingBox) mgl32.Vec2 {
	return pos.Mul(-1)
}

type mirrorAxis struct{}

func (mirrorAxis) Name() string { return config.BoundaryMirrorAxis }

func (mirrorAxis) Apply(pos mgl32.Vec2, box BoundingBox) mgl32.Vec2 {
	if pos.X() < box.Min.X() || pos.X() > box.Max.X() {
		pos[0] = -pos[0]
	}
	if pos.Y() < box.Min.Y() || pos.Y() > box.Max.Y() {
		pos[1] = -pos[1]
	}
	return pos
}

// ParseBoundaryPolicy maps a configuration name to its policy.
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	for _, p := range []BoundaryPolicy{MirrorPosition, MirrorAxis} {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("unknown boundary policy %q", name)
}
