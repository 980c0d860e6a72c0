package game

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVelocityConvergesToCap(t *testing.T) {
	m := NewMovement()
	m.SetAcceleration(150)
	m.SetDirection(30)

	for i := 0; i < 500; i++ {
		m.Update(0.05)
		require.LessOrEqual(t, m.Velocity().Len(), DefaultMaxVelocity+1e-3, "tick %d", i)
	}
	assert.InDelta(t, DefaultMaxVelocity, m.Velocity().Len(), 1e-3)
}

func TestVelocityCapPreservesDirection(t *testing.T) {
	m := NewMovement()
	m.SetVelocity(mgl32.Vec2{300, 400})
	m.Update(0)

	assert.InDelta(t, 120, m.Velocity().X(), 1e-3)
	assert.InDelta(t, 160, m.Velocity().Y(), 1e-3)
}

func TestZeroVelocityIsNotCapped(t *testing.T) {
	m := NewMovement()
	m.Update(0.016)

	assert.Equal(t, mgl32.Vec2{}, m.Velocity())
	assert.Equal(t, mgl32.Vec2{}, m.Position())
	assert.False(t, math32.IsNaN(m.Position().X()))
}

func TestZeroAccelerationMovesLinearly(t *testing.T) {
	m := NewMovement()
	p0 := mgl32.Vec2{-20, 15}
	v := mgl32.Vec2{3, -4}
	m.SetPosition(p0)
	m.SetVelocity(v)
	m.SetDirection(45)

	const dt = 0.25
	for i := 1; i <= 40; i++ {
		m.Update(dt)
		want := p0.Add(v.Mul(float32(i) * dt))
		require.InDelta(t, want.X(), m.Position().X(), 1e-3)
		require.InDelta(t, want.Y(), m.Position().Y(), 1e-3)
	}
	assert.Equal(t, v, m.Velocity())
	assert.Equal(t, float32(45), m.Direction())
}

func TestAccelerationFollowsHeading(t *testing.T) {
	m := NewMovement()
	m.SetAcceleration(100)
	m.SetDirection(90)
	m.Update(0.5)

	assert.InDelta(t, -50, m.Velocity().X(), 1e-3)
	assert.InDelta(t, 0, m.Velocity().Y(), 1e-3)
}

func TestDirectionIsNotWrapped(t *testing.T) {
	m := NewMovement()
	m.SetAngularVelocity(180)
	for i := 0; i < 10; i++ {
		m.Update(1)
	}
	assert.Equal(t, float32(1800), m.Direction())
}

func TestMirrorPositionReflectsThroughOrigin(t *testing.T) {
	m := NewMovement()
	m.SetBounds(BoundingBoxFromResolution(200, 200))
	m.SetPosition(mgl32.Vec2{100, 50})
	m.SetVelocity(mgl32.Vec2{50, 0})
	m.Update(0.1)

	assert.InDelta(t, -105, m.Position().X(), 1e-4)
	assert.InDelta(t, -50, m.Position().Y(), 1e-4)
}

func TestMirrorAxisNegatesViolatedAxisOnly(t *testing.T) {
	m := NewMovement()
	m.SetBoundaryPolicy(MirrorAxis)
	m.SetBounds(BoundingBoxFromResolution(200, 200))
	m.SetPosition(mgl32.Vec2{100, 50})
	m.SetVelocity(mgl32.Vec2{50, 0})
	m.Update(0.1)

	assert.InDelta(t, -105, m.Position().X(), 1e-4)
	assert.InDelta(t, 50, m.Position().Y(), 1e-4)
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBoxFromResolution(801, 600)
	assert.Equal(t, mgl32.Vec2{-400.5, -300}, b.Min)
	assert.Equal(t, mgl32.Vec2{400.5, 300}, b.Max)

	assert.True(t, b.Contains(mgl32.Vec2{400.5, -300}))
	assert.False(t, b.Contains(mgl32.Vec2{400.6, 0}))

	inf := DefaultBoundingBox()
	assert.True(t, inf.Contains(mgl32.Vec2{1e30, -1e30}))
}

func TestParseBoundaryPolicy(t *testing.T) {
	p, err := ParseBoundaryPolicy("mirror_axis")
	require.NoError(t, err)
	assert.Equal(t, MirrorAxis, p)

	_, err = ParseBoundaryPolicy("wrap")
	assert.ErrorContains(t, err, `unknown boundary policy "wrap"`)
}
