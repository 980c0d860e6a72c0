package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxVelocity caps the speed of every moving object, in units per second.
const DefaultMaxVelocity float32 = 200

// Movement is the kinematic state of one object. Direction and angular velocity are in degrees;
// direction is never wrapped.
type Movement struct {
	position        mgl32.Vec2
	velocity        mgl32.Vec2
	acceleration    float32
	direction       float32
	angularVelocity float32
	maxVelocity     float32
	bounds          BoundingBox
	policy          BoundaryPolicy
}

// NewMovement returns a motionless object at the origin, unbounded, mirroring through the origin.
func NewMovement() *Movement {
	return &Movement{
		maxVelocity: DefaultMaxVelocity,
		bounds:      DefaultBoundingBox(),
		policy:      MirrorPosition,
	}
}

// Update integrates dt seconds: velocity from the heading-relative acceleration, capped at the
// max velocity; then position; then direction. A position left outside the bounds is corrected
// by the boundary policy.
//
// Parameters:
//   - dt: elapsed seconds since the previous update
func (m *Movement) Update(dt float32) {
	rad := mgl32.DegToRad(m.direction)
	forward := mgl32.Vec2{-math32.Sin(rad), math32.Cos(rad)}

	velocity := m.velocity.Add(forward.Mul(m.acceleration * dt))
	if speed := velocity.Len(); speed > m.maxVelocity {
		velocity = velocity.Mul(m.maxVelocity / speed)
	}
	m.velocity = velocity

	m.position = m.position.Add(m.velocity.Mul(dt))
	m.direction += m.angularVelocity * dt

	if !m.bounds.Contains(m.position) {
		m.position = m.policy.Apply(m.position, m.bounds)
	}
}

func (m *Movement) Position() mgl32.Vec2           { return m.position }
func (m *Movement) Velocity() mgl32.Vec2           { return m.velocity }
func (m *Movement) Acceleration() float32          { return m.acceleration }
func (m *Movement) Direction() float32             { return m.direction }
func (m *Movement) AngularVelocity() float32       { return m.angularVelocity }
func (m *Movement) MaxVelocity() float32           { return m.maxVelocity }
func (m *Movement) Bounds() BoundingBox            { return m.bounds }
func (m *Movement) BoundaryPolicy() BoundaryPolicy { return m.policy }

func (m *Movement) SetPosition(p mgl32.Vec2)           { m.position = p }
func (m *Movement) SetVelocity(v mgl32.Vec2)           { m.velocity = v }
func (m *Movement) SetAcceleration(a float32)          { m.acceleration = a }
func (m *Movement) SetDirection(degrees float32)       { m.direction = degrees }
func (m *Movement) SetAngularVelocity(dps float32)     { m.angularVelocity = dps }
func (m *Movement) SetMaxVelocity(v float32)           { m.maxVelocity = v }
func (m *Movement) SetBounds(b BoundingBox)            { m.bounds = b }
func (m *Movement) SetBoundaryPolicy(p BoundaryPolicy) { m.policy = p }
