// Package game holds the ship simulation and the scene that feeds it to the renderer.
package game

import (
	"sync"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Default ship constants.
const (
	DefaultAcceleration float32 = 150
	DefaultTurnRate     float32 = 180
)

// Rotation is the player's turning intent.
type Rotation int

const (
	RotationNone Rotation = iota
	RotationLeft
	RotationRight
)

func (r Rotation) String() string {
	switch r {
	case RotationLeft:
		return "left"
	case RotationRight:
		return "right"
	default:
		return "none"
	}
}

// rusteroids is the implementation of the Rusteroids interface.
type rusteroids struct {
	mu *sync.Mutex

	timer *Timer
	ship  *Movement

	accelerating bool
	rotation     Rotation

	// acceleration is applied while accelerating, in units/s².
	acceleration float32
	// turnRate is the angular speed while turning, in degrees/s.
	turnRate float32
}

// Rusteroids is the game state: one ship steered by thrust and turn intents.
type Rusteroids interface {
	// SetBounds sizes the play area to a pixel resolution centered on the origin.
	//
	// Parameters:
	//   - width: the width in pixels
	//   - height: the height in pixels
	SetBounds(width, height int)

	// UpdateKeys derives intents from the held keys. Left and right together cancel out.
	//
	// Parameters:
	//   - w: thrust held
	//   - a: turn left held
	//   - d: turn right held
	UpdateKeys(w, a, d bool)

	// Tick advances the timer and integrates the ship over the elapsed interval.
	Tick()

	// TransformMatrix returns translation(position) x rotationZ(direction), column-major.
	TransformMatrix() [16]float32

	// Apply hot-swaps the physics constants.
	//
	// Parameters:
	//   - physics: the new constants
	//
	// Returns:
	//   - error: an error if the boundary policy is unknown; nothing is applied in that case
	Apply(physics config.Physics) error

	Rotation() Rotation
	Accelerating() bool

	// Movement exposes the ship's kinematic state.
	Movement() *Movement
}

var _ Rusteroids = &rusteroids{}

// NewRusteroids creates a motionless ship at the origin with no bounds.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Rusteroids: the game state
func NewRusteroids(options ...RusteroidsBuilderOption) Rusteroids {
	r := &rusteroids{
		mu:           &sync.Mutex{},
		ship:         NewMovement(),
		acceleration: DefaultAcceleration,
		turnRate:     DefaultTurnRate,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.timer == nil {
		r.timer = NewTimer(nil)
	}
	return r
}

func (r *rusteroids) SetBounds(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ship.SetBounds(BoundingBoxFromResolution(width, height))
}

func (r *rusteroids) UpdateKeys(w, a, d bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case a && !d:
		r.rotation = RotationLeft
	case d && !a:
		r.rotation = RotationRight
	default:
		r.rotation = RotationNone
	}
	r.accelerating = w
}

func (r *rusteroids) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.timer.Tick()

	switch r.rotation {
	case RotationLeft:
		r.ship.SetAngularVelocity(r.turnRate)
	case RotationRight:
		r.ship.SetAngularVelocity(-r.turnRate)
	default:
		r.ship.SetAngularVelocity(0)
	}
	if r.accelerating {
		r.ship.SetAcceleration(r.acceleration)
	} else {
		r.ship.SetAcceleration(0)
	}
	r.ship.Update(elapsed)
}

func (r *rusteroids) TransformMatrix() [16]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.ship.Position()
	return [16]float32(common.ModelMatrix2D(pos.X(), pos.Y(), mgl32.DegToRad(r.ship.Direction())))
}

func (r *rusteroids) Apply(physics config.Physics) error {
	policy, err := ParseBoundaryPolicy(physics.Boundary)
	if err != nil {
		return errors.Wrap(err, "apply physics")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ship.SetMaxVelocity(physics.MaxVelocity)
	r.ship.SetBoundaryPolicy(policy)
	r.acceleration = physics.Acceleration
	r.turnRate = physics.TurnRate
	return nil
}

func (r *rusteroids) Rotation() Rotation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotation
}

func (r *rusteroids) Accelerating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accelerating
}

func (r *rusteroids) Movement() *Movement {
	return r.ship
}
