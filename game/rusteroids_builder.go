package game

import "time"

// RusteroidsBuilderOption is a functional option for configuring the game state in NewRusteroids.
type RusteroidsBuilderOption func(*rusteroids)

// WithClock replaces the monotonic clock driving Tick.
//
// Parameters:
//   - clock: returns the current time as a duration since an arbitrary origin
//
// Returns:
//   - RusteroidsBuilderOption: a function that applies the clock
func WithClock(clock func() time.Duration) RusteroidsBuilderOption {
	return func(r *rusteroids) {
		r.timer = NewTimer(clock)
	}
}

// WithAcceleration sets the thrust acceleration in units/s².
func WithAcceleration(acceleration float32) RusteroidsBuilderOption {
	return func(r *rusteroids) {
		r.acceleration = acceleration
	}
}

// WithTurnRate sets the turning speed in degrees/s.
func WithTurnRate(degreesPerSecond float32) RusteroidsBuilderOption {
	return func(r *rusteroids) {
		r.turnRate = degreesPerSecond
	}
}

// WithMaxVelocity sets the ship's speed cap in units/s.
func WithMaxVelocity(maxVelocity float32) RusteroidsBuilderOption {
	return func(r *rusteroids) {
		r.ship.SetMaxVelocity(maxVelocity)
	}
}

// WithBoundaryPolicy sets what happens when the ship leaves the play area.
func WithBoundaryPolicy(policy BoundaryPolicy) RusteroidsBuilderOption {
	return func(r *rusteroids) {
		r.ship.SetBoundaryPolicy(policy)
	}
}
