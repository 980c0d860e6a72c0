package game

import (
	"log/slog"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer"
	"github.com/pkg/errors"
)

// Scene connects the simulation to the engine: it owns the ship geometry and turns W/A/D
// transitions into intents.
type Scene struct {
	game   Rusteroids
	shipID renderer.GeometryID

	thrust bool
	left   bool
	right  bool
}

// NewScene wraps a game state. The ship geometry is added in Setup.
func NewScene(game Rusteroids) *Scene {
	return &Scene{game: game, shipID: -1}
}

// Setup adds the ship outline to the renderer.
func (s *Scene) Setup(r renderer.Renderer) error {
	id, err := r.AddGeometry(Wedge)
	if err != nil {
		return errors.Wrap(err, "scene: add ship")
	}
	s.shipID = id
	return nil
}

// Resize refits the play area to the new window size.
func (s *Scene) Resize(width, height int) {
	s.game.SetBounds(width, height)
}

// Key records W, A and D transitions. Other keys are ignored.
func (s *Scene) Key(event common.InputEvent) {
	switch event.Key {
	case common.KeyW:
		s.thrust = event.Pressed
	case common.KeyA:
		s.left = event.Pressed
	case common.KeyD:
		s.right = event.Pressed
	default:
		return
	}
	s.game.UpdateKeys(s.thrust, s.left, s.right)
}

// Tick advances the simulation and uploads the ship transform.
func (s *Scene) Tick(r renderer.Renderer) error {
	s.game.Tick()
	return r.Update(s.shipID, s.game.TransformMatrix())
}

// ApplyConfig hot-applies the physics section. An invalid section is logged and skipped.
func (s *Scene) ApplyConfig(cfg config.Config) {
	if err := s.game.Apply(cfg.Physics); err != nil {
		slog.Warn("config reload rejected", "error", err)
	}
}

// Game returns the wrapped game state.
func (s *Scene) Game() Rusteroids {
	return s.game
}

// ShipID returns the ship's geometry id, or -1 before Setup.
func (s *Scene) ShipID() renderer.GeometryID {
	return s.shipID
}
