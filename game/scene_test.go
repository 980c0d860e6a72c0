package game

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/gputest"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSceneRenderer(t *testing.T) (renderer.Renderer, *gputest.Backend) {
	t.Helper()
	b := gputest.NewBackend()
	r, err := renderer.NewRenderer(context.Background(), b, 800, 600)
	require.NoError(t, err)
	return r, b
}

func TestSceneSetupAddsShip(t *testing.T) {
	r, _ := newSceneRenderer(t)
	s := NewScene(NewRusteroids())
	assert.Equal(t, renderer.GeometryID(-1), s.ShipID())

	require.NoError(t, s.Setup(r))
	assert.Equal(t, renderer.GeometryID(0), s.ShipID())
	assert.Equal(t, uint32(len(Wedge)), r.Geometry(s.ShipID()).VertexCount())
}

func TestSceneKeyTransitions(t *testing.T) {
	s := NewScene(NewRusteroids())

	s.Key(common.InputEvent{Key: common.KeyW, Pressed: true})
	s.Key(common.InputEvent{Key: common.KeyA, Pressed: true})
	assert.True(t, s.Game().Accelerating())
	assert.Equal(t, RotationLeft, s.Game().Rotation())

	s.Key(common.InputEvent{Key: common.KeyD, Pressed: true})
	assert.Equal(t, RotationNone, s.Game().Rotation())

	s.Key(common.InputEvent{Key: common.KeyA, Pressed: false})
	assert.Equal(t, RotationRight, s.Game().Rotation())

	s.Key(common.InputEvent{Key: common.KeySpace, Pressed: true})
	s.Key(common.InputEvent{Key: common.KeyW, Pressed: false})
	assert.False(t, s.Game().Accelerating())
	assert.Equal(t, RotationRight, s.Game().Rotation())
}

func TestSceneTickUploadsShipTransform(t *testing.T) {
	r, b := newSceneRenderer(t)
	game := NewRusteroids(WithClock(steppingClock(100 * time.Millisecond)))
	s := NewScene(game)
	require.NoError(t, s.Setup(r))

	game.Movement().SetVelocity(mgl32.Vec2{10, 0})
	require.NoError(t, s.Tick(r))

	want := [16]float32(common.ModelMatrix2D(1, 0, 0))
	assert.Equal(t, want, r.Geometry(s.ShipID()).ModelMatrix())
	assert.Equal(t, common.MatrixBytes(want), b.Device.Buffers[len(b.Device.Buffers)-1].Contents)
}

func TestSceneTickBeforeSetupFails(t *testing.T) {
	r, _ := newSceneRenderer(t)
	s := NewScene(NewRusteroids())
	assert.ErrorIs(t, s.Tick(r), renderer.ErrUnknownGeometry)
}

func TestSceneResizeBoundsShip(t *testing.T) {
	s := NewScene(NewRusteroids())
	s.Resize(400, 200)
	assert.Equal(t, mgl32.Vec2{200, 100}, s.Game().Movement().Bounds().Max)
}

func TestSceneApplyConfig(t *testing.T) {
	s := NewScene(NewRusteroids())

	cfg := config.Default()
	cfg.Physics.MaxVelocity = 75
	s.ApplyConfig(cfg)
	assert.Equal(t, float32(75), s.Game().Movement().MaxVelocity())

	cfg.Physics.MaxVelocity = 10
	cfg.Physics.Boundary = "bounce"
	s.ApplyConfig(cfg)
	assert.Equal(t, float32(75), s.Game().Movement().MaxVelocity())
}
