package camera

import (
	"sync"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/uniform"
	"github.com/pkg/errors"
)

// UniformLabel is the debug label of the projection uniform.
const UniformLabel = "camera"

type cameraImpl struct {
	mu *sync.Mutex

	width  uint32
	height uint32

	near float32
	far  float32

	// projection is nil until Setup runs.
	projection uniform.UniformResource[[16]float32]
}

// Camera is an orthographic camera centered on the origin and spanning the viewport in pixels.
// It owns the projection uniform bound at slot 0 of every draw.
//
// The camera starts uninitialized; Setup creates the GPU uniform and makes it ready.
// Once ready, the uniform always reflects the current width and height.
type Camera interface {
	// Width returns the viewport width in pixels.
	//
	// Returns:
	//   - uint32: width in pixels
	Width() uint32

	// Height returns the viewport height in pixels.
	//
	// Returns:
	//   - uint32: height in pixels
	Height() uint32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Ready reports whether Setup has created the projection uniform.
	//
	// Returns:
	//   - bool: true once set up
	Ready() bool

	// ProjectionMatrix returns the transposed left-handed orthographic projection, composed with the
	// depth remap, as 16 floats in upload order.
	//
	// Returns:
	//   - [16]float32: the projection in upload order
	ProjectionMatrix() [16]float32

	// Setup computes the projection and creates the backing uniform. Re-running it rebuilds the uniform.
	//
	// Parameters:
	//   - device: the device to allocate the uniform on
	//   - layout: the single-entry mat4 layout
	//
	// Returns:
	//   - error: an error if the uniform could not be created
	Setup(device gpu.Device, layout gpu.BindGroupLayout) error

	// Resize stores new dimensions and re-uploads the projection when they differ from the current ones.
	// Identical dimensions have no effect. Before Setup the dimensions are stored without an upload.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	//   - queue: the queue to upload through
	//
	// Returns:
	//   - error: an error if the upload failed
	Resize(width, height uint32, queue gpu.Queue) error

	// Bind attaches the projection uniform at slot 0. No-op before Setup.
	//
	// Parameters:
	//   - pass: the render pass being encoded
	Bind(pass gpu.RenderPass)

	// Release frees the projection uniform and returns the camera to the uninitialized state.
	Release()
}

var _ Camera = &cameraImpl{}

// NewCamera creates an uninitialized orthographic camera for a viewport of width x height pixels.
// Near and far default to 0.01 and 1000.
//
// Parameters:
//   - width, height: the viewport size in pixels
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(width, height uint32, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
		near:   0.01,
		far:    1000,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Width() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *cameraImpl) Height() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection != nil
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix()
}

func (c *cameraImpl) Setup(device gpu.Device, layout gpu.BindGroupLayout) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	projection, err := uniform.New(device, c.projectionMatrix(), layout, UniformLabel)
	if err != nil {
		return errors.Wrap(err, "camera setup")
	}
	if c.projection != nil {
		c.projection.Release()
	}
	c.projection = projection
	return nil
}

func (c *cameraImpl) Resize(width, height uint32, queue gpu.Queue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.width == width && c.height == height {
		return nil
	}
	c.width = width
	c.height = height
	if c.projection == nil {
		return nil
	}
	return c.projection.Update(queue, c.projectionMatrix())
}

func (c *cameraImpl) Bind(pass gpu.RenderPass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projection == nil {
		return
	}
	c.projection.Bind(pass, 0)
}

func (c *cameraImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projection != nil {
		c.projection.Release()
		c.projection = nil
	}
}

// projectionMatrix derives the upload-order projection from the current size.
// Half extents use integer division before conversion, so odd sizes round down.
// Caller must hold the mutex.
func (c *cameraImpl) projectionMatrix() [16]float32 {
	halfWidth := float32(c.width / 2)
	halfHeight := float32(c.height / 2)
	return common.OrthographicLH(-halfWidth, halfWidth, -halfHeight, halfHeight, c.near, c.far).
		Mul4(common.DepthRemap()).
		Transpose()
}
