package renderer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/engine/camera"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/Carmen-Shannon/rusteroids/engine/model"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/layout"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer/shader"
	"github.com/pkg/errors"
)

// mat4LayoutLabel labels the single layout shared by the camera and model uniforms.
const mat4LayoutLabel = "mat4_layout_descriptor"

// pipelineKey identifies the only pipeline the renderer builds.
const pipelineKey = "line_strip"

// ErrUnknownGeometry is returned by Update for an id that AddGeometry never handed out.
var ErrUnknownGeometry = errors.New("renderer: unknown geometry")

// GeometryID identifies a geometry added to the renderer. IDs are dense and start at 0.
type GeometryID int

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	graphics GraphicsContext
	registry *BindingRegistry
	camera   camera.Camera
	pipeline pipeline.Pipeline
	geometry []model.GeometryBuffer

	// The following are collected from builder options before the GPU objects exist.

	clearColor      common.Color
	shaderSource    string
	presentMode     *gpu.PresentMode
	pipelineOptions []pipeline.PipelineBuilderOption
	cameraOptions   []camera.CameraBuilderOption
}

// Renderer drives one frame at a time: it owns the graphics context, camera, pipeline, and every
// geometry, and encodes a single clearing render pass per frame.
type Renderer interface {
	// AddGeometry uploads a vertex list and returns the id used to update it.
	//
	// Parameters:
	//   - vertices: the line-strip vertices
	//
	// Returns:
	//   - GeometryID: the index of the new geometry
	//   - error: an error if the GPU resources could not be created
	AddGeometry(vertices []model.Vertex) (GeometryID, error)

	// Update writes a model matrix to one geometry.
	//
	// Parameters:
	//   - id: the geometry to update
	//   - matrix: the model matrix, column-major
	//
	// Returns:
	//   - error: ErrUnknownGeometry for an unknown id, or the upload error
	Update(id GeometryID, matrix [16]float32) error

	// UpdateAll writes the same model matrix to every geometry.
	//
	// Parameters:
	//   - matrix: the model matrix, column-major
	//
	// Returns:
	//   - error: the first upload error
	UpdateAll(matrix [16]float32) error

	// Render acquires a frame, draws every geometry, submits, and presents.
	//
	// Returns:
	//   - error: the *gpu.FrameError from acquisition unchanged, or an encoding error
	Render() error

	// Resize reconfigures the surface and camera. Does nothing if either dimension is zero or negative.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Input offers a key event to the renderer first.
	//
	// Returns:
	//   - bool: whether the event was consumed; always false
	Input(event common.InputEvent) bool

	// Size returns the current surface size.
	Size() (int, int)

	Camera() camera.Camera

	// Geometry returns the geometry with the given id, or nil.
	Geometry(id GeometryID) model.GeometryBuffer

	GeometryCount() int

	// Release frees every GPU object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer opens the backend and builds the context, binding registry, camera, and pipeline.
//
// Parameters:
//   - ctx: cancels backend setup
//   - backend: the graphics backend
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - opts: functional options
//
// Returns:
//   - Renderer: the ready renderer with no geometry
//   - error: a setup error; the caller should treat it as fatal
func NewRenderer(ctx context.Context, backend gpu.Backend, width, height int, opts ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:           &sync.Mutex{},
		clearColor:   common.Transparent,
		shaderSource: shader.Source,
	}
	for _, opt := range opts {
		opt(r)
	}

	reflection, err := shader.Reflect(r.shaderSource)
	if err != nil {
		return nil, err
	}
	vertexLayout := layout.VertexLayoutOf[model.Vertex]()
	if err := reflection.CheckVertexLayout(vertexLayout); err != nil {
		return nil, err
	}
	for group := uint32(0); group < 2; group++ {
		if err := reflection.CheckUniform(group, layout.Mat4x4.Size()); err != nil {
			return nil, err
		}
	}

	var ctxOpts []GraphicsContextBuilderOption
	if r.presentMode != nil {
		ctxOpts = append(ctxOpts, WithPreferredPresentMode(*r.presentMode))
	}
	r.graphics, err = NewGraphicsContext(ctx, backend, width, height, ctxOpts...)
	if err != nil {
		return nil, err
	}
	device := r.graphics.Device()

	mat4Layout, err := device.CreateBindGroupLayout(layout.Mat4LayoutDescriptor(mat4LayoutLabel))
	if err != nil {
		r.graphics.Release()
		return nil, errors.Wrap(err, "renderer: create binding layout")
	}
	r.registry = NewBindingRegistry()
	r.registry.Register(CameraLayout, mat4Layout)
	r.registry.Register(ModelLayout, mat4Layout)

	w, h := r.graphics.Size()
	r.camera = camera.NewCamera(uint32(w), uint32(h), r.cameraOptions...)
	if err := r.camera.Setup(device, r.registry.Layout(CameraLayout)); err != nil {
		r.Release()
		return nil, errors.Wrap(err, "renderer")
	}

	pipelineOpts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithEntryPoints(reflection.VertexEntryPoint, reflection.FragmentEntryPoint),
	}, r.pipelineOptions...)
	r.pipeline, err = pipeline.NewPipeline(
		device,
		pipelineKey,
		r.shaderSource,
		vertexLayout,
		[]gpu.BindGroupLayout{r.registry.Layout(CameraLayout), r.registry.Layout(ModelLayout)},
		r.graphics.Format(),
		pipelineOpts...,
	)
	if err != nil {
		r.Release()
		return nil, errors.Wrap(err, "renderer")
	}
	return r, nil
}

func (r *renderer) AddGeometry(vertices []model.Vertex) (GeometryID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := len(r.geometry)
	g := model.NewGeometryBuffer(vertices)
	if err := g.Create(r.graphics.Device(), r.registry.Layout(ModelLayout), index); err != nil {
		return -1, err
	}
	r.geometry = append(r.geometry, g)
	slog.Info("geometry added", "index", index, "vertices", len(vertices))
	return GeometryID(index), nil
}

func (r *renderer) Update(id GeometryID, matrix [16]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id < 0 || int(id) >= len(r.geometry) {
		return errors.Wrapf(ErrUnknownGeometry, "id %d", id)
	}
	return r.geometry[id].Update(r.graphics.Queue(), matrix)
}

func (r *renderer) UpdateAll(matrix [16]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.geometry {
		if err := g.Update(r.graphics.Queue(), matrix); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame, err := r.graphics.AcquireFrame()
	if err != nil {
		return err
	}

	encoder, err := r.graphics.Device().CreateCommandEncoder("Render Encoder")
	if err != nil {
		frame.Discard()
		return errors.Wrap(err, "renderer: create command encoder")
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(gpu.RenderPassDescriptor{
		Label:      "Render Pass",
		Target:     frame.View(),
		ClearColor: r.clearColor,
	})
	r.pipeline.Bind(pass)
	r.camera.Bind(pass)
	for _, g := range r.geometry {
		g.Draw(pass, common.SingleInstance)
	}
	if err := pass.End(); err != nil {
		frame.Discard()
		return errors.Wrap(err, "renderer: end render pass")
	}

	cmd, err := encoder.Finish()
	if err != nil {
		frame.Discard()
		return errors.Wrap(err, "renderer: finish encoder")
	}
	defer cmd.Release()

	r.graphics.Submit(cmd)
	r.graphics.Present(frame)
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.graphics.Resize(width, height)
	if err := r.camera.Resize(uint32(width), uint32(height), r.graphics.Queue()); err != nil {
		slog.Error("camera resize failed", "width", width, "height", height, "error", err)
	}
	slog.Info("resized", "width", width, "height", height)
}

func (r *renderer) Input(event common.InputEvent) bool {
	return false
}

func (r *renderer) Size() (int, int) {
	return r.graphics.Size()
}

func (r *renderer) Camera() camera.Camera {
	return r.camera
}

func (r *renderer) Geometry(id GeometryID) model.GeometryBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id < 0 || int(id) >= len(r.geometry) {
		return nil
	}
	return r.geometry[id]
}

func (r *renderer) GeometryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.geometry)
}

func (r *renderer) Release() {
	for _, g := range r.geometry {
		g.Release()
	}
	r.geometry = nil
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.camera != nil {
		r.camera.Release()
	}
	if r.registry != nil {
		r.registry.Release()
	}
	if r.graphics != nil {
		r.graphics.Release()
		r.graphics = nil
	}
}
