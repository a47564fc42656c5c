// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/clockwork/internal/imageio"
	"github.com/gogpu/clockwork/resource"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// FrameState is the position of a RenderContext in its per-frame protocol.
//
// A frame moves through
//
//	Idle → GlobalUpdated → TexturesValidated → PassOpen →
//	(LocalBufferWritten → Drawn)* → PassClosed → Submitted → Presented → Idle
type FrameState int

// Frame states.
const (
	FrameIdle FrameState = iota
	FrameGlobalUpdated
	FrameTexturesValidated
	FramePassOpen
	FrameLocalBufferWritten
	FrameDrawn
	FramePassClosed
	FrameSubmitted
	FramePresented
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameGlobalUpdated:
		return "GlobalUpdated"
	case FrameTexturesValidated:
		return "TexturesValidated"
	case FramePassOpen:
		return "PassOpen"
	case FrameLocalBufferWritten:
		return "LocalBufferWritten"
	case FrameDrawn:
		return "Drawn"
	case FramePassClosed:
		return "PassClosed"
	case FrameSubmitted:
		return "Submitted"
	case FramePresented:
		return "Presented"
	default:
		return fmt.Sprintf("FrameState(%d)", int(s))
	}
}

// Stats describes the last rendered frame.
type Stats struct {
	// Frames counts presented frames since construction.
	Frames uint64

	// Draws is the number of indexed draws in the last frame.
	Draws int

	// Indices is the total index count drawn in the last frame.
	Indices uint64

	// PoolSize is the number of per-draw uniform slots allocated.
	PoolSize int

	// BindGroups is the number of cached texture bind groups.
	BindGroups int

	// BindGroupsBuilt counts texture bind groups built or rebuilt during the
	// last frame.
	BindGroupsBuilt int
}

// RenderContext owns the GPU device, the output surface, the diffuse
// pipeline, the depth buffer and every mesh and texture loaded through it.
//
// RenderContext is not safe for concurrent use.
type RenderContext struct {
	device hal.Device
	queue  hal.Queue
	owned  *gpu.Device // nil when the device belongs to the caller

	surface Surface
	config  Config

	pipeline   *gpu.DiffusePipeline
	pool       *gpu.UniformPool
	depth      *gpu.Texture
	meshes     *resource.Repository[Mesh]
	textures   *resource.Repository[Texture]
	bindGroups *bindGroupCache

	state  FrameState
	stats  Stats
	closed bool

	// trace observes every state transition. Used by tests.
	trace func(FrameState)
}

// New opens a GPU device and creates a RenderContext drawing into surface at
// the given size. It blocks until the device is ready.
func New(surface Surface, width, height uint32, cfg Config) (*RenderContext, error) {
	dev, err := gpu.OpenDevice()
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	rc, err := newContext(dev.Device, dev.Queue, dev, surface, width, height, cfg)
	if err != nil {
		dev.Destroy()
		return nil, err
	}
	Logger().Info("render context created", "adapter", dev.AdapterName, "width", width, "height", height)
	return rc, nil
}

// MustNew is like New but panics on error.
func MustNew(surface Surface, width, height uint32, cfg Config) *RenderContext {
	rc, err := New(surface, width, height, cfg)
	if err != nil {
		panic(err)
	}
	return rc
}

// NewWithDevice creates a RenderContext on a device owned by the caller.
// Close does not destroy device.
func NewWithDevice(device hal.Device, queue hal.Queue, surface Surface, width, height uint32, cfg Config) (*RenderContext, error) {
	return newContext(device, queue, nil, surface, width, height, cfg)
}

// NewFromProvider creates a RenderContext sharing the device of provider,
// typically a gogpu window. The provider must also expose its HAL device and
// queue through HalDevice and HalQueue.
//
// A nil surface selects a HostSurface in the provider's surface format; the
// host then supplies a view per frame through Surface().(*HostSurface).SetView.
func NewFromProvider(provider gpucontext.DeviceProvider, surface Surface, width, height uint32, cfg Config) (*RenderContext, error) {
	device, queue, err := gpu.DeviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		surface = NewHostSurface(provider.SurfaceFormat(), nil)
	}
	rc, err := newContext(device, queue, nil, surface, width, height, cfg)
	if err != nil {
		return nil, err
	}
	Logger().Info("render context created from provider", "adapter", provider.AdapterInfo().Name, "width", width, "height", height)
	return rc, nil
}

func newContext(device hal.Device, queue hal.Queue, owned *gpu.Device, surface Surface, width, height uint32, cfg Config) (*RenderContext, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cfg = cfg.withDefaults()

	rc := &RenderContext{
		device:   device,
		queue:    queue,
		surface:  surface,
		config:   cfg,
		meshes:   resource.NewRepository[Mesh](),
		textures: resource.NewRepository[Texture](),
	}
	if err := rc.init(width, height); err != nil {
		rc.release()
		return nil, err
	}
	rc.owned = owned
	return rc, nil
}

func (rc *RenderContext) init(width, height uint32) error {
	pipeline, err := gpu.NewDiffusePipeline(rc.device, gpu.PipelineConfig{
		ColorFormat:  rc.surface.Format(),
		CompileSPIRV: rc.config.CompileSPIRV,
	})
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	rc.pipeline = pipeline

	pool, err := gpu.NewUniformPool(rc.device, rc.queue, pipeline.BuffersLayout())
	if err != nil {
		return fmt.Errorf("create uniform pool: %w", err)
	}
	rc.pool = pool
	rc.bindGroups = newBindGroupCache(rc.device, pipeline, rc.textures, rc.config.Label)

	white := imageio.Solid(1, 1, [4]uint8{255, 255, 255, 255})
	if _, err := rc.storeTexture(white, &DefaultTextureID); err != nil {
		return fmt.Errorf("create default texture: %w", err)
	}

	return rc.Resize(width, height)
}

// Surface returns the surface the context draws into.
func (rc *RenderContext) Surface() Surface { return rc.surface }

// Config returns the effective configuration.
func (rc *RenderContext) Config() Config { return rc.config }

// State returns the current frame state. It is FrameIdle between frames.
func (rc *RenderContext) State() FrameState { return rc.state }

// Stats returns counters describing the last rendered frame.
func (rc *RenderContext) Stats() Stats { return rc.stats }

// Mesh returns the mesh stored at id.
func (rc *RenderContext) Mesh(id MeshID) (Mesh, bool) { return rc.meshes.Get(id) }

// Texture returns the texture stored at id.
func (rc *RenderContext) Texture(id TextureID) (Texture, bool) { return rc.textures.Get(id) }

// TextureGeneration returns how many times the slot id has been written.
func (rc *RenderContext) TextureGeneration(id TextureID) uint64 { return rc.textures.Generation(id) }

func (rc *RenderContext) setState(s FrameState) {
	rc.state = s
	if rc.trace != nil {
		rc.trace(s)
	}
}

// Resize reconfigures the surface and recreates the depth buffer. It must be
// called before the next Render after the output size changed.
func (rc *RenderContext) Resize(width, height uint32) error {
	if rc.closed {
		return ErrClosed
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	if err := rc.surface.Configure(rc.device, rc.queue, width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	depth, err := gpu.CreateDepthTexture(rc.device, width, height)
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	if rc.depth != nil {
		rc.depth.Destroy(rc.device)
	}
	rc.depth = depth

	Logger().Debug("render context resized", "width", width, "height", height)
	return nil
}

// Render draws ops in order with viewProjection as the camera matrix and
// presents the frame.
//
// Every mesh and texture an operation refers to must have been loaded into
// this context. A missing one is a programming error and panics before any
// GPU work for the frame is recorded.
func (rc *RenderContext) Render(viewProjection mgl32.Mat4, ops []RenderOperation) error {
	if rc.closed {
		return ErrClosed
	}
	rc.setState(FrameIdle)
	builtBefore := rc.bindGroups.built

	raw := make([]rawOperation, len(ops))
	for i := range ops {
		raw[i] = ops[i].lower()
	}

	if err := rc.pool.EnsureCapacity(len(raw)); err != nil {
		return fmt.Errorf("grow uniform pool: %w", err)
	}
	if err := rc.pool.WriteGlobal(gpu.GlobalUniforms{ViewProjection: viewProjection}); err != nil {
		return err
	}
	rc.setState(FrameGlobalUpdated)

	meshes := make([]Mesh, len(raw))
	for i, op := range raw {
		meshes[i] = rc.meshes.MustGet(op.mesh)
		if err := rc.bindGroups.ensureValid(op.textures); err != nil {
			return err
		}
	}
	rc.setState(FrameTexturesValidated)

	view, err := rc.surface.Acquire()
	if err != nil {
		rc.setState(FrameIdle)
		return fmt.Errorf("acquire surface: %w", err)
	}

	frame, err := gpu.BeginFrame(rc.device, rc.queue, gpu.FrameTargets{
		Color: view,
		Depth: rc.depth.View,
		Clear: rc.config.ClearColor,
	})
	if err != nil {
		rc.setState(FrameIdle)
		return fmt.Errorf("begin frame: %w", err)
	}
	pass := frame.Pass()
	pass.SetPipeline(rc.pipeline.Pipeline())
	rc.setState(FramePassOpen)

	var indices uint64
	for i, op := range raw {
		err := rc.pool.WriteLocal(i, gpu.LocalUniforms{
			Transform: op.transform,
			UVWindow:  op.uvWindow,
			Color:     op.color,
		})
		if err != nil {
			frame.Discard()
			rc.setState(FrameIdle)
			return err
		}
		rc.setState(FrameLocalBufferWritten)

		buffers := meshes[i].buffers
		pass.SetBindGroup(0, rc.pool.BindGroup(i), nil)
		pass.SetBindGroup(1, rc.bindGroups.get(op.textures), nil)
		pass.SetVertexBuffer(0, buffers.Vertex, 0)
		pass.SetIndexBuffer(buffers.Index, gputypes.IndexFormatUint32, 0)
		pass.DrawIndexed(buffers.IndexCount, 1, 0, 0, 0)
		indices += uint64(buffers.IndexCount)
		rc.setState(FrameDrawn)
	}

	frame.End()
	rc.setState(FramePassClosed)

	if err := frame.Submit(rc.config.SubmitTimeout); err != nil {
		rc.setState(FrameIdle)
		return fmt.Errorf("submit frame: %w", err)
	}
	rc.setState(FrameSubmitted)

	if err := rc.surface.Present(); err != nil {
		rc.setState(FrameIdle)
		return fmt.Errorf("present: %w", err)
	}
	rc.setState(FramePresented)

	rc.stats = Stats{
		Frames:          rc.stats.Frames + 1,
		Draws:           len(raw),
		Indices:         indices,
		PoolSize:        rc.pool.Len(),
		BindGroups:      rc.bindGroups.Len(),
		BindGroupsBuilt: rc.bindGroups.built - builtBefore,
	}
	rc.setState(FrameIdle)
	return nil
}

// Close releases every GPU object created by the context, and the device if
// New opened it. Close is idempotent.
func (rc *RenderContext) Close() {
	if rc.closed {
		return
	}
	rc.release()
	rc.closed = true
	Logger().Debug("render context closed")
}

// release destroys whatever has been created so far, in reverse order.
func (rc *RenderContext) release() {
	if rc.bindGroups != nil {
		rc.bindGroups.destroy()
	}
	if rc.pool != nil {
		rc.pool.Destroy()
	}
	for _, m := range rc.meshes.All() {
		m.buffers.Destroy(rc.device)
	}
	rc.meshes.Clear()
	for _, t := range rc.textures.All() {
		t.gpu.Destroy(rc.device)
	}
	rc.textures.Clear()
	if rc.depth != nil {
		rc.depth.Destroy(rc.device)
		rc.depth = nil
	}
	if rc.pipeline != nil {
		rc.pipeline.Destroy()
		rc.pipeline = nil
	}
	if rc.surface != nil {
		rc.surface.Release()
	}
	if rc.owned != nil {
		rc.owned.Destroy()
		rc.owned = nil
	}
}
