// Package renderer implements the per-frame forward pipeline: collection,
// camera activation, multi-pass dispatch and offscreen targets.
package renderer

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/debug"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/picking"
	"github.com/Faultbox/midgard-render/internal/engine/sampler"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/logger"
)

var (
	// ErrNotCubemap is returned when a cubemap render targets a 2D texture.
	ErrNotCubemap = errors.New("target is not a cubemap")
	// ErrTargetStackUnderflow is returned when popping an empty target stack.
	ErrTargetStackUnderflow = errors.New("render target stack underflow")
	// ErrNoScene is returned by offscreen renders without a scene.
	ErrNoScene = errors.New("no scene to render")
	// ErrNoTarget is returned by offscreen renders without a target.
	ErrNoTarget = errors.New("no render target")
)

// PostProcess wraps one frame's camera renders. BeforeRender typically
// binds an intermediate target and AfterRender composites it.
type PostProcess interface {
	BeforeRender(dev gpu.Device, s *scene.Scene)
	AfterRender(dev gpu.Device, s *scene.Scene)
}

// Stats are counters for the last frame.
type Stats struct {
	Frame       uint64
	DrawCalls   int
	Instances   int
	Activations int
	Collections int
	Errors      int
}

// Renderer drives a gpu.Device through the forward pipeline. It is not safe
// for concurrent use; all calls happen on the render thread.
type Renderer struct {
	dev      gpu.Device
	shaders  shader.Resolver
	samplers *sampler.Binder
	textures sampler.Registry
	cfg      Config
	log      *zap.Logger

	picking *picking.Allocator
	debug   debug.Draw
	quad    *gpu.Mesh
	sphere  *gpu.Mesh

	frame        uint64
	lastScene    *scene.Scene
	sinceCollect int

	fc      *frameContext
	targets []targetState
	post    PostProcess
	stats   Stats
}

// New creates a renderer. textures resolves sampler names and supplies the
// fallback texture.
func New(dev gpu.Device, shaders shader.Resolver, textures sampler.Registry, cfg Config) *Renderer {
	if cfg.CollectEvery < 1 {
		cfg.CollectEvery = 1
	}
	if cfg.AspectMultiplier <= 0 {
		cfg.AspectMultiplier = 1
	}
	if cfg.PickingPointSize <= 0 {
		cfg.PickingPointSize = DefaultPickingPointSize
	}
	return &Renderer{
		dev:      dev,
		shaders:  shaders,
		samplers: sampler.NewBinder(dev, textures),
		textures: textures,
		cfg:      cfg,
		log:      logger.With(zap.String("component", "renderer")),
		picking:  picking.NewAllocator(),
		quad:     gpu.NewQuad(),
	}
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Picking returns the allocator that maps nodes to picking colors.
func (r *Renderer) Picking() *picking.Allocator {
	return r.picking
}

// SetPostProcess arms p for the next Render call only. Arming twice before
// a frame replaces the earlier value.
func (r *Renderer) SetPostProcess(p PostProcess) {
	if r.post != nil && p != nil {
		r.log.Warn("post process already armed for this frame, replacing")
	}
	r.post = p
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() gpu.Device {
	return r.dev
}
