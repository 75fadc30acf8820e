package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// frameContext is everything one render call works on. Render owns it;
// offscreen renders inside a frame work on shallow copies.
type frameContext struct {
	scene *scene.Scene
	opts  scene.Options

	instances []*scene.Instance
	lights    []scene.Light
	cameras   []*camera.Camera

	cam        *camera.Camera
	sceneState scene.ShaderState

	target   gpu.Target
	face     int
	full     gpu.Rect
	viewport gpu.Rect
}

func (r *Renderer) newFrameContext(s *scene.Scene, opts scene.Options) *frameContext {
	w, h := r.dev.CanvasSize()
	full := gpu.Rect{W: w, H: h}
	return &frameContext{scene: s, opts: opts, full: full, viewport: full}
}

// withOptions returns a copy sharing the collection but rendering with opts.
func (fc *frameContext) withOptions(opts scene.Options) *frameContext {
	cp := *fc
	cp.opts = opts
	return &cp
}

// targetState is one saved level of the render target stack.
type targetState struct {
	target     gpu.Target
	face       int
	full       gpu.Rect
	viewport   gpu.Rect
	cam        *camera.Camera
	aspect     float32
	sceneState scene.ShaderState
}

// pushTarget saves the current target and binds t (face for cubemaps).
func (r *Renderer) pushTarget(fc *frameContext, t gpu.Target, face int) {
	saved := targetState{
		target:     fc.target,
		face:       fc.face,
		full:       fc.full,
		viewport:   fc.viewport,
		cam:        fc.cam,
		sceneState: fc.sceneState,
	}
	if fc.cam != nil {
		saved.aspect = fc.cam.AspectRatio()
	}
	r.targets = append(r.targets, saved)

	fc.target, fc.face = t, face
	fc.full = t.Desc().Rect()
	fc.viewport = fc.full
	r.dev.BindTarget(t, face)
	r.dev.Viewport(fc.full)

	r.log.Debug("render target pushed",
		zap.String("target", t.Desc().Name),
		zap.Int("face", face),
		zap.Int("depth", len(r.targets)),
	)
}

// popTarget restores the binding, viewport and camera saved by pushTarget.
func (r *Renderer) popTarget(fc *frameContext) error {
	if len(r.targets) == 0 {
		return ErrTargetStackUnderflow
	}
	top := r.targets[len(r.targets)-1]
	r.targets = r.targets[:len(r.targets)-1]

	fc.target, fc.face = top.target, top.face
	fc.full, fc.viewport = top.full, top.viewport
	fc.cam, fc.sceneState = top.cam, top.sceneState
	r.dev.BindTarget(top.target, top.face)
	r.dev.Viewport(top.viewport)
	if top.cam != nil {
		top.cam.Update(top.aspect)
		r.debug.Reset(top.cam.Eye, top.cam.View(), top.cam.Projection())
	}

	r.log.Debug("render target popped", zap.Int("depth", len(r.targets)))
	return nil
}

// TargetDepth returns the number of saved targets.
func (r *Renderer) TargetDepth() int {
	return len(r.targets)
}

// frameTargets lets lights render offscreen during the frame being
// collected.
type frameTargets struct {
	r  *Renderer
	fc *frameContext
}

func (t frameTargets) NewTarget(desc gpu.TargetDesc) (gpu.Target, error) {
	return t.r.dev.NewTarget(desc)
}

func (t frameTargets) RenderToTexture(cam *camera.Camera, target gpu.Target, opts scene.Options) error {
	return t.r.renderToTexture(t.fc.withOptions(opts), cam, target)
}

// Bounds returns the world bounds of every collected shadow caster.
func (t frameTargets) Bounds() (math.AABB, bool) {
	var (
		out   math.AABB
		found bool
	)
	for _, inst := range t.fc.instances {
		if !inst.Has(scene.CastShadow) || inst.Has(scene.Render2D) || inst.Mesh == nil {
			continue
		}
		b := inst.WorldBounds()
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}
