package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
)

// Render draws one frame of s through every camera. With no explicit
// cameras the collected ones are used; the first camera is the main one.
// The GPU is left at the baseline state when Render returns.
func (r *Renderer) Render(s *scene.Scene, opts scene.Options, cameras ...*camera.Camera) {
	if s == nil {
		r.log.Warn("render called without a scene")
		return
	}
	defer gpu.Reset(r.dev)

	fc := r.newFrameContext(s, opts)
	prev := r.fc
	r.fc = fc
	defer func() { r.fc = prev }()

	r.frame++
	s.Frame++
	s.NeedsRedraw = false
	r.stats = Stats{Frame: r.frame}

	hooks := s.Hooks()
	hooks.BeforeRender(s)
	gpu.Reset(r.dev)

	r.collect(fc, r.freshCollect(s), cameras)

	cams := cameras
	if len(cams) == 0 {
		cams = fc.cameras
	}
	if len(cams) == 0 || cams[0] == nil {
		r.log.Warn("no camera to render with", zap.String("scene", s.Name))
	} else {
		fc.cam = cams[0]
	}

	hooks.RenderShadows(s)
	hooks.AfterVisibility(s)
	hooks.RenderReflections(s)
	hooks.BeforeRenderMainPass(s)
	gpu.Reset(r.dev)

	post := r.post
	r.post = nil
	if post != nil {
		post.BeforeRender(r.dev, s)
		gpu.Reset(r.dev)
	}
	for _, cam := range cams {
		if cam != nil {
			r.renderFrame(fc, cam)
		}
	}
	if post != nil {
		post.AfterRender(r.dev, s)
		gpu.Reset(r.dev)
	}

	hooks.AfterRender(s)
}

// RenderFrame renders one camera's frame. A nil scene renders the scene of
// the frame in progress; a nil camera logs a warning and draws nothing.
func (r *Renderer) RenderFrame(cam *camera.Camera, opts scene.Options, s *scene.Scene) error {
	if cam == nil {
		r.log.Warn("no camera to render with")
		return nil
	}
	fc, err := r.contextFor(s, opts)
	if err != nil {
		return err
	}
	defer gpu.Reset(r.dev)
	r.renderFrame(fc, cam)
	return nil
}

func (r *Renderer) renderFrame(fc *frameContext, cam *camera.Camera) {
	s := fc.scene
	hooks := s.Hooks()

	hooks.BeforeRenderFrame(s, cam)
	if cam.BeforeFrame != nil {
		cam.BeforeFrame(cam)
	}
	gpu.Reset(r.dev)

	r.activate(fc, cam, false)
	r.clear(fc, cam)

	hooks.BeforeRenderScene(s, cam)
	gpu.Reset(r.dev)
	r.drawVisible(fc)
	hooks.AfterRenderScene(s, cam)

	if cam.AfterFrame != nil {
		cam.AfterFrame(cam)
	}
	hooks.AfterRenderFrame(s, cam)
	gpu.Reset(r.dev)
}

// contextFor returns a frame context for an offscreen render. Inside a
// frame of the same scene the collection is reused; otherwise s is
// collected now and the stats start over.
func (r *Renderer) contextFor(s *scene.Scene, opts scene.Options) (*frameContext, error) {
	if r.fc != nil && (s == nil || s == r.fc.scene) {
		return r.fc.withOptions(opts), nil
	}
	if s == nil {
		return nil, ErrNoScene
	}
	if r.fc == nil {
		r.stats = Stats{Frame: r.frame}
	}
	fc := r.newFrameContext(s, opts)
	r.collect(fc, true, nil)
	return fc, nil
}
