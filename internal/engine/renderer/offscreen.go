package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// cubeFace is the view of one cubemap face, in GL face order
// (+X, -X, +Y, -Y, +Z, -Z).
type cubeFace struct {
	dir math.Vec3
	up  math.Vec3
}

var cubeFaces = [6]cubeFace{
	{math.Vec3{X: 1}, math.Vec3{Y: -1}},
	{math.Vec3{X: -1}, math.Vec3{Y: -1}},
	{math.Vec3{Y: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Y: -1}, math.Vec3{Z: -1}},
	{math.Vec3{Z: 1}, math.Vec3{Y: -1}},
	{math.Vec3{Z: -1}, math.Vec3{Y: -1}},
}

// RenderToTexture renders s through cam into target. A nil scene renders
// the frame in progress; a nil camera logs a warning and draws nothing.
func (r *Renderer) RenderToTexture(s *scene.Scene, cam *camera.Camera, target gpu.Target, opts scene.Options) error {
	if target == nil {
		return ErrNoTarget
	}
	if cam == nil {
		r.log.Warn("no camera to render with", zap.String("target", target.Desc().Name))
		return nil
	}
	fc, err := r.contextFor(s, opts)
	if err != nil {
		return err
	}
	return r.renderToTexture(fc, cam, target)
}

func (r *Renderer) renderToTexture(fc *frameContext, cam *camera.Camera, target gpu.Target) error {
	if target == nil {
		return ErrNoTarget
	}
	if cam == nil {
		r.log.Warn("no camera to render with", zap.String("target", target.Desc().Name))
		return nil
	}
	r.pushTarget(fc, target, 0)
	gpu.Reset(r.dev)

	r.activate(fc, cam, false)
	r.clear(fc, cam)
	r.drawVisible(fc)

	return r.popTarget(fc)
}

// RenderToCubemap renders s from position into the six faces of target
// with a 90 degree, unit-aspect camera per face. A nil target allocates a
// size x size cubemap, which is returned.
func (r *Renderer) RenderToCubemap(s *scene.Scene, position math.Vec3, size int, target gpu.Target, opts scene.Options, near, far float32) (gpu.Target, error) {
	if target == nil {
		t, err := r.dev.NewTarget(gpu.TargetDesc{
			Name:   "cubemap",
			Kind:   gpu.TextureCube,
			Depth:  opts.Pass == scene.PassShadow,
			Width:  size,
			Height: size,
		})
		if err != nil {
			return nil, fmt.Errorf("creating cubemap: %w", err)
		}
		target = t
	}
	if !target.Desc().IsCube() {
		return nil, fmt.Errorf("%w: %s", ErrNotCubemap, target.Desc().Name)
	}

	fc, err := r.contextFor(s, opts)
	if err != nil {
		return nil, err
	}

	cam := camera.New("cubemap")
	cam.Eye = position
	cam.FOV = math32.Pi / 2
	cam.Aspect = 1
	cam.Near, cam.Far = near, far

	for face, f := range cubeFaces {
		r.pushTarget(fc, target, face)
		gpu.Reset(r.dev)

		cam.Target = position.Add(f.dir)
		cam.Up = f.up
		r.activate(fc, cam, true)
		r.clear(fc, cam)
		r.drawVisible(fc)

		if err := r.popTarget(fc); err != nil {
			return nil, err
		}
	}
	gpu.Reset(r.dev)
	return target, nil
}
