package renderer

import (
	"strconv"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
)

// Quality is the macro carrying Options.Quality.
const Quality = "QUALITY"

// activate makes cam the active camera of fc. The viewport is the camera's
// fraction of the current full viewport unless skipViewport is set (the
// caller already set it) or FullViewport forces the whole area.
func (r *Renderer) activate(fc *frameContext, cam *camera.Camera, skipViewport bool) {
	rect := fc.full
	if !skipViewport && !fc.opts.FullViewport {
		rect = cam.ViewportRect(fc.full)
	}
	if !skipViewport {
		r.dev.Viewport(rect)
	}
	fc.viewport = rect

	cam.Update(rect.Aspect() * r.cfg.AspectMultiplier)
	fc.cam = cam

	state := fc.scene.ShaderState(cam, fc.opts)
	if fc.opts.Quality > 0 {
		state.Macros[Quality] = strconv.Itoa(fc.opts.Quality)
	}
	if fc.opts.ClipPlane != nil {
		state.Uniforms["u_clipPlane"] = [4]float32(*fc.opts.ClipPlane)
	}
	fc.sceneState = state

	r.debug.Reset(cam.Eye, cam.View(), cam.Projection())
	r.stats.Activations++
}

// clear clears the camera's viewport only, through a matching scissor.
func (r *Renderer) clear(fc *frameContext, cam *camera.Camera) {
	var mask gpu.ClearMask
	if cam.ClearColor && !fc.opts.SkipBackground {
		mask |= gpu.ClearColorBuffer
	}
	if cam.ClearDepth {
		mask |= gpu.ClearDepthBuffer
	}
	if mask == 0 {
		return
	}

	color := fc.scene.Background
	if cam.Background != nil {
		color = *cam.Background
	}

	r.dev.Enable(gpu.ScissorTest, true)
	r.dev.Scissor(fc.viewport)
	r.dev.ClearColor(color)
	r.dev.DepthMask(true)
	r.dev.Clear(mask)
	r.dev.Enable(gpu.ScissorTest, false)
}
