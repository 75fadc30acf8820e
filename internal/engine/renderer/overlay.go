package renderer

import (
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// defaultOverlaySize is the overlay size in pixels when none is given.
var defaultOverlaySize = math.Vec2{X: 32, Y: 32}

// drawOverlay draws a screen-space quad at the instance's projected origin
// (or explicit NDC position) with the flat unlit shader, always blended.
func (r *Renderer) drawOverlay(fc *frameContext, inst *scene.Instance) bool {
	var ndc math.Vec2
	if inst.Screen != nil {
		ndc = *inst.Screen
	} else {
		t := inst.World.Translation()
		p := fc.cam.ViewProjection().MulVec4(math.Vec4{t.X, t.Y, t.Z, 1})
		if p[3] <= 0 {
			return false
		}
		ndc = math.Vec2{X: p[0] / p[3], Y: p[1] / p[3]}
	}

	size := inst.Size
	if size.IsZero() {
		size = defaultOverlaySize
	}
	scale := inst.Scale2D
	if scale.IsZero() {
		scale = math.Vec2{X: 1, Y: 1}
	}
	// Pixel size to NDC, which also compensates the viewport aspect.
	w := size.X * scale.X * 2 / float32(max(fc.viewport.W, 1))
	h := size.Y * scale.Y * 2 / float32(max(fc.viewport.H, 1))
	model := math.Translate(ndc.X, ndc.Y, 0).Mul(math.Scale(w, h, 1))

	state := instanceState(inst)
	state.Blend = true
	state.BlendSrc, state.BlendDst = material.BlendNormal.Factors()
	if inst.Material.Blend != material.BlendNone {
		state.BlendSrc, state.BlendDst = inst.Material.Blend.Factors()
	}
	state.DepthTest = false
	state.CullFace = false

	macros := shader.Merge(fc.sceneState.Macros, inst.Final.Macros,
		shader.Flags(shader.Overlay2D, shader.Unlit, shader.Textured, shader.IgnoreViewProjection))
	uniforms := shader.Uniforms{
		"u_model":          model,
		"u_viewProjection": math.Identity(),
	}
	if fc.opts.Pass == scene.PassPicking {
		macros = macros.With(shader.Picking, "")
		color := r.picking.ColorFor(inst.Node.ID)
		uniforms["u_color"] = [4]float32(color)
		uniforms["u_pickingColor"] = [4]float32(color)
		state.Blend = false
	}

	mesh := inst.DrawMesh
	if mesh == nil {
		mesh = r.quad
	}
	_, ok := r.issue(fc, inst, drawCall{
		shader:   shader.Flat,
		macros:   macros,
		state:    state,
		mesh:     mesh,
		uniforms: uniforms,
	})
	return ok
}
