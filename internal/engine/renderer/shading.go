package renderer

import (
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// lightsFor returns the lights reaching inst, in collection order.
func (r *Renderer) lightsFor(fc *frameContext, inst *scene.Instance) []scene.Light {
	var out []scene.Light
	for _, l := range fc.lights {
		if scene.Affects(l, inst, fc.cam) {
			out = append(out, l)
		}
	}
	return out
}

func colorShader(fc *frameContext, inst *scene.Instance) string {
	if fc.opts.ShaderOverride != "" {
		return fc.opts.ShaderOverride
	}
	return inst.Material.ShaderName()
}

// drawColor shades inst once per relevant light. The first pass writes
// depth; later passes add onto it with additive blending and LessEqual.
// A variant without multipass support stops after the first light.
func (r *Renderer) drawColor(fc *frameContext, inst *scene.Instance) bool {
	base := instanceState(inst)
	name := colorShader(fc, inst)
	extra := passMacros(fc, inst)

	var lights []scene.Light
	if !fc.opts.DisableLights && !inst.Has(scene.IgnoreLights) {
		lights = r.lightsFor(fc, inst)
	}

	if len(lights) == 0 {
		_, ok := r.issue(fc, inst, drawCall{
			shader: name,
			macros: shader.Merge(fc.sceneState.Macros, inst.Final.Macros, extra, shader.Flags(shader.AmbientOnly, shader.FirstPass)),
			state:  base,
			mesh:   inst.DrawMesh,
		})
		return ok
	}

	drawn := false
	for i, l := range lights {
		pass := shader.Macros{}
		if i == 0 {
			pass[shader.FirstPass] = ""
		}
		if i == len(lights)-1 {
			pass[shader.LastPass] = ""
		}

		state := base
		if i > 0 {
			state.Blend = true
			state.BlendSrc, state.BlendDst = gpu.SrcAlpha, gpu.One
			state.DepthFunc = gpu.LessEqual
			state.DepthWrite = false
			if inst.Material.DepthFunc != nil {
				state.DepthFunc = *inst.Material.DepthFunc
			}
		}

		prog, ok := r.issue(fc, inst, drawCall{
			shader:   name,
			macros:   shader.Merge(fc.sceneState.Macros, inst.Final.Macros, extra, l.Macros(fc.opts.Pass), pass),
			state:    state,
			mesh:     inst.DrawMesh,
			uniforms: l.Uniforms(fc.opts.Pass),
			samplers: l.Samplers(fc.opts.Pass),
		})
		if !ok {
			return drawn
		}
		drawn = true
		if !prog.Multipass() {
			break
		}
	}
	return drawn
}

// drawShadow renders depth only. Cubemap targets get linear distance.
func (r *Renderer) drawShadow(fc *frameContext, inst *scene.Instance) bool {
	macros := shader.Merge(fc.sceneState.Macros, inst.Final.Macros, passMacros(fc, inst))
	if inst.Node != nil && inst.Node.AlphaTestShadows {
		macros = macros.With(shader.AlphaTest, "")
	}
	if fc.target != nil && fc.target.Desc().IsCube() {
		macros = macros.With(shader.LinearDepth, "")
	}

	state := instanceState(inst)
	state.Blend = false

	_, ok := r.issue(fc, inst, drawCall{
		shader: shader.Depth,
		macros: macros,
		state:  state,
		mesh:   inst.DrawMesh,
	})
	return ok
}

// drawPicking renders the node's picking color with the flat shader.
func (r *Renderer) drawPicking(fc *frameContext, inst *scene.Instance) bool {
	color := r.picking.ColorFor(inst.Node.ID)

	state := instanceState(inst)
	state.Blend = false

	r.dev.PointSize(r.cfg.PickingPointSize)
	defer r.dev.PointSize(1)

	_, ok := r.issue(fc, inst, drawCall{
		shader: shader.Flat,
		macros: shader.Merge(fc.sceneState.Macros, inst.Final.Macros, passMacros(fc, inst), shader.Flags(shader.Picking, shader.Unlit)),
		state:  state,
		mesh:   inst.DrawMesh,
		uniforms: shader.Uniforms{
			"u_color":        [4]float32(color),
			"u_pickingColor": [4]float32(color),
		},
	})
	return ok
}
