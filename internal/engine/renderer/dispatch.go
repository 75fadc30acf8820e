package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// drawVisible runs the cull phase over the collected instances, then draws
// the survivors in collection order for the active pass.
func (r *Renderer) drawVisible(fc *frameContext) {
	visible := r.cull(fc)

	for _, inst := range visible {
		var drawn bool
		switch {
		case inst.Has(scene.Render2D):
			drawn = r.drawOverlay(fc, inst)
		case fc.opts.Pass == scene.PassShadow:
			drawn = r.drawShadow(fc, inst)
		case fc.opts.Pass == scene.PassPicking:
			drawn = r.drawPicking(fc, inst)
		default:
			drawn = r.drawColor(fc, inst)
		}
		if drawn {
			r.stats.Instances++
			if fc.opts.DebugBounds && fc.opts.Pass == scene.PassColor && !inst.Has(scene.Render2D) {
				r.debug.AddBox(inst.WorldBounds())
			}
		}
		if inst.PostRender != nil {
			inst.PostRender(inst)
		}
	}

	for _, inst := range visible {
		inst.InCamera = false
	}

	if fc.opts.DebugBounds && fc.opts.Pass == scene.PassColor {
		r.flushDebug(fc)
	}
	gpu.Reset(r.dev)
}

// cull returns the instances that pass every visibility test for the
// active camera and pass, marking them in-camera.
func (r *Renderer) cull(fc *frameContext) []*scene.Instance {
	visible := make([]*scene.Instance, 0, len(fc.instances))
	for _, inst := range fc.instances {
		inst.InCamera = false
		if r.passVisible(fc, inst) {
			inst.InCamera = true
			visible = append(visible, inst)
		}
	}
	return visible
}

func (r *Renderer) passVisible(fc *frameContext, inst *scene.Instance) bool {
	node := inst.Node
	switch fc.opts.Pass {
	case scene.PassReflection:
		if node != nil && !node.SeenByReflections {
			return false
		}
	case scene.PassShadow:
		if inst.Has(scene.Render2D) || !inst.Has(scene.CastShadow) || (node != nil && !node.CastShadows) {
			return false
		}
	case scene.PassPicking:
		if node == nil || !node.SeenByPicking || !node.Selectable {
			return false
		}
	default:
		if node != nil && !node.SeenByCamera {
			return false
		}
	}

	if !fc.cam.SeesLayers(inst.Layers) {
		return false
	}
	if inst.PreRender != nil && !inst.PreRender(inst) {
		return false
	}
	if inst.Material.Transparent() {
		return false
	}
	if fc.opts.FrustumCulling && !inst.Has(scene.IgnoreFrustum) && !inst.Has(scene.Render2D) {
		if !fc.cam.Frustum().IntersectsAABB(inst.WorldBounds()) {
			return false
		}
	}
	return true
}

// drawCall is one resolved submission.
type drawCall struct {
	shader   string
	macros   shader.Macros
	state    gpu.State
	mesh     *gpu.Mesh
	uniforms shader.Uniforms // highest precedence layer
	samplers shader.Samplers
}

// issue resolves the variant, binds state, samplers and uniforms and draws.
// Failures are logged against the instance and skip only this draw.
func (r *Renderer) issue(fc *frameContext, inst *scene.Instance, dc drawCall) (gpu.Program, bool) {
	if dc.mesh == nil {
		return nil, false
	}
	prog, err := r.shaders.Resolve(dc.shader, dc.macros)
	if err != nil {
		r.stats.Errors++
		r.log.Error("shader variant unavailable",
			zap.String("instance", inst.Name),
			zap.String("material", inst.Material.Name),
			zap.Error(err),
		)
		return nil, false
	}

	samplers, err := r.withoutTarget(fc, shader.MergeSamplers(fc.sceneState.Samplers, inst.Final.Samplers, dc.samplers))
	var samplerUniforms shader.Uniforms
	if err == nil {
		samplerUniforms, err = r.samplers.Bind(samplers)
	}
	if err != nil {
		r.stats.Errors++
		r.log.Error("invalid sampler configuration, draw skipped",
			zap.String("instance", inst.Name),
			zap.String("material", inst.Material.Name),
			zap.Error(err),
		)
		return nil, false
	}

	gpu.Apply(r.dev, dc.state)
	r.dev.UseProgram(prog)
	uniforms := shader.MergeUniforms(samplerUniforms, fc.sceneState.Uniforms, inst.Final.Uniforms, dc.uniforms)
	for name, v := range uniforms {
		prog.SetUniform(name, v)
	}
	r.dev.Draw(dc.mesh)
	r.stats.DrawCalls++
	return prog, true
}

// withoutTarget replaces samplers that read the bound target with the
// fallback texture. A pass never samples what it writes.
func (r *Renderer) withoutTarget(fc *frameContext, samplers shader.Samplers) (shader.Samplers, error) {
	if fc.target == nil {
		return samplers, nil
	}
	written := fc.target.Texture()
	for i, s := range samplers {
		if !readsTexture(s.Source, written) {
			continue
		}
		fallback, err := r.textures.Fallback()
		if err != nil {
			return nil, err
		}
		r.log.Debug("sampler reads the bound target, using fallback",
			zap.String("sampler", s.Name),
			zap.String("target", fc.target.Desc().Name),
		)
		samplers[i].Source = fallback
	}
	return samplers, nil
}

func readsTexture(src any, tex gpu.Texture) bool {
	if tex == nil {
		return false
	}
	switch s := src.(type) {
	case gpu.Texture:
		return s == tex
	case shader.TextureSource:
		return s.Texture() == tex
	}
	return false
}

// instanceState maps the instance flags and material onto GPU state.
func instanceState(inst *scene.Instance) gpu.State {
	s := gpu.Baseline()
	s.CullFace = !inst.Has(scene.NoCull)
	if inst.Has(scene.CullCW) {
		s.FrontFace = gpu.CW
	}
	s.DepthTest = !inst.Has(scene.NoDepthTest)
	s.DepthWrite = !inst.Has(scene.NoDepthWrite)
	if inst.Blended() && inst.Material.Blend != material.BlendNone {
		s.Blend = true
		s.BlendSrc, s.BlendDst = inst.Material.Blend.Factors()
	}
	if inst.Material.DepthFunc != nil {
		s.DepthFunc = *inst.Material.DepthFunc
	}
	return s
}

// passMacros are the per-draw switches layered over the instance's own.
func passMacros(fc *frameContext, inst *scene.Instance) shader.Macros {
	m := shader.Macros{}
	if fc.opts.ClipPlane != nil && !inst.Has(scene.IgnoreClippingPlane) {
		m[shader.UseClippingPlane] = ""
	}
	if inst.Has(scene.IgnoreLights) {
		m[shader.IgnoreLights] = ""
	}
	if inst.Has(scene.IgnoreViewProjection) {
		m[shader.IgnoreViewProjection] = ""
	}
	return m
}

func (r *Renderer) flushDebug(fc *frameContext) {
	mesh := r.debug.Mesh()
	if mesh == nil {
		return
	}
	prog, err := r.shaders.Resolve(shader.Debug, shader.Flags(shader.Unlit))
	if err != nil {
		r.log.Error("debug shader unavailable", zap.Error(err))
		return
	}
	s := gpu.Baseline()
	s.CullFace = false
	gpu.Apply(r.dev, s)
	r.dev.UseProgram(prog)
	prog.SetUniform("u_viewProjection", r.debug.ViewProj)
	prog.SetUniform("u_color", [4]float32{0, 1, 0, 1})
	r.dev.Draw(mesh)
	r.stats.DrawCalls++
}
