package renderer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// freshCollect reports whether this frame runs a full collection. Switching
// scenes always does.
func (r *Renderer) freshCollect(s *scene.Scene) bool {
	if r.lastScene != s || r.sinceCollect+1 >= r.cfg.CollectEvery {
		r.lastScene = s
		r.sinceCollect = 0
		return true
	}
	r.sinceCollect++
	return false
}

// collect pulls the scene snapshot into fc: materials resolved and
// refreshed, instances sorted and their final shader state rebuilt, lights
// prepared. explicit cameras take precedence for distance computation.
func (r *Renderer) collect(fc *frameContext, fresh bool, explicit []*camera.Camera) {
	r.stats.Collections++
	if fc.scene.Source == nil {
		fc.instances, fc.lights, fc.cameras = nil, nil, nil
		return
	}

	var col scene.Collection
	if fresh {
		col = fc.scene.Source.CollectVisible()
	} else {
		col = fc.scene.Source.RefreshCollected()
	}

	fc.cameras = fc.cameras[:0]
	for _, c := range col.Cameras {
		if c != nil {
			fc.cameras = append(fc.cameras, c)
		}
	}
	eye := mainEye(explicit, fc.cameras)

	var (
		opaque, blended []*scene.Instance
		materials       []*material.Material
		seen            = make(map[*material.Material]struct{})
	)
	for _, inst := range col.Instances {
		if inst == nil {
			continue
		}
		if inst.Material == nil {
			inst.Material = material.Default()
		}
		if _, ok := seen[inst.Material]; !ok {
			seen[inst.Material] = struct{}{}
			materials = append(materials, inst.Material)
		}

		inst.Distance = inst.BoundingSphere().Center.Distance(eye)
		inst.InCamera = false
		inst.DrawMesh = inst.Mesh
		if fc.opts.ForceWireframe && inst.Mesh != nil {
			inst.DrawMesh = inst.Mesh.Wireframe()
		}

		if inst.Blended() {
			blended = append(blended, inst)
		} else {
			opaque = append(opaque, inst)
		}
	}

	fc.instances = sortInstances(opaque, blended, fc.opts)

	if fc.opts.UpdateMaterials {
		env := material.Env{
			Ambient:    fc.scene.Ambient,
			Brightness: fc.opts.Brightness,
			Time:       fc.scene.Time,
		}
		for _, m := range materials {
			m.Refresh(env)
		}
	}

	for _, inst := range fc.instances {
		mergeFinal(inst)
	}

	fc.lights = fc.lights[:0]
	for _, l := range col.Lights {
		if l != nil {
			fc.lights = append(fc.lights, l)
		}
	}

	r.log.Debug("collection cycle",
		zap.Bool("fresh", fresh),
		zap.Int("instances", len(fc.instances)),
		zap.Int("materials", len(materials)),
		zap.Int("lights", len(fc.lights)),
	)

	targets := frameTargets{r: r, fc: fc}
	for _, l := range fc.lights {
		if err := l.Prepare(targets, fc.opts); err != nil {
			r.stats.Errors++
			r.log.Error("light prepare failed", zap.Error(err))
		}
	}
}

func mainEye(explicit, collected []*camera.Camera) math.Vec3 {
	for _, list := range [][]*camera.Camera{explicit, collected} {
		for _, c := range list {
			if c != nil {
				return c.Eye
			}
		}
	}
	return math.Vec3{}
}

// sortInstances orders opaque nearest-first and blended farthest-first,
// opaque before blended, then applies the priority sort.
func sortInstances(opaque, blended []*scene.Instance, opts scene.Options) []*scene.Instance {
	if opts.DistanceSort {
		sort.SliceStable(opaque, func(i, j int) bool { return opaque[i].Distance < opaque[j].Distance })
		sort.SliceStable(blended, func(i, j int) bool { return blended[i].Distance > blended[j].Distance })
	}
	if opts.PrioritySort && !opts.PriorityDominates {
		byPriority(opaque)
		byPriority(blended)
	}

	out := make([]*scene.Instance, 0, len(opaque)+len(blended))
	out = append(out, opaque...)
	out = append(out, blended...)

	if opts.PrioritySort && opts.PriorityDominates {
		byPriority(out)
	}
	return out
}

func byPriority(list []*scene.Instance) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority > list[j].Priority })
}

// attributeMacros derives macros from the mesh streams present.
func attributeMacros(inst *scene.Instance) shader.Macros {
	m := shader.Macros{}
	if mesh := inst.DrawMesh; mesh != nil {
		if mesh.HasNormals() {
			m[shader.UseNormal] = ""
		}
		if mesh.HasUVs() {
			m[shader.UseTexCoord] = ""
		}
		if mesh.HasUV2s() {
			m[shader.UseTexCoord2] = ""
		}
		if mesh.HasColors() {
			m[shader.UseVertexColor] = ""
		}
		if mesh.HasTangents() {
			m[shader.UseTangent] = ""
		}
	}
	if inst.Has(scene.AlphaTest) {
		m[shader.AlphaTest] = ""
	}
	return m
}

// mergeFinal rebuilds the instance's final state from scratch:
// attributes, then node, material and instance layers.
func mergeFinal(inst *scene.Instance) {
	var nodeState scene.ShaderState
	if inst.Node != nil {
		nodeState = scene.ShaderState{Macros: inst.Node.Macros, Uniforms: inst.Node.Uniforms, Samplers: inst.Node.Samplers}
	}
	mat := inst.Material

	transforms := shader.Uniforms{
		"u_model":        inst.World,
		"u_normalMatrix": inst.NormalMatrix(),
	}

	inst.Final = scene.ShaderState{
		Macros:   shader.Merge(attributeMacros(inst), nodeState.Macros, mat.FinalMacros(), inst.Macros),
		Uniforms: shader.MergeUniforms(nodeState.Uniforms, mat.FinalUniforms(), inst.Uniforms, transforms),
		Samplers: shader.MergeSamplers(nodeState.Samplers, mat.FinalSamplers(), inst.Samplers),
	}
}
