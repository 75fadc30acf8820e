package demo

import (
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/picking"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// highlight replaces the material color of the selected entity.
var highlight = [4]float32{1, 1, 1, 1}

// Pick returns the nearest selectable entity under the window pixel
// (px, py), measured from the top-left corner of canvas, or nil. The main
// camera matrices are those of the last rendered frame.
func (d *Demo) Pick(px, py int, canvas gpu.Rect) *Entity {
	rect := d.Main.ViewportRect(canvas)
	gy := canvas.H - py
	if px < rect.X || px >= rect.X+rect.W || gy < rect.Y || gy >= rect.Y+rect.H {
		return nil
	}
	lx := float32(px - rect.X)
	ly := float32(rect.Y + rect.H - gy)

	ray := picking.ScreenToRay(lx, ly, float32(rect.W), float32(rect.H), d.Main.ViewProjection().Inverse())

	var (
		best    *Entity
		closest float32
	)
	for _, e := range d.World.All() {
		inst := e.Instance
		if !e.Visible || inst.Mesh == nil || inst.Node == nil || !inst.Node.Selectable {
			continue
		}
		t, hit := ray.IntersectAABB(inst.WorldBounds())
		if !hit {
			continue
		}
		if best == nil || t < closest {
			best, closest = e, t
		}
	}
	return best
}

// Select highlights e and clears the previous selection. A nil entity
// only clears.
func (d *Demo) Select(e *Entity) {
	if prev := d.selected; prev != nil {
		delete(prev.Instance.Uniforms, "u_color")
	}
	d.selected = e
	if e == nil {
		return
	}
	if e.Instance.Uniforms == nil {
		e.Instance.Uniforms = shader.Uniforms{}
	}
	e.Instance.Uniforms["u_color"] = highlight
}

// Selected returns the highlighted entity, or nil.
func (d *Demo) Selected() *Entity {
	return d.selected
}
