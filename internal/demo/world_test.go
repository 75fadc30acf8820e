package demo

import (
	"testing"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

func entity(id uint32, name string) *Entity {
	inst := scene.NewInstance(scene.NewNode(id, name), gpu.NewBox(1, 1, 1), material.New(name))
	return NewEntity(id, inst, math.Vec3{X: float32(id)})
}

func instanceNames(c scene.Collection) []string {
	out := make([]string, len(c.Instances))
	for i, inst := range c.Instances {
		out[i] = inst.Name
	}
	return out
}

func TestWorldCollectVisible(t *testing.T) {
	w := NewWorld()
	w.Add(entity(1, "a"))
	hidden := entity(2, "b")
	hidden.Visible = false
	w.Add(hidden)
	w.Add(entity(3, "c"))

	got := instanceNames(w.CollectVisible())
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("collected %v, want [a c]", got)
	}
	if w.Collects != 1 {
		t.Errorf("Collects = %d", w.Collects)
	}
}

func TestWorldRefreshCollected(t *testing.T) {
	w := NewWorld()
	w.Add(entity(1, "a"))
	w.Add(entity(2, "b"))
	w.CollectVisible()

	w.Remove(1)
	w.Add(entity(3, "c"))

	got := instanceNames(w.RefreshCollected())
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("refreshed %v, want [b]", got)
	}
	if w.Refreshes != 1 {
		t.Errorf("Refreshes = %d", w.Refreshes)
	}

	got = instanceNames(w.CollectVisible())
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("collected %v, want [b c]", got)
	}
}

func TestWorldReplaceKeepsOrder(t *testing.T) {
	w := NewWorld()
	w.Add(entity(1, "a"))
	w.Add(entity(2, "b"))
	w.Add(entity(1, "a2"))

	all := w.All()
	if w.Count() != 2 || all[0].Instance.Name != "a2" || all[1].Instance.Name != "b" {
		t.Errorf("entities = %d, first %q", w.Count(), all[0].Instance.Name)
	}
	w.Remove(42)
	if w.Count() != 2 {
		t.Error("removing an unknown id changed the world")
	}
}

func TestEntitySpin(t *testing.T) {
	e := entity(1, "a")
	e.Spin = 1

	e.Update(0.5)

	if got := e.Instance.World.Translation(); got != (math.Vec3{X: 1}) {
		t.Errorf("translation = %+v, want spin in place", got)
	}
	if e.Instance.World == math.Translate(1, 0, 0) {
		t.Error("spinning entity did not rotate")
	}
}
