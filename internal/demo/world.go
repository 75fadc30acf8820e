package demo

import (
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// Entity is one placed object of the demo world.
type Entity struct {
	ID       uint32
	Instance *scene.Instance
	Visible  bool

	// Position is the translation the spin is applied under.
	Position math.Vec3
	// Spin is the yaw rate in radians per second.
	Spin  float32
	angle float32
}

// NewEntity wraps inst, placed at pos.
func NewEntity(id uint32, inst *scene.Instance, pos math.Vec3) *Entity {
	e := &Entity{ID: id, Instance: inst, Visible: true, Position: pos}
	e.place()
	return e
}

func (e *Entity) place() {
	e.Instance.World = math.Translate(e.Position.X, e.Position.Y, e.Position.Z).Mul(math.RotateY(e.angle))
}

// Update advances the entity's animation by dt seconds.
func (e *Entity) Update(dt float64) {
	if e.Spin == 0 {
		return
	}
	e.angle += e.Spin * float32(dt)
	e.place()
}

// World is the demo scene graph. It collects visible entities in insertion
// order and serves the previous snapshot on refreshes.
type World struct {
	entities map[uint32]*Entity
	order    []uint32
	lights   []scene.Light
	cameras  []*camera.Camera

	last      []*Entity
	Collects  int
	Refreshes int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{entities: make(map[uint32]*Entity)}
}

// Add inserts or replaces an entity.
func (w *World) Add(e *Entity) {
	if _, ok := w.entities[e.ID]; !ok {
		w.order = append(w.order, e.ID)
	}
	w.entities[e.ID] = e
}

// Remove deletes an entity. Refreshes stop returning it immediately.
func (w *World) Remove(id uint32) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get returns an entity by ID, or nil.
func (w *World) Get(id uint32) *Entity {
	return w.entities[id]
}

// Count returns the number of entities.
func (w *World) Count() int {
	return len(w.entities)
}

// All returns every entity in insertion order.
func (w *World) All() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// AddLight adds a light.
func (w *World) AddLight(l scene.Light) {
	w.lights = append(w.lights, l)
}

// AddCamera adds a camera. The first camera is the main one.
func (w *World) AddCamera(c *camera.Camera) {
	w.cameras = append(w.cameras, c)
}

// Update advances every entity.
func (w *World) Update(dt float64) {
	for _, id := range w.order {
		w.entities[id].Update(dt)
	}
}

// CollectVisible implements scene.Source.
func (w *World) CollectVisible() scene.Collection {
	w.Collects++
	w.last = w.last[:0]
	for _, id := range w.order {
		if e := w.entities[id]; e.Visible {
			w.last = append(w.last, e)
		}
	}
	return w.collection(w.last)
}

// RefreshCollected implements scene.Source. Entities removed since the
// last collection are dropped; newly added ones wait for the next one.
func (w *World) RefreshCollected() scene.Collection {
	w.Refreshes++
	kept := w.last[:0]
	for _, e := range w.last {
		if w.entities[e.ID] == e {
			kept = append(kept, e)
		}
	}
	w.last = kept
	return w.collection(kept)
}

func (w *World) collection(entities []*Entity) scene.Collection {
	instances := make([]*scene.Instance, len(entities))
	for i, e := range entities {
		instances[i] = e.Instance
	}
	return scene.Collection{
		Instances: instances,
		Lights:    w.lights,
		Cameras:   w.cameras,
	}
}
