package scene

import "github.com/Faultbox/midgard-render/internal/engine/camera"

// Collection is a snapshot of what the scene graph considers visible.
type Collection struct {
	Instances []*Instance
	Lights    []Light
	Cameras   []*camera.Camera
}

// Source is the scene-graph side of collection.
type Source interface {
	// CollectVisible walks the graph and returns a fresh snapshot.
	CollectVisible() Collection
	// RefreshCollected revalidates the previous snapshot cheaply.
	RefreshCollected() Collection
}

// StaticSource serves fixed slices. It counts calls so callers can check
// the collection cadence.
type StaticSource struct {
	Instances []*Instance
	Lights    []Light
	Cameras   []*camera.Camera

	Collects  int
	Refreshes int
}

// CollectVisible implements Source.
func (s *StaticSource) CollectVisible() Collection {
	s.Collects++
	return s.snapshot()
}

// RefreshCollected implements Source.
func (s *StaticSource) RefreshCollected() Collection {
	s.Refreshes++
	return s.snapshot()
}

func (s *StaticSource) snapshot() Collection {
	return Collection{
		Instances: s.Instances,
		Lights:    s.Lights,
		Cameras:   s.Cameras,
	}
}
