package renderer

import (
	"github.com/Faultbox/midgard-render/internal/config"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
)

// DefaultPickingPointSize is the point size forced during picking passes.
const DefaultPickingPointSize = 5

// Config holds renderer settings that outlive a single render call.
type Config struct {
	// CollectEvery runs a full collection every N frames and the cheap
	// refresh in between.
	CollectEvery int
	// AspectMultiplier scales every derived aspect ratio, for targets
	// whose pixels are not square.
	AspectMultiplier float32
	PickingPointSize float32
}

// DefaultConfig returns a config collecting every frame.
func DefaultConfig() Config {
	return Config{
		CollectEvery:     1,
		AspectMultiplier: 1,
		PickingPointSize: DefaultPickingPointSize,
	}
}

// NewConfig derives the renderer config from the pipeline section.
func NewConfig(p config.PipelineConfig) Config {
	return Config{
		CollectEvery:     p.CollectEvery,
		AspectMultiplier: p.AspectMultiplier,
		PickingPointSize: p.PickingPointSize,
	}
}

// NewOptions derives default color-pass options from the pipeline section.
func NewOptions(p config.PipelineConfig) scene.Options {
	opts := scene.DefaultOptions()
	opts.FrustumCulling = p.FrustumCulling
	opts.DistanceSort = p.DistanceSort
	opts.PrioritySort = p.PrioritySort
	opts.PriorityDominates = p.PriorityDominates
	opts.ForceWireframe = p.ForceWireframe
	opts.UpdateMaterials = p.UpdateMaterials
	opts.FullViewport = p.FullViewport
	opts.DebugBounds = p.DebugBounds
	return opts
}

// StoreOptions writes the option toggles back into the pipeline section,
// the inverse of NewOptions.
func StoreOptions(p *config.PipelineConfig, opts scene.Options) {
	p.FrustumCulling = opts.FrustumCulling
	p.DistanceSort = opts.DistanceSort
	p.PrioritySort = opts.PrioritySort
	p.PriorityDominates = opts.PriorityDominates
	p.ForceWireframe = opts.ForceWireframe
	p.UpdateMaterials = opts.UpdateMaterials
	p.FullViewport = opts.FullViewport
	p.DebugBounds = opts.DebugBounds
}
