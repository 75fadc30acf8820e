package scene

import (
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// Unbounded is the radius of lights that reach every instance.
const Unbounded float32 = -1

// MinIntensity is the intensity at or below which a light is ignored.
const MinIntensity float32 = 1e-3

// Light contributes one additive shading pass per affected instance.
type Light interface {
	Position() math.Vec3
	Intensity() float32
	// Radius is the influence radius, or Unbounded.
	Radius() float32
	Layers() uint32

	Macros(pass PassKind) shader.Macros
	Uniforms(pass PassKind) shader.Uniforms
	Samplers(pass PassKind) shader.Samplers

	// Prepare runs once per collection cycle after instances are merged,
	// e.g. to render a shadow map.
	Prepare(r TargetRenderer, opts Options) error
}

// TargetRenderer is the offscreen rendering a light may use while
// preparing. It draws the instances of the frame being rendered.
type TargetRenderer interface {
	NewTarget(desc gpu.TargetDesc) (gpu.Target, error)
	RenderToTexture(cam *camera.Camera, target gpu.Target, opts Options) error
	// Bounds returns the world bounds of the collected shadow casters.
	Bounds() (math.AABB, bool)
}

// Affects reports whether l reaches inst as seen by cam: shared layers,
// non-negligible intensity and overlapping influence radius.
func Affects(l Light, inst *Instance, cam *camera.Camera) bool {
	shared := l.Layers() & inst.Layers
	if cam != nil {
		shared &= cam.Layers
	}
	if shared == 0 {
		return false
	}
	if l.Intensity() <= MinIntensity {
		return false
	}
	r := l.Radius()
	if r < 0 {
		return true
	}
	return inst.BoundingSphere().Overlaps(l.Position(), r)
}
