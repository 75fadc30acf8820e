package scene

import "github.com/Faultbox/midgard-render/pkg/math"

// PassKind is what a draw loop renders for.
type PassKind int

const (
	PassColor PassKind = iota
	PassShadow
	PassPicking
	PassReflection
)

// String returns the pass name.
func (p PassKind) String() string {
	switch p {
	case PassShadow:
		return "shadow"
	case PassPicking:
		return "picking"
	case PassReflection:
		return "reflection"
	default:
		return "color"
	}
}

// Options configure one render call. The renderer only changes Pass for
// the sub-passes it starts itself.
type Options struct {
	Pass PassKind

	FrustumCulling bool
	DistanceSort   bool
	PrioritySort   bool
	// PriorityDominates applies the priority sort to the whole sequence,
	// letting priority move blended instances ahead of opaque ones. When
	// false, priority orders instances within each bucket.
	PriorityDominates bool

	ForceWireframe  bool
	UpdateMaterials bool
	// FullViewport ignores camera viewport fractions.
	FullViewport   bool
	DisableLights  bool
	SkipBackground bool

	// Quality is exposed to shaders as QUALITY when > 0.
	Quality int
	// ShaderOverride replaces every material's base shader in color passes.
	ShaderOverride string
	// ClipPlane enables USE_CLIPPING_PLANE with u_clipPlane.
	ClipPlane *math.Vec4

	Brightness float32
	// ColorClip is passed as u_colorClip when > 0.
	ColorClip float32

	DebugBounds bool
}

// DefaultOptions returns color-pass options with culling and sorting on.
func DefaultOptions() Options {
	return Options{
		Pass:              PassColor,
		FrustumCulling:    true,
		DistanceSort:      true,
		PrioritySort:      true,
		PriorityDominates: true,
		UpdateMaterials:   true,
		Brightness:        1,
	}
}

// WithPass returns a copy of o for the given pass.
func (o Options) WithPass(p PassKind) Options {
	o.Pass = p
	return o
}
