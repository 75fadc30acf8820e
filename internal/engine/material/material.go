// Package material describes surface appearance as shader macro, uniform
// and sampler contributions.
package material

import (
	"sync"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// BlendMode selects how a material composites over the framebuffer.
type BlendMode int

const (
	// BlendNormal is straight alpha blending.
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendMultiply
	// BlendNone writes color unblended even when the instance is in the
	// blended bucket.
	BlendNone
)

// String returns the macro suffix for the mode.
func (m BlendMode) String() string {
	switch m {
	case BlendAdditive:
		return "ADDITIVE"
	case BlendMultiply:
		return "MULTIPLY"
	case BlendNone:
		return "NONE"
	default:
		return "NORMAL"
	}
}

// Factors returns the source and destination blend factors for the mode.
func (m BlendMode) Factors() (gpu.BlendFactor, gpu.BlendFactor) {
	switch m {
	case BlendAdditive:
		return gpu.SrcAlpha, gpu.One
	case BlendMultiply:
		return gpu.DstColor, gpu.Zero
	default:
		return gpu.SrcAlpha, gpu.OneMinusSrcAlpha
	}
}

// Material macros.
const (
	UseColorMap = "USE_COLOR_MAP"
	BlendMacro  = "BLEND_MODE"
)

// ColorMapSampler is the sampler name of the base color texture.
const ColorMapSampler = "u_colorMap"

// Env is the scene state materials derive uniforms from.
type Env struct {
	Ambient    gpu.Color
	Brightness float32
	Time       float32
}

// Material is a surface description shared by any number of instances.
// Identity is the pointer.
type Material struct {
	Name string
	// Shader is the base shader name. Empty selects shader.Standard.
	Shader  string
	Color   gpu.Color
	Opacity float32
	Blend   BlendMode
	// DepthFunc overrides the depth comparison of every light pass.
	DepthFunc *gpu.Compare
	Unlit     bool
	// ColorMap is a texture, registry name or texture source.
	ColorMap any

	Macros   shader.Macros
	Uniforms shader.Uniforms
	Samplers shader.Samplers

	derivedMacros   shader.Macros
	derivedUniforms shader.Uniforms
	refreshed       bool
}

// New creates an opaque white material using the standard shader.
func New(name string) *Material {
	return &Material{
		Name:    name,
		Shader:  shader.Standard,
		Color:   gpu.Color{1, 1, 1, 1},
		Opacity: 1,
	}
}

var (
	defaultOnce sync.Once
	defaultMat  *Material
)

// Default returns the process-wide material assigned to instances that have
// none. It is created once.
func Default() *Material {
	defaultOnce.Do(func() {
		defaultMat = New("default")
		defaultMat.Color = gpu.Color{0.8, 0.8, 0.8, 1}
	})
	return defaultMat
}

// ShaderName returns the base shader, defaulting to shader.Standard.
func (m *Material) ShaderName() string {
	if m.Shader == "" {
		return shader.Standard
	}
	return m.Shader
}

// Transparent reports whether the material is fully transparent.
func (m *Material) Transparent() bool {
	return m.Opacity <= 0
}

// Refresh recomputes the derived macros and uniforms from env. The result
// replaces the previous derivation entirely.
func (m *Material) Refresh(env Env) {
	macros := shader.Macros{BlendMacro: m.Blend.String()}
	if m.ColorMap != nil {
		macros[UseColorMap] = ""
	}
	if m.Unlit {
		macros[shader.Unlit] = ""
	}

	brightness := env.Brightness
	if brightness == 0 {
		brightness = 1
	}
	color := m.Color
	for i := 0; i < 3; i++ {
		color[i] *= brightness
	}
	ambient := env.Ambient
	for i := 0; i < 3; i++ {
		ambient[i] *= brightness
	}

	m.derivedMacros = macros
	m.derivedUniforms = shader.Uniforms{
		"u_color":   [4]float32(color),
		"u_opacity": m.Opacity,
		"u_ambient": [3]float32{ambient[0], ambient[1], ambient[2]},
		"u_time":    env.Time,
	}
	m.refreshed = true
}

// FinalMacros returns the derived macros layered under the material's own.
func (m *Material) FinalMacros() shader.Macros {
	m.ensure()
	return shader.Merge(m.derivedMacros, m.Macros)
}

// FinalUniforms returns the derived uniforms layered under the material's own.
func (m *Material) FinalUniforms() shader.Uniforms {
	m.ensure()
	return shader.MergeUniforms(m.derivedUniforms, m.Uniforms)
}

// FinalSamplers returns the color map sampler followed by the material's own.
func (m *Material) FinalSamplers() shader.Samplers {
	if m.ColorMap == nil {
		return m.Samplers
	}
	return shader.MergeSamplers(shader.Samplers{{Name: ColorMapSampler, Source: m.ColorMap}}, m.Samplers)
}

func (m *Material) ensure() {
	if !m.refreshed {
		m.Refresh(Env{Brightness: 1})
	}
}
