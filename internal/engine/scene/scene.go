// Package scene defines the data the render pipeline consumes: nodes,
// instances, lights, the scene-graph source and lifecycle observers.
package scene

import (
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// Scene-level macros.
const (
	UseEnvironmentMap = "USE_ENVIRONMENT_MAP"
	UseIrradianceMap  = "USE_IRRADIANCE_MAP"
)

// Scene is the global state shared by every instance of a frame.
type Scene struct {
	Name       string
	Ambient    gpu.Color
	Background gpu.Color

	// Environment and Irradiance are sampler sources (texture, name or
	// texture source), or nil.
	Environment any
	Irradiance  any

	// Time in seconds, exposed as u_time.
	Time float32
	// Frame counts rendered frames.
	Frame uint64
	// NeedsRedraw is set by callers when content changed; Render clears it.
	NeedsRedraw bool

	Observer Observer
	Source   Source
}

// New returns a scene over src with a dim ambient term.
func New(name string, src Source) *Scene {
	return &Scene{
		Name:        name,
		Ambient:     gpu.Color{0.2, 0.2, 0.2, 1},
		Background:  gpu.Color{0, 0, 0, 1},
		NeedsRedraw: true,
		Source:      src,
	}
}

// Hooks returns the observer, or a no-op one.
func (s *Scene) Hooks() Observer {
	if s.Observer == nil {
		return NopObserver{}
	}
	return s.Observer
}

// ShaderState returns the scene layer merged under every instance for cam.
func (s *Scene) ShaderState(cam *camera.Camera, opts Options) ShaderState {
	macros := shader.Macros{}
	var samplers shader.Samplers
	if s.Environment != nil {
		macros[UseEnvironmentMap] = ""
		samplers = append(samplers, shader.Sampler{Name: "u_environmentMap", Source: s.Environment})
	}
	if s.Irradiance != nil {
		macros[UseIrradianceMap] = ""
		samplers = append(samplers, shader.Sampler{Name: "u_irradianceMap", Source: s.Irradiance})
	}

	uniforms := shader.Uniforms{
		"u_ambient":    [3]float32{s.Ambient[0], s.Ambient[1], s.Ambient[2]},
		"u_background": [4]float32(s.Background),
		"u_time":       s.Time,
		"u_brightness": opts.Brightness,
	}
	if opts.ColorClip > 0 {
		uniforms["u_colorClip"] = opts.ColorClip
	}
	if cam != nil {
		uniforms["u_cameraPosition"] = cam.Eye.Array()
		uniforms["u_near"] = cam.Near
		uniforms["u_far"] = cam.Far
		uniforms["u_view"] = cam.View()
		uniforms["u_projection"] = cam.Projection()
		uniforms["u_viewProjection"] = cam.ViewProjection()
	}

	return ShaderState{Macros: macros, Uniforms: uniforms, Samplers: samplers}
}
