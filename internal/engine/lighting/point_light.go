// Package lighting provides the point and directional lights the pipeline
// shades with.
package lighting

import (
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// LightType is the macro selecting the light model in shaders.
const LightType = "LIGHT_TYPE"

// PointLight is an omni light with a finite range.
type PointLight struct {
	Origin    math.Vec3
	Color     [3]float32 // RGB, 0-1
	Range     float32
	Strength  float32
	LayerMask uint32
}

// NewPointLight creates a white point light on every layer.
func NewPointLight(pos math.Vec3, lightRange float32) *PointLight {
	if lightRange <= 0 {
		lightRange = 100.0
	}
	return &PointLight{
		Origin:    pos,
		Color:     [3]float32{1, 1, 1},
		Range:     lightRange,
		Strength:  1,
		LayerMask: camera.AllLayers,
	}
}

// Position implements scene.Light.
func (l *PointLight) Position() math.Vec3 { return l.Origin }

// Intensity implements scene.Light.
func (l *PointLight) Intensity() float32 { return l.Strength }

// Radius implements scene.Light.
func (l *PointLight) Radius() float32 { return l.Range }

// Layers implements scene.Light.
func (l *PointLight) Layers() uint32 { return l.LayerMask }

// Macros implements scene.Light.
func (l *PointLight) Macros(scene.PassKind) shader.Macros {
	return shader.Macros{LightType: "POINT"}
}

// Uniforms implements scene.Light.
func (l *PointLight) Uniforms(scene.PassKind) shader.Uniforms {
	return shader.Uniforms{
		"u_lightPosition": l.Origin.Array(),
		"u_lightColor":    scaled(l.Color, l.Strength),
		"u_lightRange":    l.Range,
	}
}

// Samplers implements scene.Light.
func (l *PointLight) Samplers(scene.PassKind) shader.Samplers { return nil }

// Prepare implements scene.Light.
func (l *PointLight) Prepare(scene.TargetRenderer, scene.Options) error { return nil }

func scaled(c [3]float32, s float32) [3]float32 {
	// Clamp to 0-1 before scaling
	for i := range c {
		c[i] = min(max(c[i], 0), 1)
	}
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}
