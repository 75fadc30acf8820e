// Package shadow computes light-space framing for shadow maps.
package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/pkg/math"
)

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// Frame is an orthographic light camera enclosing a region.
type Frame struct {
	Eye      math.Vec3
	Center   math.Vec3
	Up       math.Vec3
	HalfSize float32
	Near     float32
	Far      float32
}

// DirectionalLightFrame frames sceneBounds for a directional light.
// lightDir is the normalized direction TO the light (sun direction).
func DirectionalLightFrame(lightDir math.Vec3, sceneBounds math.AABB) Frame {
	center := sceneBounds.Center()
	radius := sceneBounds.Radius()
	if radius <= 0 {
		radius = 1
	}

	// Position light far enough to encompass entire scene
	lightDistance := radius * 2.0
	lightPos := center.Add(lightDir.Scale(lightDistance))

	// Avoid an up vector parallel with the light direction
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if math32.Abs(lightDir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	// Padding avoids edge artifacts
	padding := radius * 0.1
	return Frame{
		Eye:      lightPos,
		Center:   center,
		Up:       up,
		HalfSize: radius + padding,
		Near:     0.1,
		Far:      lightDistance + radius + padding,
	}
}

// View returns the light view matrix.
func (f Frame) View() math.Mat4 {
	return math.LookAt(f.Eye, f.Center, f.Up)
}

// Projection returns the orthographic light projection.
func (f Frame) Projection() math.Mat4 {
	h := f.HalfSize
	return math.Ortho(-h, h, -h, h, f.Near, f.Far)
}

// Matrix returns projection * view.
func (f Frame) Matrix() math.Mat4 {
	return f.Projection().Mul(f.View())
}

// BiasMatrix maps clip space [-1, 1] to texture space [0, 1].
func BiasMatrix() math.Mat4 {
	return math.Mat4{
		0.5, 0, 0, 0,
		0, 0.5, 0, 0,
		0, 0, 0.5, 0,
		0.5, 0.5, 0.5, 1,
	}
}
