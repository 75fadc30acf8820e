// Package camera provides the render camera and an orbit controller.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// AllLayers is a layer mask that matches everything.
const AllLayers uint32 = 0xFFFFFFFF

// Camera holds view and projection parameters. View, projection and
// view-projection are recomputed by Update and cached until the next call.
type Camera struct {
	Name string

	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	// FOV is the vertical field of view in radians.
	FOV float32
	// Aspect overrides the aspect ratio derived from the viewport when > 0.
	Aspect    float32
	Near, Far float32

	Ortho     bool
	OrthoSize float32 // half height of the ortho volume

	// Viewport is the normalized rectangle [x, y, w, h] within the target.
	Viewport [4]float32

	ClearColor bool
	ClearDepth bool
	// Background overrides the scene background when clearing.
	Background *gpu.Color

	Layers uint32

	// BeforeFrame and AfterFrame run around every frame rendered with
	// this camera.
	BeforeFrame func(*Camera)
	AfterFrame  func(*Camera)

	aspect   float32
	view     math.Mat4
	proj     math.Mat4
	viewProj math.Mat4
	frustum  math.Frustum
}

// New returns a perspective camera covering the full viewport.
func New(name string) *Camera {
	return &Camera{
		Name:       name,
		Eye:        math.Vec3{X: 0, Y: 0, Z: 5},
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
		FOV:        math32.Pi / 3,
		Near:       0.1,
		Far:        1000,
		Viewport:   [4]float32{0, 0, 1, 1},
		ClearColor: true,
		ClearDepth: true,
		Layers:     AllLayers,
	}
}

// ViewportRect maps the normalized viewport onto full.
func (c *Camera) ViewportRect(full gpu.Rect) gpu.Rect {
	v := c.Viewport
	if v[2] == 0 && v[3] == 0 {
		v = [4]float32{0, 0, 1, 1}
	}
	fw, fh := float32(full.W), float32(full.H)
	return gpu.Rect{
		X: full.X + int(math32.Round(v[0]*fw)),
		Y: full.Y + int(math32.Round(v[1]*fh)),
		W: int(math32.Round(v[2] * fw)),
		H: int(math32.Round(v[3] * fh)),
	}
}

// EffectiveAspect returns the override if set, else aspect.
func (c *Camera) EffectiveAspect(aspect float32) float32 {
	if c.Aspect > 0 {
		return c.Aspect
	}
	if aspect <= 0 {
		return 1
	}
	return aspect
}

// Update recomputes the cached matrices for the given viewport aspect.
func (c *Camera) Update(aspect float32) {
	c.aspect = c.EffectiveAspect(aspect)
	c.view = math.LookAt(c.Eye, c.Target, c.up())
	if c.Ortho {
		h := c.OrthoSize
		if h <= 0 {
			h = 1
		}
		w := h * c.aspect
		c.proj = math.Ortho(-w, w, -h, h, c.Near, c.Far)
	} else {
		c.proj = math.Perspective(c.FOV, c.aspect, c.Near, c.Far)
	}
	c.viewProj = c.proj.Mul(c.view)
	c.frustum = math.FrustumFromMatrix(c.viewProj)
}

func (c *Camera) up() math.Vec3 {
	if c.Up.Length() == 0 {
		return math.Vec3{X: 0, Y: 1, Z: 0}
	}
	return c.Up
}

// View returns the cached view matrix.
func (c *Camera) View() math.Mat4 { return c.view }

// Projection returns the cached projection matrix.
func (c *Camera) Projection() math.Mat4 { return c.proj }

// ViewProjection returns the cached projection * view matrix.
func (c *Camera) ViewProjection() math.Mat4 { return c.viewProj }

// Frustum returns the cached view frustum.
func (c *Camera) Frustum() *math.Frustum { return &c.frustum }

// AspectRatio returns the aspect ratio used by the last Update.
func (c *Camera) AspectRatio() float32 { return c.aspect }

// SeesLayers reports whether the camera shares a layer bit with mask.
func (c *Camera) SeesLayers(mask uint32) bool {
	return c.Layers&mask != 0
}

// Clone returns a shallow copy with its own cached matrices.
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}
