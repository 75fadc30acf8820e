package scene

import (
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// Flags are per-instance render switches. The zero value is an opaque,
// depth-tested, back-face culled, lit 3D instance that casts no shadow.
type Flags uint32

const (
	CastShadow Flags = 1 << iota
	// CullCW treats clockwise triangles as front facing.
	CullCW
	NoCull
	NoDepthTest
	NoDepthWrite
	Blend
	IgnoreFrustum
	Render2D
	AlphaTest
	IgnoreViewProjection
	IgnoreClippingPlane
	IgnoreLights
)

// Instance is one drawable submission: mesh, transform, material and flags.
type Instance struct {
	Name     string
	Node     *Node
	Mesh     *gpu.Mesh
	Material *material.Material
	World    math.Mat4
	Flags    Flags
	Layers   uint32
	Priority int

	Macros   shader.Macros
	Uniforms shader.Uniforms
	Samplers shader.Samplers

	// PreRender runs before the instance is drawn; returning false skips it
	// for the current pass.
	PreRender  func(*Instance) bool
	PostRender func(*Instance)

	// Screen places a 2D overlay at an explicit NDC position instead of
	// projecting the instance origin.
	Screen *math.Vec2
	// Size is the overlay size in pixels.
	Size math.Vec2
	// Scale2D is an extra overlay scale; zero means 1.
	Scale2D math.Vec2

	// Written by the renderer every collection cycle.
	Distance float32
	InCamera bool
	DrawMesh *gpu.Mesh
	Final    ShaderState
}

// NewInstance returns an instance with identity transform on every layer.
func NewInstance(node *Node, mesh *gpu.Mesh, mat *material.Material) *Instance {
	name := ""
	if node != nil {
		name = node.Name
	}
	return &Instance{
		Name:     name,
		Node:     node,
		Mesh:     mesh,
		Material: mat,
		World:    math.Identity(),
		Flags:    CastShadow,
		Layers:   camera.AllLayers,
	}
}

// Has reports whether every bit of f is set.
func (i *Instance) Has(f Flags) bool {
	return i.Flags&f == f
}

// WorldBounds returns the mesh bounds in world space.
func (i *Instance) WorldBounds() math.AABB {
	if i.Mesh == nil {
		t := i.World.Translation()
		return math.AABB{Min: t, Max: t}
	}
	return i.Mesh.Bounds.Transform(i.World)
}

// BoundingSphere returns the world-space bounding sphere.
func (i *Instance) BoundingSphere() math.Sphere {
	b := i.WorldBounds()
	return math.Sphere{Center: b.Center(), Radius: b.Radius()}
}

// NormalMatrix returns the inverse transpose of the world matrix.
func (i *Instance) NormalMatrix() math.Mat4 {
	return i.World.NormalMatrix()
}

// Blended reports whether the instance sorts into the blended bucket.
func (i *Instance) Blended() bool {
	return i.Has(Blend)
}
