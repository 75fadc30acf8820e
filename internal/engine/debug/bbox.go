// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(b math.AABB) []float32 {
	minX, minY, minZ := b.Min.X, b.Min.Y, b.Min.Z
	maxX, maxY, maxZ := b.Max.X, b.Max.Y, b.Max.Z
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// Draw accumulates immediate-mode debug lines for one camera. The renderer
// resets it on every camera activation.
type Draw struct {
	Eye      math.Vec3
	View     math.Mat4
	Proj     math.Mat4
	ViewProj math.Mat4

	vertices []float32
	boxes    int
	mesh     *gpu.Mesh
}

// Reset clears queued geometry and installs the camera matrices.
func (d *Draw) Reset(eye math.Vec3, view, proj math.Mat4) {
	d.Eye = eye
	d.View = view
	d.Proj = proj
	d.ViewProj = proj.Mul(view)
	d.vertices = d.vertices[:0]
	d.boxes = 0
}

// AddBox queues a world-space box wireframe.
func (d *Draw) AddBox(b math.AABB) {
	d.vertices = append(d.vertices, GenerateBBoxWireframeVertices(b)...)
	d.boxes++
}

// Boxes returns the number of queued boxes.
func (d *Draw) Boxes() int {
	return d.boxes
}

// Empty reports whether nothing is queued.
func (d *Draw) Empty() bool {
	return len(d.vertices) == 0
}

// Mesh returns the queued lines as a line-list mesh, or nil when empty.
// The same mesh is rewritten on every call.
func (d *Draw) Mesh() *gpu.Mesh {
	if d.Empty() {
		return nil
	}
	if d.mesh == nil {
		d.mesh = &gpu.Mesh{Name: "debug-lines", Mode: gpu.Lines}
	}
	d.mesh.Positions = append(d.mesh.Positions[:0], d.vertices...)
	d.mesh.Version++
	d.mesh.ComputeBounds()
	return d.mesh
}
