package gpu

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/pkg/math"
)

// Primitive is the topology a mesh is drawn with.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Mesh is vertex and index data in model space. Positions are required;
// every other stream is optional and selects shader macros when present.
type Mesh struct {
	Name      string
	Positions []float32 // xyz
	Normals   []float32 // xyz
	UVs       []float32 // uv
	UV2s      []float32 // uv
	Colors    []float32 // rgba
	Tangents  []float32 // xyzw
	Indices   []uint32
	Mode      Primitive
	Bounds    math.AABB
	// Version must be bumped whenever the streams are rewritten in place.
	Version uint64

	wireframe   *Mesh
	wireVersion uint64
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// HasNormals reports whether the mesh has a normal stream.
func (m *Mesh) HasNormals() bool { return len(m.Normals) > 0 }

// HasUVs reports whether the mesh has a primary texture coordinate stream.
func (m *Mesh) HasUVs() bool { return len(m.UVs) > 0 }

// HasUV2s reports whether the mesh has a secondary texture coordinate stream.
func (m *Mesh) HasUV2s() bool { return len(m.UV2s) > 0 }

// HasColors reports whether the mesh has vertex colors.
func (m *Mesh) HasColors() bool { return len(m.Colors) > 0 }

// HasTangents reports whether the mesh has tangents.
func (m *Mesh) HasTangents() bool { return len(m.Tangents) > 0 }

// Wireframe returns a line-list version of the mesh sharing its vertex
// streams. The line index buffer is cached until Version changes; the
// rebuilt mesh keeps its identity and takes the new Version.
func (m *Mesh) Wireframe() *Mesh {
	if m.Mode != Triangles {
		return m
	}
	if m.wireframe != nil && m.wireVersion == m.Version {
		return m.wireframe
	}

	tris := m.Indices
	if len(tris) == 0 {
		tris = make([]uint32, m.VertexCount())
		for i := range tris {
			tris[i] = uint32(i)
		}
	}

	lines := make([]uint32, 0, len(tris)*2)
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		lines = append(lines, a, b, b, c, c, a)
	}

	w := m.wireframe
	if w == nil {
		w = &Mesh{}
	}
	*w = *m
	w.Name = m.Name + "#wireframe"
	w.Indices = lines
	w.Mode = Lines
	w.wireframe, w.wireVersion = nil, 0
	m.wireframe, m.wireVersion = w, m.Version
	return w
}

// ComputeBounds sets Bounds from the position stream.
func (m *Mesh) ComputeBounds() {
	if m.VertexCount() == 0 {
		m.Bounds = math.AABB{}
		return
	}
	p := m.Positions
	b := math.AABB{Min: math.Vec3{X: p[0], Y: p[1], Z: p[2]}, Max: math.Vec3{X: p[0], Y: p[1], Z: p[2]}}
	for i := 3; i+2 < len(p); i += 3 {
		b = b.Extend(math.Vec3{X: p[i], Y: p[i+1], Z: p[i+2]})
	}
	m.Bounds = b
}

// NewSphere generates a UV sphere.
func NewSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := &Mesh{Name: "sphere", Mode: Triangles}
	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)

			nx, ny, nz := sinPhi*cosTheta, cosPhi, sinPhi*sinTheta
			m.Positions = append(m.Positions, nx*radius, ny*radius, nz*radius)
			m.Normals = append(m.Normals, nx, ny, nz)
			m.UVs = append(m.UVs, float32(seg)/float32(segments), float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			m.Indices = append(m.Indices, current, next, current+1)
			m.Indices = append(m.Indices, current+1, next, next+1)
		}
	}

	m.ComputeBounds()
	return m
}

// NewQuad generates a unit quad centered at the origin in the XY plane,
// used for screen-space overlays.
func NewQuad() *Mesh {
	m := &Mesh{
		Name: "quad",
		Positions: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			0.5, 0.5, 0,
			-0.5, 0.5, 0,
		},
		UVs:     []float32{0, 1, 1, 1, 1, 0, 0, 0},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Mode:    Triangles,
	}
	m.ComputeBounds()
	return m
}

// boxUVs follow the corner winding of each box face.
var boxUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// NewBox generates an axis-aligned box with per-face normals.
func NewBox(w, h, d float32) *Mesh {
	x, y, z := w/2, h/2, d/2
	faces := []struct {
		n       math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z}}},
		{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: -z}, {X: -x, Y: y, Z: -z}, {X: x, Y: y, Z: -z}}},
		{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: x, Y: -y, Z: z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: y, Z: z}}},
		{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: -x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: z}, {X: -x, Y: y, Z: z}, {X: -x, Y: y, Z: -z}}},
		{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: -x, Y: y, Z: z}, {X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z}}},
		{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: -y, Z: z}, {X: -x, Y: -y, Z: z}}},
	}

	m := &Mesh{Name: "box", Mode: Triangles}
	for i, f := range faces {
		base := uint32(i * 4)
		for j, c := range f.corners {
			m.Positions = append(m.Positions, c.X, c.Y, c.Z)
			m.Normals = append(m.Normals, f.n.X, f.n.Y, f.n.Z)
			m.UVs = append(m.UVs, boxUVs[j][0], boxUVs[j][1])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}
