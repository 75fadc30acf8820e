package gpu

import (
	"testing"

	"github.com/Faultbox/midgard-render/pkg/math"
)

func TestWireframeCached(t *testing.T) {
	m := NewQuad()
	w := m.Wireframe()

	if w.Mode != Lines {
		t.Errorf("wireframe mode = %v, want Lines", w.Mode)
	}
	// 2 triangles * 3 edges * 2 endpoints
	if len(w.Indices) != 12 {
		t.Errorf("wireframe index count = %d, want 12", len(w.Indices))
	}
	if m.Wireframe() != w {
		t.Error("wireframe mesh should be cached on first use")
	}
	if len(m.Indices) != 6 {
		t.Error("source mesh indices must be untouched")
	}
}

func TestWireframeFollowsVersion(t *testing.T) {
	m := NewQuad()
	w := m.Wireframe()
	version := w.Version

	m.Positions = append(m.Positions, 0, 0, 0, 1, 0, 0, 0, 1, 0)
	m.Indices = append(m.Indices, 4, 5, 6)
	m.Version++

	if got := m.Wireframe(); got != w {
		t.Fatal("rebuilt wireframe should keep its identity")
	}
	if w.Version == version || w.Version != m.Version {
		t.Errorf("wireframe version = %d, want %d", w.Version, m.Version)
	}
	if len(w.Indices) != 18 {
		t.Errorf("wireframe index count = %d, want 18", len(w.Indices))
	}
	if len(w.Positions) != len(m.Positions) {
		t.Error("wireframe kept the old position stream")
	}
}

func TestWireframeUnindexed(t *testing.T) {
	m := &Mesh{Positions: make([]float32, 9), Mode: Triangles}
	w := m.Wireframe()
	want := []uint32{0, 1, 1, 2, 2, 0}
	for i, idx := range want {
		if w.Indices[i] != idx {
			t.Fatalf("index %d = %d, want %d", i, w.Indices[i], idx)
		}
	}
}

func TestSphereStreams(t *testing.T) {
	m := NewSphere(1, 16, 8)
	if !m.HasNormals() || !m.HasUVs() {
		t.Error("sphere should have normals and uvs")
	}
	if m.HasColors() || m.HasTangents() || m.HasUV2s() {
		t.Error("sphere should not have colors, tangents or uv2")
	}
	if m.VertexCount() != 17*9 {
		t.Errorf("vertex count = %d, want %d", m.VertexCount(), 17*9)
	}
	if r := m.Bounds.Radius(); r < 1.6 || r > 1.8 {
		t.Errorf("bounds radius = %v, want ~sqrt(3)", r)
	}
}

func TestBoxBounds(t *testing.T) {
	m := NewBox(2, 4, 6)
	if m.Bounds.Max.X != 1 || m.Bounds.Max.Y != 2 || m.Bounds.Max.Z != 3 {
		t.Errorf("box bounds = %+v", m.Bounds)
	}
	if len(m.Indices) != 36 {
		t.Errorf("box index count = %d, want 36", len(m.Indices))
	}
}

func TestBoxUVsFollowCorners(t *testing.T) {
	m := NewBox(2, 4, 6)
	pos := func(i uint32) math.Vec3 {
		p := m.Positions[i*3:]
		return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		origin := pos(base)
		u := pos(base + 1).Sub(origin)
		v := pos(base + 3).Sub(origin)
		for k := uint32(0); k < 4; k++ {
			d := pos(base + k).Sub(origin)
			wantU := d.Dot(u) / u.Dot(u)
			wantV := d.Dot(v) / v.Dot(v)
			gotU, gotV := m.UVs[(base+k)*2], m.UVs[(base+k)*2+1]
			if gotU != wantU || gotV != wantV {
				t.Errorf("face %d corner %d uv = (%v, %v), want (%v, %v)", face, k, gotU, gotV, wantU, wantV)
			}
		}
	}
}
