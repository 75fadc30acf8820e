package debug

import (
	"testing"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	v := GenerateBBoxWireframeVertices(math.AABB{Max: math.Vec3{X: 1, Y: 2, Z: 3}})
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] < 0 || v[i] > 1 || v[i+1] < 0 || v[i+1] > 2 || v[i+2] < 0 || v[i+2] > 3 {
			t.Fatalf("vertex %d outside box: %v", i/3, v[i:i+3])
		}
	}
}

func TestDrawReset(t *testing.T) {
	var d Draw
	d.AddBox(math.AABB{Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	d.AddBox(math.AABB{Max: math.Vec3{X: 2, Y: 2, Z: 2}})
	if d.Boxes() != 2 {
		t.Fatalf("Boxes = %d, want 2", d.Boxes())
	}

	m := d.Mesh()
	if m.Mode != gpu.Lines || m.VertexCount() != 2*BBoxWireframeVertexCount {
		t.Errorf("mesh mode=%v vertices=%d", m.Mode, m.VertexCount())
	}

	eye := math.Vec3{Z: 3}
	d.Reset(eye, math.Identity(), math.Identity())
	if !d.Empty() || d.Mesh() != nil {
		t.Error("Reset kept geometry")
	}
	if d.Eye != eye {
		t.Errorf("eye = %+v", d.Eye)
	}
}
