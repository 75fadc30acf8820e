package picking

import (
	"testing"

	"github.com/Faultbox/midgard-render/pkg/math"
)

func TestAllocatorStable(t *testing.T) {
	a := NewAllocator()
	c1 := a.ColorFor(42)
	c2 := a.ColorFor(7)
	if a.ColorFor(42) != c1 {
		t.Error("color changed between calls")
	}
	if c1 == c2 {
		t.Error("two nodes share a color")
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestAllocatorLookup(t *testing.T) {
	a := NewAllocator()
	a.ColorFor(100)
	c := a.ColorFor(200)

	rgba := [4]byte{byte(c[0]*255 + 0.5), byte(c[1]*255 + 0.5), byte(c[2]*255 + 0.5), 255}
	node, ok := a.Lookup(rgba)
	if !ok || node != 200 {
		t.Errorf("Lookup = %d, %v, want 200", node, ok)
	}
	if _, ok := a.Lookup([4]byte{0, 0, 0, 255}); ok {
		t.Error("background decoded as a node")
	}
}

func TestRayIntersectAABB(t *testing.T) {
	box := math.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"miss", Ray{Origin: math.Vec3{Y: 5, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || d != tt.t {
				t.Errorf("IntersectAABB = %v, %v, want %v, %v", d, hit, tt.t, tt.hit)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(1, 1, 0.1, 100)
	r := ScreenToRay(50, 50, 100, 100, proj.Mul(view).Inverse())

	if r.Direction.Z > -0.999 {
		t.Errorf("center ray direction = %+v, want -Z", r.Direction)
	}
}
