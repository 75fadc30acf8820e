package math

import (
	"math"
	"testing"
)

func testFrustum() Frustum {
	view := LookAt(Vec3{0, 0, 10}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	proj := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	return FrustumFromMatrix(proj.Mul(view))
}

func TestFrustumSphere(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name   string
		sphere Sphere
		want   bool
	}{
		{"in front", Sphere{Vec3{0, 0, 0}, 1}, true},
		{"behind camera", Sphere{Vec3{0, 0, 20}, 1}, false},
		{"far left", Sphere{Vec3{-100, 0, 0}, 1}, false},
		{"straddles left plane", Sphere{Vec3{-10.5, 0, 0}, 2}, true},
		{"beyond far plane", Sphere{Vec3{0, 0, -200}, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tt.sphere); got != tt.want {
				t.Errorf("IntersectsSphere(%v) = %v, want %v", tt.sphere, got, tt.want)
			}
		})
	}
}

func TestFrustumAABB(t *testing.T) {
	f := testFrustum()

	inside := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	if !f.IntersectsAABB(inside) {
		t.Error("box at origin should be inside")
	}
	outside := AABB{Min: Vec3{50, 50, -1}, Max: Vec3{52, 52, 1}}
	if f.IntersectsAABB(outside) {
		t.Error("box far to the side should be outside")
	}
}

func TestAABBTransform(t *testing.T) {
	b := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	got := b.Transform(Translate(10, 0, 0).Mul(Scale(2, 2, 2)))

	if got.Min != (Vec3{8, -2, -2}) || got.Max != (Vec3{12, 2, 2}) {
		t.Errorf("Transform: got %v", got)
	}
	if c := got.Center(); c != (Vec3{10, 0, 0}) {
		t.Errorf("Center: got %v", c)
	}
}

func TestSphereOverlaps(t *testing.T) {
	s := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}
	if !s.Overlaps(Vec3{3, 0, 0}, 2) {
		t.Error("touching spheres should overlap")
	}
	if s.Overlaps(Vec3{3.5, 0, 0}, 2) {
		t.Error("separated spheres should not overlap")
	}
}
