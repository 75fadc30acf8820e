package math

import "testing"

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Add(Vec2{1, 2}); got != (Vec2{4, 6}) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Mul(Vec2{2, 0.5}); got != (Vec2{6, 2}) {
		t.Errorf("Mul = %v", got)
	}
	if got := v.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if v.IsZero() || !(Vec2{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestVec3(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"cross x y", Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}), Vec3{0, 0, 1}},
		{"cross y x", Vec3{0, 1, 0}.Cross(Vec3{1, 0, 0}), Vec3{0, 0, -1}},
		{"min", Vec3{1, 5, -2}.Min(Vec3{3, 2, -4}), Vec3{1, 2, -4}},
		{"max", Vec3{1, 5, -2}.Max(Vec3{3, 2, -4}), Vec3{3, 5, -2}},
		{"zero normalize", Vec3{}.Normalize(), Vec3{}},
		{"xyz", Vec4{1, 2, 3, 4}.XYZ(), Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVec3Lengths(t *testing.T) {
	if l := (Vec3{3, 4, 12}).Normalize().Length(); abs(l-1) > 1e-3 {
		t.Errorf("normalized length = %v, want ~1", l)
	}
	if got := (Vec3{1, 2, 3}).Distance(Vec3{1, 2, 8}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := (Vec3{1, 2, 2}).LengthSq(); got != 9 {
		t.Errorf("LengthSq = %v, want 9", got)
	}
}
