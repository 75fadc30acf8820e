package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation: got %v, want (5, 10, 15)", got)
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{12, 24, 36}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) rotates to approximately (0,0,-1)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 7).Mul(Scale(2, 4, 8))
	p := m.Inverse().Mul(m)
	id := Identity()
	for i := range p {
		if abs(p[i]-id[i]) > 1e-5 {
			t.Fatalf("M^-1 * M element %d: got %f, want %f", i, p[i], id[i])
		}
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	n := Translate(5, 5, 5).Mul(Scale(2, 2, 2)).NormalMatrix()
	if n[12] != 0 || n[13] != 0 || n[14] != 0 {
		t.Errorf("normal matrix must not carry translation, got %v", n)
	}
	if abs(n[0]-0.5) > 1e-5 {
		t.Errorf("normal matrix [0]: got %f, want 0.5", n[0])
	}
}

func TestMaxScale(t *testing.T) {
	if got := Scale(1, 3, 2).MaxScale(); abs(got-3) > 1e-5 {
		t.Errorf("MaxScale: got %f, want 3", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInverseGeneral(t *testing.T) {
	m := LookAt(Vec3{4, 3, 8}, Vec3{}, Vec3{Y: 1})
	m = Perspective(1, 1.5, 1, 50).Mul(m).Mul(RotateY(0.7))

	p := m.Mul(m.Inverse())
	id := Identity()
	for i := range p {
		if abs(p[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d: got %f, want %f", i, p[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(1, 0, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestOrthoMapsBoxToClip(t *testing.T) {
	m := Ortho(-2, 6, -1, 3, 1, 11)
	got := m.TransformVec3(Vec3{6, 3, -11})
	want := Vec3{1, 1, 1}
	if got.Distance(want) > 1e-5 {
		t.Errorf("far corner = %v, want %v", got, want)
	}
}
