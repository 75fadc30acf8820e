package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column by column, so element (row r,
// column c) lives at index c*4+r and the translation occupies 12..14.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Scale(1, 1, 1)
}

// Perspective builds a right-handed projection mapping depth to [-1, 1].
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	depth := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// Ortho builds an orthographic projection of the given view box.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w, h, d := right-left, top-bottom, far-near

	m := Scale(2/w, 2/h, -2/d)
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	return m
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	return Mat4{
		side.X, camUp.X, -fwd.X, 0,
		side.Y, camUp.Y, -fwd.Y, 0,
		side.Z, camUp.Z, -fwd.Z, 0,
		-side.Dot(eye), -camUp.Dot(eye), fwd.Dot(eye), 1,
	}
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Scale(1, 1, 1)
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a per-axis scale.
func Scale(x, y, z float32) Mat4 {
	return Mat4{0: x, 5: y, 10: z, 15: 1}
}

// RotateY rotates by angle radians about +Y.
func RotateY(angle float32) Mat4 {
	sin, cos := math32.Sincos(angle)
	return Mat4{0: cos, 2: -sin, 5: 1, 8: sin, 10: cos, 15: 1}
}

// Mul returns m * o, so o is applied first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// TransformVec3 transforms the point v, dividing by w when the matrix is
// projective.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	if p[3] != 0 && p[3] != 1 {
		return p.XYZ().Scale(1 / p[3])
	}
	return p.XYZ()
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// MaxScale returns the largest axis scale, for scaling bounding radii.
func (m Mat4) MaxScale() float32 {
	return math32.Max(
		Vec3{m[0], m[1], m[2]}.Length(),
		math32.Max(Vec3{m[4], m[5], m[6]}.Length(), Vec3{m[8], m[9], m[10]}.Length()),
	)
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 embedded in
// an otherwise identity matrix.
func (m Mat4) NormalMatrix() Mat4 {
	n := m.Inverse().Transpose()
	n[3], n[7], n[11] = 0, 0, 0
	n[12], n[13], n[14], n[15] = 0, 0, 0, 1
	return n
}

// Ptr returns the address of the first element for gl uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns the inverse, or the identity for a singular matrix.
//
// It expands along pairs of 2x2 sub-determinants. The expansion is written
// for row-major input; feeding it the column-major array inverts the
// transpose, whose inverse is the transpose of ours, so the output is
// already laid out column-major.
func (m Mat4) Inverse() Mat4 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	s0 := a00*a11 - a10*a01
	s1 := a00*a12 - a10*a02
	s2 := a00*a13 - a10*a03
	s3 := a01*a12 - a11*a02
	s4 := a01*a13 - a11*a03
	s5 := a02*a13 - a12*a03

	c0 := a20*a31 - a30*a21
	c1 := a20*a32 - a30*a22
	c2 := a20*a33 - a30*a23
	c3 := a21*a32 - a31*a22
	c4 := a21*a33 - a31*a23
	c5 := a22*a33 - a32*a23

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(a11*c5 - a12*c4 + a13*c3) * inv,
		(-a01*c5 + a02*c4 - a03*c3) * inv,
		(a31*s5 - a32*s4 + a33*s3) * inv,
		(-a21*s5 + a22*s4 - a23*s3) * inv,

		(-a10*c5 + a12*c2 - a13*c1) * inv,
		(a00*c5 - a02*c2 + a03*c1) * inv,
		(-a30*s5 + a32*s2 - a33*s1) * inv,
		(a20*s5 - a22*s2 + a23*s1) * inv,

		(a10*c4 - a11*c2 + a13*c0) * inv,
		(-a00*c4 + a01*c2 - a03*c0) * inv,
		(a30*s4 - a31*s2 + a33*s0) * inv,
		(-a20*s4 + a21*s2 - a23*s0) * inv,

		(-a10*c3 + a11*c1 - a12*c0) * inv,
		(a00*c3 - a01*c1 + a02*c0) * inv,
		(-a30*s3 + a31*s1 - a32*s0) * inv,
		(a20*s3 - a21*s1 + a22*s0) * inv,
	}
}
