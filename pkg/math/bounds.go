package math

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Scale(0.5).Length()
}

// Transform returns the world-space box enclosing the 8 transformed corners.
func (b AABB) Transform(m Mat4) AABB {
	mn, mx := b.Min, b.Max
	corners := [8]Vec3{
		{mn.X, mn.Y, mn.Z}, {mx.X, mn.Y, mn.Z},
		{mn.X, mx.Y, mn.Z}, {mx.X, mx.Y, mn.Z},
		{mn.X, mn.Y, mx.Z}, {mx.X, mn.Y, mx.Z},
		{mn.X, mx.Y, mx.Z}, {mx.X, mx.Y, mx.Z},
	}
	first := m.TransformVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		out = out.Extend(m.TransformVec3(c))
	}
	return out
}

// Extend grows the box to contain p.
func (b AABB) Extend(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return b.Extend(o.Min).Extend(o.Max)
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// Overlaps reports whether the sphere intersects another sphere of the given
// center and radius.
func (s Sphere) Overlaps(center Vec3, radius float32) bool {
	return s.Center.Distance(center) <= s.Radius+radius
}

// Plane is a half-space n·p + d = 0 whose normal points into the frustum.
type Plane struct {
	Normal Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
func (p Plane) DistanceTo(pt Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromMatrix extracts normalized planes from a view-projection matrix
// (Gribb/Hartmann). Row i of the column-major matrix is m[i], m[4+i], m[8+i], m[12+i].
func FrustumFromMatrix(m Mat4) Frustum {
	row := func(i int) Vec4 { return Vec4{m[i], m[4+i], m[8+i], m[12+i]} }
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = planeOf(r3[0]+r0[0], r3[1]+r0[1], r3[2]+r0[2], r3[3]+r0[3])
	f.Planes[1] = planeOf(r3[0]-r0[0], r3[1]-r0[1], r3[2]-r0[2], r3[3]-r0[3])
	f.Planes[2] = planeOf(r3[0]+r1[0], r3[1]+r1[1], r3[2]+r1[2], r3[3]+r1[3])
	f.Planes[3] = planeOf(r3[0]-r1[0], r3[1]-r1[1], r3[2]-r1[2], r3[3]-r1[3])
	f.Planes[4] = planeOf(r3[0]+r2[0], r3[1]+r2[1], r3[2]+r2[2], r3[3]+r2[3])
	f.Planes[5] = planeOf(r3[0]-r2[0], r3[1]-r2[1], r3[2]-r2[2], r3[3]-r2[3])
	return f
}

func planeOf(a, b, c, d float32) Plane {
	l := Vec3{a, b, c}.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: Vec3{a / l, b / l, c / l}, D: d / l}
}

// IntersectsSphere returns false if the sphere is completely outside the frustum.
func (f *Frustum) IntersectsSphere(s Sphere) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// IntersectsAABB returns false if the box is completely outside the frustum,
// testing the corner most aligned with each plane normal.
func (f *Frustum) IntersectsAABB(b AABB) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		v := b.Max
		if p.Normal.X < 0 {
			v.X = b.Min.X
		}
		if p.Normal.Y < 0 {
			v.Y = b.Min.Y
		}
		if p.Normal.Z < 0 {
			v.Z = b.Min.Z
		}
		if p.DistanceTo(v) < 0 {
			return false
		}
	}
	return true
}
