package shadow

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/pkg/math"
)

func TestDirectionalLightFrameEnclosesBounds(t *testing.T) {
	bounds := math.AABB{Min: math.Vec3{X: -10, Y: 0, Z: -10}, Max: math.Vec3{X: 10, Y: 5, Z: 10}}
	dir := math.Vec3{X: 0.3, Y: 0.8, Z: 0.2}.Normalize()

	f := DirectionalLightFrame(dir, bounds)
	m := f.Matrix()

	corners := []math.Vec3{bounds.Min, bounds.Max, {X: -10, Y: 5, Z: 10}, {X: 10, Y: 0, Z: -10}}
	for _, c := range corners {
		p := m.TransformVec3(c)
		if math32.Abs(p.X) > 1 || math32.Abs(p.Y) > 1 || math32.Abs(p.Z) > 1 {
			t.Errorf("corner %+v maps outside clip space: %+v", c, p)
		}
	}
}

func TestDirectionalLightFrameVerticalUp(t *testing.T) {
	f := DirectionalLightFrame(math.Vec3{Y: 1}, math.AABB{Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	if f.Up != (math.Vec3{Z: 1}) {
		t.Errorf("up = %+v, want +Z for vertical light", f.Up)
	}
}

func TestBiasMatrix(t *testing.T) {
	p := BiasMatrix().TransformVec3(math.Vec3{X: -1, Y: 1, Z: 0})
	if p.X != 0 || p.Y != 1 || p.Z != 0.5 {
		t.Errorf("bias(-1,1,0) = %+v", p)
	}
}
