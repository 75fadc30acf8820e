package renderer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/lighting"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// RenderMaterialPreview renders mat on a unit sphere lit by a sun into
// target, for thumbnails.
func (r *Renderer) RenderMaterialPreview(mat *material.Material, target gpu.Target, opts scene.Options) error {
	if r.sphere == nil {
		r.sphere = gpu.NewSphere(1, 32, 16)
	}

	node := scene.NewNode(0, "preview")
	node.SeenByPicking = false
	inst := scene.NewInstance(node, r.sphere, mat)

	cam := camera.New("preview")
	cam.Eye = math.Vec3{X: 0, Y: 0, Z: 3}
	cam.FOV = math32.Pi / 4
	cam.Near, cam.Far = 0.1, 10

	s := scene.New("preview", &scene.StaticSource{
		Instances: []*scene.Instance{inst},
		Lights:    []scene.Light{lighting.NewSun(45, 45)},
		Cameras:   []*camera.Camera{cam},
	})
	s.Background = gpu.Color{0, 0, 0, 0}

	return r.RenderToTexture(s, cam, target, opts.WithPass(scene.PassColor))
}
