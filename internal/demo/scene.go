// Package demo builds and runs the interactive pipeline demo: a grid of
// spinning objects lit by orbiting point lights and a shadow-casting sun.
package demo

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/internal/config"
	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/lighting"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/texture"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// Registry names of the demo textures.
const (
	CheckerTexture = "checker"
	GroundTexture  = "ground"
)

// Layers of the demo.
const (
	LayerWorld   uint32 = 1 << 0
	LayerOverlay uint32 = 1 << 1
)

const (
	gridSpacing = 3
	lightOrbit  = 8
	groundSize  = 60
)

var lightColors = [][3]float32{
	{1, 0.4, 0.3},
	{0.3, 0.6, 1},
	{0.4, 1, 0.4},
	{1, 0.9, 0.4},
}

// Demo is the populated scene plus the handles the app animates.
type Demo struct {
	World  *World
	Scene  *scene.Scene
	Main   *camera.Camera
	Second *camera.Camera
	Orbit  *camera.OrbitCamera
	Sun    *lighting.DirectionalLight
	Points []*lighting.PointLight
	Marker *scene.Instance

	selected *Entity
	time     float64
}

// Build populates a demo scene from cfg. Textures are uploaded through
// textures.
func Build(cfg *config.Config, textures *texture.Registry) (*Demo, error) {
	if _, err := textures.Upload(CheckerTexture, checker(64, 8)); err != nil {
		return nil, fmt.Errorf("uploading checker texture: %w", err)
	}

	w := NewWorld()
	d := &Demo{
		World: w,
		Scene: scene.New("demo", w),
		Orbit: camera.NewOrbitCamera(),
	}
	d.Scene.Background = gpu.Color{0.05, 0.06, 0.09, 1}
	d.Scene.Ambient = gpu.Color{0.15, 0.15, 0.18, 1}

	var nextID uint32 = 1
	add := func(name string, mesh *gpu.Mesh, mat *material.Material, pos math.Vec3) *Entity {
		node := scene.NewNode(nextID, name)
		inst := scene.NewInstance(node, mesh, mat)
		inst.Layers = LayerWorld
		e := NewEntity(nextID, inst, pos)
		w.Add(e)
		nextID++
		return e
	}

	ground := material.New("ground")
	ground.ColorMap = CheckerTexture
	if path := cfg.Demo.GroundTexture; path != "" {
		if err := textures.LoadFile(GroundTexture, path); err != nil {
			return nil, err
		}
		ground.ColorMap = GroundTexture
	}
	g := add("ground", gpu.NewBox(groundSize, 0.2, groundSize), ground, math.Vec3{Y: -0.1})
	g.Instance.Flags &^= scene.CastShadow
	g.Instance.Node.Selectable = false

	box := gpu.NewBox(1, 1, 1)
	sphere := gpu.NewSphere(0.6, 24, 12)
	side := int(math32.Ceil(math32.Sqrt(float32(cfg.Demo.Instances))))
	offset := float32(side-1) * gridSpacing / 2
	for i := 0; i < cfg.Demo.Instances; i++ {
		x := float32(i%side)*gridSpacing - offset
		z := float32(i/side)*gridSpacing - offset
		name := fmt.Sprintf("object-%d", i)

		mat := material.New(name)
		hue := float32(i) / float32(max(cfg.Demo.Instances, 1))
		mat.Color = hsv(hue, 0.6, 0.9)

		mesh := box
		if i%2 == 1 {
			mesh = sphere
		}
		e := add(name, mesh, mat, math.Vec3{X: x, Y: 0.5, Z: z})
		e.Spin = 0.3 + 0.1*float32(i%5)

		switch {
		case i%7 == 6:
			mat.Blend = material.BlendAdditive
			mat.Unlit = true
			mat.Opacity = 0.8
			e.Instance.Flags |= scene.Blend | scene.NoDepthWrite
			e.Instance.Flags &^= scene.CastShadow
		case i%5 == 4:
			mat.Opacity = 0.5
			e.Instance.Flags |= scene.Blend
			e.Instance.Node.AlphaTestShadows = true
		}
	}

	for i := 0; i < cfg.Demo.PointLights; i++ {
		l := lighting.NewPointLight(math.Vec3{Y: 2}, 10)
		l.Color = lightColors[i%len(lightColors)]
		l.Strength = 1.5
		l.LayerMask = LayerWorld
		d.Points = append(d.Points, l)
		w.AddLight(l)
	}

	if cfg.Demo.Shadows {
		d.Sun = lighting.NewSun(40, 55)
		d.Sun.Shadows = true
		d.Sun.ShadowResolution = cfg.Pipeline.ShadowResolution
		d.Sun.Strength = 0.8
		w.AddLight(d.Sun)
	}

	d.Main = camera.New("main")
	d.Main.Layers = LayerWorld | LayerOverlay
	d.Main.Far = 500
	w.AddCamera(d.Main)
	if cfg.Demo.SplitScreen {
		d.Main.Viewport = [4]float32{0, 0, 0.5, 1}
		d.Second = camera.New("top")
		d.Second.Viewport = [4]float32{0.5, 0, 0.5, 1}
		d.Second.Eye = math.Vec3{Y: 40, Z: 0.01}
		d.Second.Layers = LayerWorld
		d.Second.Far = 500
		bg := gpu.Color{0.08, 0.05, 0.05, 1}
		d.Second.Background = &bg
		w.AddCamera(d.Second)
	}

	if first := w.Get(2); first != nil {
		d.Marker = d.addMarker(nextID, first)
	}

	d.Orbit.FitToBounds(d.Bounds())
	d.Orbit.Apply(d.Main)
	d.Update(0)
	return d, nil
}

// addMarker places a screen-space marker above target.
func (d *Demo) addMarker(id uint32, target *Entity) *scene.Instance {
	mat := material.New("marker")
	mat.ColorMap = CheckerTexture
	mat.Unlit = true

	node := scene.NewNode(id, "marker")
	inst := scene.NewInstance(node, nil, mat)
	inst.Flags |= scene.Render2D
	inst.Flags &^= scene.CastShadow
	inst.Layers = LayerOverlay
	inst.Size = math.Vec2{X: 48, Y: 48}
	inst.Priority = 10

	e := NewEntity(id, inst, target.Position.Add(math.Vec3{Y: 1.5}))
	d.World.Add(e)
	return inst
}

// Bounds returns the union of every visible entity's world bounds.
func (d *Demo) Bounds() math.AABB {
	var (
		out   math.AABB
		found bool
	)
	for _, e := range d.World.All() {
		if !e.Visible || e.Instance.Mesh == nil {
			continue
		}
		b := e.Instance.WorldBounds()
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out
}

// Update advances the animation by dt seconds.
func (d *Demo) Update(dt float64) {
	d.time += dt
	d.World.Update(dt)

	t := float32(d.time)
	for i, l := range d.Points {
		phase := t*0.6 + float32(i)*2*math32.Pi/float32(len(d.Points))
		l.Origin = math.Vec3{
			X: lightOrbit * math32.Cos(phase),
			Y: 2 + math32.Sin(t+float32(i)),
			Z: lightOrbit * math32.Sin(phase),
		}
	}
	d.Scene.Time = t
	d.Scene.NeedsRedraw = true
	d.Orbit.Apply(d.Main)
}

// checker returns a two-tone checkerboard of size x size texels.
func checker(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/cells, 1)
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{90, 90, 90, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// hsv converts hue, saturation and value in [0, 1] to an opaque color.
func hsv(h, s, v float32) gpu.Color {
	i := math32.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch int(i) % 6 {
	case 0:
		return gpu.Color{v, t, p, 1}
	case 1:
		return gpu.Color{q, v, p, 1}
	case 2:
		return gpu.Color{p, v, t, 1}
	case 3:
		return gpu.Color{p, q, v, 1}
	case 4:
		return gpu.Color{t, p, v, 1}
	default:
		return gpu.Color{v, p, q, 1}
	}
}
