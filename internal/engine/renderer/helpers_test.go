package renderer

import (
	"testing"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/gpu/gputest"
	"github.com/Faultbox/midgard-render/internal/engine/material"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/engine/texture"
	"github.com/Faultbox/midgard-render/pkg/math"
)

type harness struct {
	dev      *gputest.Device
	compiler *gputest.Compiler
	textures *texture.Registry
	r        *Renderer
	src      *scene.StaticSource
	scene    *scene.Scene
	cam      *camera.Camera
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dev := gputest.NewDevice(800, 600)
	comp := &gputest.Compiler{}
	reg := texture.NewRegistry(dev)

	cam := camera.New("main")
	cam.Eye = math.Vec3{Z: 10}

	src := &scene.StaticSource{Cameras: []*camera.Camera{cam}}
	return &harness{
		dev:      dev,
		compiler: comp,
		textures: reg,
		r:        New(dev, shader.NewCache(comp), reg, DefaultConfig()),
		src:      src,
		scene:    scene.New("test", src),
		cam:      cam,
	}
}

// add places a box instance at (x, y, z) with its own mesh so draws can be
// told apart.
func (h *harness) add(name string, x, y, z float32) *scene.Instance {
	node := scene.NewNode(uint32(len(h.src.Instances)+1), name)
	mesh := gpu.NewBox(1, 1, 1)
	mesh.Name = name
	inst := scene.NewInstance(node, mesh, material.New(name))
	inst.World = math.Translate(x, y, z)
	h.src.Instances = append(h.src.Instances, inst)
	return inst
}

func (h *harness) light(x, y, z, radius float32) *testLight {
	l := &testLight{pos: math.Vec3{X: x, Y: y, Z: z}, radius: radius, intensity: 1, layers: camera.AllLayers}
	h.src.Lights = append(h.src.Lights, l)
	return l
}

func (h *harness) render(opts scene.Options) {
	h.dev.Reset()
	h.r.Render(h.scene, opts)
}

func names(list []*scene.Instance) []string {
	out := make([]string, len(list))
	for i, inst := range list {
		out[i] = inst.Name
	}
	return out
}

type testLight struct {
	pos       math.Vec3
	intensity float32
	radius    float32
	layers    uint32
	prepared  int
}

func (l *testLight) Position() math.Vec3 { return l.pos }
func (l *testLight) Intensity() float32  { return l.intensity }
func (l *testLight) Radius() float32     { return l.radius }
func (l *testLight) Layers() uint32      { return l.layers }
func (l *testLight) Macros(scene.PassKind) shader.Macros {
	return shader.Macros{"LIGHT_TYPE": "TEST"}
}
func (l *testLight) Uniforms(scene.PassKind) shader.Uniforms {
	return shader.Uniforms{"u_lightPosition": l.pos.Array()}
}
func (l *testLight) Samplers(scene.PassKind) shader.Samplers { return nil }
func (l *testLight) Prepare(scene.TargetRenderer, scene.Options) error {
	l.prepared++
	return nil
}

// recordObserver logs hook names in call order.
type recordObserver struct {
	scene.NopObserver
	calls []string
	onBeforeScene func()
}

func (o *recordObserver) BeforeRender(*scene.Scene)         { o.calls = append(o.calls, "BeforeRender") }
func (o *recordObserver) RenderShadows(*scene.Scene)        { o.calls = append(o.calls, "RenderShadows") }
func (o *recordObserver) AfterVisibility(*scene.Scene)      { o.calls = append(o.calls, "AfterVisibility") }
func (o *recordObserver) RenderReflections(*scene.Scene)    { o.calls = append(o.calls, "RenderReflections") }
func (o *recordObserver) BeforeRenderMainPass(*scene.Scene) { o.calls = append(o.calls, "BeforeRenderMainPass") }
func (o *recordObserver) BeforeRenderFrame(_ *scene.Scene, c *camera.Camera) {
	o.calls = append(o.calls, "BeforeRenderFrame:"+c.Name)
}
func (o *recordObserver) BeforeRenderScene(_ *scene.Scene, c *camera.Camera) {
	o.calls = append(o.calls, "BeforeRenderScene:"+c.Name)
	if o.onBeforeScene != nil {
		o.onBeforeScene()
	}
}
func (o *recordObserver) AfterRenderScene(_ *scene.Scene, c *camera.Camera) {
	o.calls = append(o.calls, "AfterRenderScene:"+c.Name)
}
func (o *recordObserver) AfterRenderFrame(_ *scene.Scene, c *camera.Camera) {
	o.calls = append(o.calls, "AfterRenderFrame:"+c.Name)
}
func (o *recordObserver) AfterRender(*scene.Scene) { o.calls = append(o.calls, "AfterRender") }
