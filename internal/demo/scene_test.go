package demo

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/config"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/gpu/gputest"
	"github.com/Faultbox/midgard-render/internal/engine/renderer"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/engine/texture"
	"github.com/Faultbox/midgard-render/pkg/math"
)

type fixture struct {
	cfg  *config.Config
	dev  *gputest.Device
	demo *Demo
	r    *renderer.Renderer
}

func newFixture(t *testing.T, adjust func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Demo.Instances = 9
	cfg.Demo.PointLights = 2
	cfg.Pipeline.ShadowResolution = 256
	if adjust != nil {
		adjust(cfg)
	}

	dev := gputest.NewDevice(800, 600)
	reg := texture.NewRegistry(dev)
	d, err := Build(cfg, reg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return &fixture{
		cfg:  cfg,
		dev:  dev,
		demo: d,
		r:    renderer.New(dev, shader.NewCache(&gputest.Compiler{}), reg, renderer.NewConfig(cfg.Pipeline)),
	}
}

func (f *fixture) render() {
	f.dev.Reset()
	f.r.Render(f.demo.Scene, renderer.NewOptions(f.cfg.Pipeline))
}

func TestBuild(t *testing.T) {
	f := newFixture(t, nil)
	d := f.demo

	// ground + objects + marker
	if got := d.World.Count(); got != 11 {
		t.Errorf("entities = %d, want 11", got)
	}
	if len(d.Points) != 2 || d.Sun == nil || !d.Sun.Shadows {
		t.Errorf("lights: %d points, sun %v", len(d.Points), d.Sun)
	}
	if d.Second != nil {
		t.Error("second camera without split screen")
	}
	if d.Marker == nil || d.Marker.Mesh != nil {
		t.Error("marker overlay missing")
	}
	if d.Main.Eye == (math.Vec3{}) {
		t.Error("main camera not placed")
	}
}

func TestBuildGroundTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ground.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	fx := newFixture(t, func(c *config.Config) { c.Demo.GroundTexture = path })

	if got := fx.demo.World.Get(1).Instance.Material.ColorMap; got != GroundTexture {
		t.Errorf("ground color map = %q, want %q", got, GroundTexture)
	}

	cfg := config.Default()
	cfg.Demo.GroundTexture = filepath.Join(t.TempDir(), "missing.png")
	if _, err := Build(cfg, texture.NewRegistry(gputest.NewDevice(1, 1))); err == nil {
		t.Error("Build with a missing ground texture succeeded")
	}
}

func TestBuildSplitScreen(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Demo.SplitScreen = true
		c.Demo.Shadows = false
	})

	if f.demo.Second == nil || f.demo.Sun != nil {
		t.Fatal("split screen without a second camera")
	}

	f.render()

	if len(f.dev.Clears) != 2 {
		t.Fatalf("clears = %d, want one per camera", len(f.dev.Clears))
	}
	if f.dev.Clears[1].Scissor != (gpu.Rect{X: 400, W: 400, H: 600}) {
		t.Errorf("second clear scissor = %+v", f.dev.Clears[1].Scissor)
	}
}

func TestDemoRenders(t *testing.T) {
	f := newFixture(t, nil)

	f.render()

	stats := f.r.Stats()
	if stats.Errors != 0 {
		t.Errorf("render errors = %d", stats.Errors)
	}
	if stats.DrawCalls == 0 {
		t.Fatal("nothing drawn")
	}
	if f.demo.Sun.ShadowTarget() == nil {
		t.Error("shadow map not rendered")
	}

	overlay := false
	for _, d := range f.dev.DrawsWithProgram(shader.Flat) {
		if d.HasMacro(shader.Overlay2D) {
			overlay = true
		}
	}
	if !overlay {
		t.Error("marker overlay not drawn")
	}
}

func TestProbe(t *testing.T) {
	f := newFixture(t, nil)
	probe := NewProbe(f.r, math.Vec3{Y: 3}, renderer.NewOptions(f.cfg.Pipeline), zap.NewNop())
	f.demo.Scene.Observer = probe

	f.render()

	target := probe.Target()
	if target == nil || !target.Desc().IsCube() {
		t.Fatalf("probe target = %v", target)
	}
	if f.demo.Scene.Environment != target {
		t.Error("environment not set to the probe cubemap")
	}
	faces := 0
	for _, c := range f.dev.Clears {
		if c.Target == target {
			faces++
		}
	}
	if faces != 6 {
		t.Errorf("probe cleared %d faces, want 6", faces)
	}

	f.render()
	for _, c := range f.dev.Clears {
		if c.Target == target {
			t.Fatal("probe re-rendered before it was due")
		}
	}
}

func TestPickAndSelect(t *testing.T) {
	f := newFixture(t, nil)
	f.render()

	e := f.demo.Pick(400, 300, gpu.Rect{W: 800, H: 600})
	if e == nil || e.Instance.Name != "object-4" {
		t.Fatalf("picked %v, want object-4", e)
	}

	f.demo.Select(e)
	if e.Instance.Uniforms["u_color"] != highlight {
		t.Error("selection not highlighted")
	}
	f.demo.Select(nil)
	if _, ok := e.Instance.Uniforms["u_color"]; ok || f.demo.Selected() != nil {
		t.Error("selection not cleared")
	}
}

func TestPickOutsideViewport(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Demo.SplitScreen = true })
	f.render()

	if e := f.demo.Pick(600, 300, gpu.Rect{W: 800, H: 600}); e != nil {
		t.Errorf("picked %q outside the main viewport", e.Instance.Name)
	}
}

func TestUpdateMovesLights(t *testing.T) {
	f := newFixture(t, nil)
	before := f.demo.Points[0].Origin

	f.demo.Update(0.5)

	if f.demo.Points[0].Origin == before {
		t.Error("point light did not move")
	}
	if f.demo.Scene.Time != 0.5 {
		t.Errorf("scene time = %v", f.demo.Scene.Time)
	}
}

func TestProbeAlternatesCubemaps(t *testing.T) {
	f := newFixture(t, nil)
	probe := NewProbe(f.r, math.Vec3{Y: 3}, renderer.NewOptions(f.cfg.Pipeline), zap.NewNop())
	probe.Every = 1
	f.demo.Scene.Observer = probe

	f.render()
	first := probe.Target()

	f.render()
	second := probe.Target()
	if second == nil || second == first {
		t.Fatalf("refresh rendered into the published cubemap %v", first)
	}
	if f.demo.Scene.Environment != second {
		t.Error("environment not switched to the refreshed cubemap")
	}
	for _, d := range f.dev.Draws {
		if d.Target == nil || d.Target != second {
			continue
		}
		for unit, tex := range d.Textures {
			if tex == second.Texture() {
				t.Fatalf("draw of %s into the probe samples it on unit %d", d.Mesh.Name, unit)
			}
		}
	}

	f.render()
	if probe.Target() != first {
		t.Error("third refresh did not reuse the first cubemap")
	}
}
