package demo

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/config"
	"github.com/Faultbox/midgard-render/internal/engine/debug"
	"github.com/Faultbox/midgard-render/internal/engine/glgpu"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/input"
	"github.com/Faultbox/midgard-render/internal/engine/renderer"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/engine/texture"
	"github.com/Faultbox/midgard-render/internal/engine/window"
	"github.com/Faultbox/midgard-render/internal/logger"
	"github.com/Faultbox/midgard-render/pkg/math"
)

const (
	title         = "Midgard Render"
	thumbnailSize = 96
)

// App owns the window, device and renderer of the interactive demo.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	device   *glgpu.Device
	renderer *renderer.Renderer
	input    *input.Input
	demo     *Demo
	opts     scene.Options
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New opens the window and builds the demo scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		input: input.New(),
		opts:  renderer.NewOptions(cfg.Pipeline),
		shots: debug.NewScreenshotCapture("screenshots", "pipeline"),
		log:   logger.With(zap.String("component", "demo")),
	}

	var err error
	a.window, err = window.New(title, cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The device needs the context the window just made current.
	a.device, err = glgpu.New(a.window.DrawableSize)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating device: %w", err)
	}

	textures := texture.NewRegistry(a.device)
	shaders := shader.NewCache(glgpu.NewCompiler())
	a.renderer = renderer.New(a.device, shaders, textures, renderer.NewConfig(cfg.Pipeline))

	a.demo, err = Build(cfg, textures)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building scene: %w", err)
	}
	a.demo.Scene.Observer = NewProbe(a.renderer, math.Vec3{Y: 3}, a.opts, a.log)

	if err := a.renderThumbnail(); err != nil {
		a.log.Warn("material thumbnail unavailable", zap.Error(err))
	}

	a.log.Info("demo initialized",
		zap.Int("entities", a.demo.World.Count()),
		zap.Int("point_lights", len(a.demo.Points)),
		zap.Bool("shadows", a.demo.Sun != nil),
		zap.Bool("split_screen", a.demo.Second != nil),
	)
	return a, nil
}

// renderThumbnail previews the first object's material and shows it on
// the screen marker.
func (a *App) renderThumbnail() error {
	first := a.demo.World.Get(2)
	if first == nil || a.demo.Marker == nil {
		return nil
	}
	target, err := a.device.NewTarget(gpu.TargetDesc{
		Name:   "thumbnail",
		Kind:   gpu.Texture2D,
		Width:  thumbnailSize,
		Height: thumbnailSize,
	})
	if err != nil {
		return err
	}
	if err := a.renderer.RenderMaterialPreview(first.Instance.Material, target, a.opts); err != nil {
		return err
	}
	a.demo.Marker.Material.ColorMap = target
	return nil
}

// Run drives the frame loop until the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")
	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.demo.Update(dt)
		a.renderer.Render(a.demo.Scene, a.opts)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.renderer.Stats()
			a.window.SetTitle(fmt.Sprintf("%s - %d fps, %d draws", title, frameCount, stats.DrawCalls))
			a.log.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("draw_calls", stats.DrawCalls),
				zap.Int("instances", stats.Instances),
				zap.Int("errors", stats.Errors),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventMouseMove:
			if a.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
				a.demo.Orbit.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseWheel:
			a.demo.Orbit.HandleZoom(float32(e.DeltaY))
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.pick(e.MouseX, e.MouseY)
			}
		case input.EventKeyDown:
			a.handleKey(e.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_F12:
		a.renderer.SetPostProcess(&screenshot{capture: a.shots, log: a.log})
	case sdl.SCANCODE_F11:
		if err := a.window.ToggleFullscreen(); err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
		return
	case sdl.SCANCODE_F5:
		renderer.StoreOptions(&a.cfg.Pipeline, a.opts)
		if err := a.cfg.Save(); err != nil {
			a.log.Error("saving config failed", zap.Error(err))
		} else {
			a.log.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
		return
	case sdl.SCANCODE_W:
		a.opts.ForceWireframe = !a.opts.ForceWireframe
	case sdl.SCANCODE_B:
		a.opts.DebugBounds = !a.opts.DebugBounds
	case sdl.SCANCODE_C:
		a.opts.FrustumCulling = !a.opts.FrustumCulling
	case sdl.SCANCODE_L:
		a.opts.DisableLights = !a.opts.DisableLights
	case sdl.SCANCODE_H:
		if e := a.demo.Selected(); e != nil {
			e.Visible = false
			a.demo.Select(nil)
		}
	case sdl.SCANCODE_R:
		for _, e := range a.demo.World.All() {
			e.Visible = true
		}
	default:
		return
	}
	a.log.Debug("options changed",
		zap.Bool("wireframe", a.opts.ForceWireframe),
		zap.Bool("bounds", a.opts.DebugBounds),
		zap.Bool("culling", a.opts.FrustumCulling),
		zap.Bool("lights_disabled", a.opts.DisableLights),
	)
}

// pick converts the window click to drawable pixels and selects the entity
// under it.
func (a *App) pick(x, y int) {
	ww, wh := a.window.Size()
	dw, dh := a.window.DrawableSize()
	if ww > 0 && wh > 0 {
		x, y = x*dw/ww, y*dh/wh
	}
	e := a.demo.Pick(x, y, gpu.Rect{W: dw, H: dh})
	a.demo.Select(e)
	if e != nil {
		a.log.Info("entity picked", zap.Uint32("id", e.ID), zap.String("name", e.Instance.Name))
	}
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing demo")
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
