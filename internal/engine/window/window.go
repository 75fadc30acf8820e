// Package window opens the SDL2 window and the OpenGL context the pipeline
// renders into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/config"
	"github.com/Faultbox/midgard-render/internal/logger"
)

func init() {
	// GL calls must stay on the thread that created the context.
	runtime.LockOSThread()
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// contextAttributes request an OpenGL 4.1 core context, the newest profile
// macOS offers, with a 24-bit depth and 8-bit stencil buffer.
var contextAttributes = []glAttribute{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
	{sdl.GL_STENCIL_SIZE, 8},
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	handle     *sdl.Window
	context    sdl.GLContext
	fullscreen bool
	log        *zap.Logger
}

// creationFlags maps the window section onto SDL window flags.
func creationFlags(cfg config.WindowConfig) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

// swapInterval is 1 with vsync and 0 without.
func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// New initialises SDL2 video and creates a window whose GL context is
// current on the calling thread.
func New(title string, cfg config.WindowConfig) (_ *Window, err error) {
	log := logger.With(zap.String("component", "window"))

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}
	defer func() {
		if err != nil {
			sdl.Quit()
		}
	}()

	for _, a := range contextAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return nil, fmt.Errorf("setting GL attribute %d: %w", a.attr, err)
		}
	}

	handle, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), creationFlags(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	context, err := handle.GLCreateContext()
	if err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("creating GL context: %w", err)
	}

	interval := swapInterval(cfg.VSync)
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("swap interval rejected", zap.Int("interval", interval), zap.Error(err))
	}

	w := &Window{handle: handle, context: context, fullscreen: cfg.Fullscreen, log: log}
	dw, dh := w.DrawableSize()
	log.Info("window created",
		zap.String("title", title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close destroys the context and window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")
	sdl.GLDeleteContext(w.context)
	w.handle.Destroy()
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.handle.GLSwap() }

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) {
	width, height := w.handle.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels. It differs from Size
// on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.handle.GLGetDrawableSize()
	return int(width), int(height)
}

// ToggleFullscreen switches between windowed and desktop fullscreen.
func (w *Window) ToggleFullscreen() error {
	var flags uint32
	if !w.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.handle.SetFullscreen(flags); err != nil {
		return fmt.Errorf("switching fullscreen: %w", err)
	}
	w.fullscreen = !w.fullscreen
	return nil
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) { w.handle.SetTitle(title) }
