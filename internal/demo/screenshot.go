package demo

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/debug"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
)

// PixelReader reads back the bound framebuffer, bottom-up.
type PixelReader interface {
	ReadPixels(r gpu.Rect) []byte
}

// screenshot is a one-shot post-process that saves the finished frame.
type screenshot struct {
	capture *debug.ScreenshotCapture
	log     *zap.Logger
	saved   string
}

func (s *screenshot) BeforeRender(gpu.Device, *scene.Scene) {}

func (s *screenshot) AfterRender(dev gpu.Device, _ *scene.Scene) {
	reader, ok := dev.(PixelReader)
	if !ok {
		s.log.Warn("device cannot read pixels, screenshot skipped")
		return
	}
	w, h := dev.CanvasSize()
	path, err := s.capture.CaptureFromPixels(reader.ReadPixels(gpu.Rect{W: w, H: h}), w, h)
	if err != nil {
		s.log.Error("screenshot failed", zap.Error(err))
		return
	}
	s.saved = path
	s.log.Info("screenshot saved", zap.String("path", path))
}
