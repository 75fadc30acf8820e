package scene

import "github.com/Faultbox/midgard-render/internal/engine/camera"

// Observer receives the frame lifecycle in order. Hooks may issue their own
// draws; the renderer restores its GPU baseline after each batch.
type Observer interface {
	BeforeRender(s *Scene)
	RenderShadows(s *Scene)
	AfterVisibility(s *Scene)
	RenderReflections(s *Scene)
	BeforeRenderMainPass(s *Scene)

	BeforeRenderFrame(s *Scene, cam *camera.Camera)
	BeforeRenderScene(s *Scene, cam *camera.Camera)
	AfterRenderScene(s *Scene, cam *camera.Camera)
	AfterRenderFrame(s *Scene, cam *camera.Camera)

	AfterRender(s *Scene)
}

// NopObserver implements Observer with no-ops, for embedding.
type NopObserver struct{}

func (NopObserver) BeforeRender(*Scene)                      {}
func (NopObserver) RenderShadows(*Scene)                     {}
func (NopObserver) AfterVisibility(*Scene)                   {}
func (NopObserver) RenderReflections(*Scene)                 {}
func (NopObserver) BeforeRenderMainPass(*Scene)              {}
func (NopObserver) BeforeRenderFrame(*Scene, *camera.Camera) {}
func (NopObserver) BeforeRenderScene(*Scene, *camera.Camera) {}
func (NopObserver) AfterRenderScene(*Scene, *camera.Camera)  {}
func (NopObserver) AfterRenderFrame(*Scene, *camera.Camera)  {}
func (NopObserver) AfterRender(*Scene)                       {}
