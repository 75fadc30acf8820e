// Package texture provides the texture registry the pipeline resolves
// sampler references through, and the neutral fallback texture.
package texture

import (
	"fmt"
	"image"
	"image/draw"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/logger"
)

// FallbackName is the registry name of the 1x1 neutral gray texture.
const FallbackName = "__fallback_gray"

// fallbackPixel is mid gray, opaque.
var fallbackPixel = []byte{128, 128, 128, 255}

// Registry maps texture names to GPU textures.
type Registry struct {
	dev      gpu.Device
	textures map[string]gpu.Texture
	fallback gpu.Texture
}

// NewRegistry creates an empty registry that allocates through dev.
func NewRegistry(dev gpu.Device) *Registry {
	return &Registry{
		dev:      dev,
		textures: make(map[string]gpu.Texture),
	}
}

// Add registers t under name, replacing any previous entry.
func (r *Registry) Add(name string, t gpu.Texture) {
	r.textures[name] = t
}

// Get returns the texture registered under name.
func (r *Registry) Get(name string) (gpu.Texture, bool) {
	t, ok := r.textures[name]
	return t, ok
}

// Len returns the number of registered textures.
func (r *Registry) Len() int {
	return len(r.textures)
}

// Upload converts img to RGBA, creates a 2D texture and registers it.
func (r *Registry) Upload(name string, img image.Image) (gpu.Texture, error) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	desc := gpu.TextureDesc{
		Name:   name,
		Kind:   gpu.Texture2D,
		Format: gpu.RGBA8,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	t, err := r.dev.NewTexture(desc, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("uploading texture %s: %w", name, err)
	}
	r.Add(name, t)

	logger.Debug("texture uploaded",
		zap.String("name", name),
		zap.Int("width", desc.Width),
		zap.Int("height", desc.Height),
	)
	return t, nil
}

// Fallback returns the 1x1 neutral gray texture, creating it on first use.
func (r *Registry) Fallback() (gpu.Texture, error) {
	if r.fallback != nil {
		return r.fallback, nil
	}
	t, err := r.dev.NewTexture(gpu.TextureDesc{
		Name:   FallbackName,
		Kind:   gpu.Texture2D,
		Format: gpu.RGBA8,
		Width:  1,
		Height: 1,
	}, fallbackPixel)
	if err != nil {
		return nil, fmt.Errorf("creating fallback texture: %w", err)
	}
	r.fallback = t
	return t, nil
}
