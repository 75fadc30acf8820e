// Package sampler binds named sampler sets to sequential texture units.
package sampler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/logger"
)

// ErrInvalidSampler is returned for a sampler whose source is neither a
// texture, a texture name nor an object exposing a texture.
var ErrInvalidSampler = errors.New("invalid sampler")

// Registry resolves texture names.
type Registry interface {
	Get(name string) (gpu.Texture, bool)
	Fallback() (gpu.Texture, error)
}

// Binder assigns texture units and binds textures.
type Binder struct {
	dev gpu.Device
	reg Registry
}

// NewBinder creates a binder over dev resolving names through reg.
func NewBinder(dev gpu.Device, reg Registry) *Binder {
	return &Binder{dev: dev, reg: reg}
}

// Bind binds every sampler in order, starting at unit 0, and returns the
// sampler uniforms (name -> unit). Unresolved names fall back to the gray
// texture. A structurally invalid entry aborts with ErrInvalidSampler.
func (b *Binder) Bind(samplers shader.Samplers) (shader.Uniforms, error) {
	uniforms := make(shader.Uniforms, len(samplers))
	for unit, s := range samplers {
		tex, err := b.resolve(s)
		if err != nil {
			return nil, err
		}
		b.dev.BindTexture(unit, tex)
		if !s.Params.IsZero() {
			b.dev.SamplerParams(unit, tex, s.Params)
		}
		uniforms[s.Name] = int32(unit)
	}
	return uniforms, nil
}

func (b *Binder) resolve(s shader.Sampler) (gpu.Texture, error) {
	switch src := s.Source.(type) {
	case gpu.Texture:
		if src != nil {
			return src, nil
		}
	case shader.TextureSource:
		if tex := src.Texture(); tex != nil {
			return tex, nil
		}
		return b.fallback(s.Name, "source has no texture")
	case string:
		if tex, ok := b.reg.Get(src); ok {
			return tex, nil
		}
		return b.fallback(s.Name, src)
	}
	return nil, fmt.Errorf("%w: %s has source of type %T", ErrInvalidSampler, s.Name, s.Source)
}

func (b *Binder) fallback(name, ref string) (gpu.Texture, error) {
	logger.Debug("texture not found, using fallback",
		zap.String("sampler", name),
		zap.String("ref", ref),
	)
	return b.reg.Fallback()
}
