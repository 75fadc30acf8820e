package shader

import "github.com/Faultbox/midgard-render/internal/engine/gpu"

// TextureSource is implemented by objects that expose a texture, such as
// render targets.
type TextureSource interface {
	Texture() gpu.Texture
}

// Sampler binds a texture to a named sampler uniform. Source is a
// gpu.Texture, a registry name (string) or a TextureSource.
type Sampler struct {
	Name   string
	Source any
	Params gpu.SamplerParams
}

// Samplers is an ordered sampler list; order decides texture units.
type Samplers []Sampler

// Index returns the position of name, or -1.
func (s Samplers) Index(name string) int {
	for i := range s {
		if s[i].Name == name {
			return i
		}
	}
	return -1
}

// MergeSamplers combines layers left to right into a new list. A later
// sampler with an existing name replaces it in place, so units keep the
// first-insertion order.
func MergeSamplers(layers ...Samplers) Samplers {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Samplers, 0, n)
	for _, l := range layers {
		for _, s := range l {
			if i := out.Index(s.Name); i >= 0 {
				out[i] = s
				continue
			}
			out = append(out, s)
		}
	}
	return out
}
