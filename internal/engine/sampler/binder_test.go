package sampler

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/gpu/gputest"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/engine/texture"
)

func newBinder() (*Binder, *gputest.Device, *texture.Registry) {
	dev := gputest.NewDevice(64, 64)
	reg := texture.NewRegistry(dev)
	return NewBinder(dev, reg), dev, reg
}

func TestBindSequentialUnits(t *testing.T) {
	b, dev, reg := newBinder()
	diffuse := gputest.NewTexture("diffuse", 8, 8)
	reg.Add("normal", gputest.NewTexture("normal", 8, 8))
	target := gputest.NewTarget(gpu.TargetDesc{Name: "rt", Width: 4, Height: 4})

	uniforms, err := b.Bind(shader.Samplers{
		{Name: "u_diffuse", Source: diffuse},
		{Name: "u_normal", Source: "normal"},
		{Name: "u_reflection", Source: target},
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	want := map[string]int32{"u_diffuse": 0, "u_normal": 1, "u_reflection": 2}
	for name, unit := range want {
		if uniforms[name] != unit {
			t.Errorf("%s unit = %v, want %d", name, uniforms[name], unit)
		}
	}

	dev.UseProgram(nil)
	dev.Draw(gpu.NewQuad())
	bound := dev.Draws[0].Textures
	if bound[0] != diffuse || bound[2] != target.Texture() {
		t.Errorf("bound textures = %v", bound)
	}
}

func TestBindMissingFallsBack(t *testing.T) {
	b, dev, reg := newBinder()

	if _, err := b.Bind(shader.Samplers{{Name: "u_diffuse", Source: "missing.png"}}); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	fallback, _ := reg.Fallback()
	dev.Draw(gpu.NewQuad())
	if dev.Draws[0].Textures[0] != fallback {
		t.Error("missing texture did not fall back to gray")
	}
}

func TestBindInvalidSource(t *testing.T) {
	b, _, _ := newBinder()

	tests := []struct {
		name   string
		source any
	}{
		{"int", 42},
		{"nil", nil},
		{"struct", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Bind(shader.Samplers{{Name: "u_bad", Source: tt.source}})
			if !errors.Is(err, ErrInvalidSampler) {
				t.Errorf("err = %v, want ErrInvalidSampler", err)
			}
		})
	}
}

func TestBindAppliesParams(t *testing.T) {
	b, _, _ := newBinder()
	tex := gputest.NewTexture("t", 2, 2)
	params := gpu.SamplerParams{MinFilter: gpu.Nearest, MagFilter: gpu.Nearest, WrapS: gpu.ClampToEdge}

	if _, err := b.Bind(shader.Samplers{{Name: "u_t", Source: tex, Params: params}}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if tex.Params != params {
		t.Errorf("params = %+v, want %+v", tex.Params, params)
	}
}
