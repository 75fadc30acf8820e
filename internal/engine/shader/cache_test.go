package shader_test

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-render/internal/engine/gpu/gputest"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

func TestCacheDeterministic(t *testing.T) {
	comp := &gputest.Compiler{}
	cache := shader.NewCache(comp)

	a, err := cache.Resolve(shader.Standard, shader.Macros{"FIRST_PASS": "", "LIGHT_TYPE": "POINT"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := cache.Resolve(shader.Standard, shader.Macros{"LIGHT_TYPE": "POINT", "FIRST_PASS": ""})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if a != b {
		t.Error("same macro set resolved to different programs")
	}
	if len(comp.Compiled) != 1 {
		t.Errorf("compiled %d variants, want 1", len(comp.Compiled))
	}
}

func TestCacheDistinctVariants(t *testing.T) {
	comp := &gputest.Compiler{}
	cache := shader.NewCache(comp)

	a, _ := cache.Resolve(shader.Standard, shader.Flags(shader.FirstPass))
	b, _ := cache.Resolve(shader.Standard, shader.Flags(shader.LastPass))
	c, _ := cache.Resolve(shader.Depth, shader.Flags(shader.FirstPass))

	if a == b || a == c {
		t.Error("distinct variants should not share programs")
	}
	if cache.Len() != 3 {
		t.Errorf("Len = %d, want 3", cache.Len())
	}
}

func TestCacheUnknownShader(t *testing.T) {
	cache := shader.NewCache(&gputest.Compiler{Known: []string{shader.Standard}})

	_, err := cache.Resolve("water", nil)
	if !errors.Is(err, shader.ErrUnknownShader) {
		t.Errorf("err = %v, want ErrUnknownShader", err)
	}
}
