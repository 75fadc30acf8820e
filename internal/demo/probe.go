package demo

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/renderer"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/pkg/math"
)

const (
	probeSize  = 128
	probeNear  = 0.1
	probeFar   = 200
	probeEvery = 30
)

// Probe is a scene observer that refreshes an environment cubemap during
// the reflection phase of a frame. It alternates between two cubemaps so
// the published one is never the one being rendered.
type Probe struct {
	scene.NopObserver

	Position math.Vec3
	// Every re-renders the cubemap every N frames; 0 renders once.
	Every int

	r       *renderer.Renderer
	opts    scene.Options
	targets [2]gpu.Target
	front   int
	log     *zap.Logger
}

// NewProbe returns a probe at pos rendering through r.
func NewProbe(r *renderer.Renderer, pos math.Vec3, opts scene.Options, log *zap.Logger) *Probe {
	opts.Pass = scene.PassReflection
	opts.DebugBounds = false
	return &Probe{Position: pos, Every: probeEvery, r: r, opts: opts, log: log}
}

// Target returns the cubemap, or nil before the first render.
func (p *Probe) Target() gpu.Target {
	return p.targets[p.front]
}

// RenderReflections implements scene.Observer.
func (p *Probe) RenderReflections(s *scene.Scene) {
	front := p.targets[p.front]
	due := front == nil || (p.Every > 0 && s.Frame%uint64(p.Every) == 0)
	if !due {
		return
	}
	back := 1 - p.front
	if front == nil {
		back = p.front
	}
	target, err := p.r.RenderToCubemap(nil, p.Position, probeSize, p.targets[back], p.opts, probeNear, probeFar)
	if err != nil {
		p.log.Error("environment probe failed", zap.Error(err))
		return
	}
	p.targets[back] = target
	p.front = back
	s.Environment = target
}
