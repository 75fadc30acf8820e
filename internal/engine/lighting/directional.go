package lighting

import (
	"fmt"

	"github.com/Faultbox/midgard-render/internal/engine/camera"
	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/scene"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/engine/shadow"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// UseShadowMap is set on color passes once a shadow map is available.
const UseShadowMap = "USE_SHADOW_MAP"

// ShadowMapSampler is the sampler name of the depth map.
const ShadowMapSampler = "u_shadowMap"

// DirectionalLight is an infinitely distant light, optionally casting
// shadows through a depth map rendered while preparing.
type DirectionalLight struct {
	// Direction points towards the light.
	Direction math.Vec3
	Color     [3]float32
	Strength  float32
	LayerMask uint32

	Shadows          bool
	ShadowResolution int

	target       gpu.Target
	shadowCam    *camera.Camera
	shadowMatrix math.Mat4
	shadowReady  bool
}

// NewSun creates a directional light from longitude/latitude degrees.
func NewSun(longitude, latitude float32) *DirectionalLight {
	return &DirectionalLight{
		Direction:        SunDirection(longitude, latitude),
		Color:            [3]float32{1, 1, 1},
		Strength:         1,
		LayerMask:        camera.AllLayers,
		ShadowResolution: shadow.DefaultResolution,
	}
}

// Position implements scene.Light. Directional lights have no position;
// this is a far point along Direction.
func (l *DirectionalLight) Position() math.Vec3 {
	return l.Direction.Scale(1e4)
}

// Intensity implements scene.Light.
func (l *DirectionalLight) Intensity() float32 { return l.Strength }

// Radius implements scene.Light.
func (l *DirectionalLight) Radius() float32 { return scene.Unbounded }

// Layers implements scene.Light.
func (l *DirectionalLight) Layers() uint32 { return l.LayerMask }

// ShadowTarget returns the depth map, or nil before the first prepare.
func (l *DirectionalLight) ShadowTarget() gpu.Target { return l.target }

func (l *DirectionalLight) shadowed(pass scene.PassKind) bool {
	return l.shadowReady && (pass == scene.PassColor || pass == scene.PassReflection)
}

// Macros implements scene.Light.
func (l *DirectionalLight) Macros(pass scene.PassKind) shader.Macros {
	m := shader.Macros{LightType: "DIRECTIONAL"}
	if l.shadowed(pass) {
		m[UseShadowMap] = ""
	}
	return m
}

// Uniforms implements scene.Light.
func (l *DirectionalLight) Uniforms(pass scene.PassKind) shader.Uniforms {
	u := shader.Uniforms{
		"u_lightDirection": l.Direction.Normalize().Array(),
		"u_lightColor":     scaled(l.Color, l.Strength),
	}
	if l.shadowed(pass) {
		u["u_shadowMatrix"] = l.shadowMatrix
	}
	return u
}

// Samplers implements scene.Light.
func (l *DirectionalLight) Samplers(pass scene.PassKind) shader.Samplers {
	if !l.shadowed(pass) {
		return nil
	}
	return shader.Samplers{{
		Name:   ShadowMapSampler,
		Source: l.target,
		Params: gpu.SamplerParams{MinFilter: gpu.Linear, MagFilter: gpu.Linear, WrapS: gpu.ClampToEdge, WrapT: gpu.ClampToEdge},
	}}
}

// Prepare renders the shadow map for color passes.
func (l *DirectionalLight) Prepare(r scene.TargetRenderer, opts scene.Options) error {
	if !l.Shadows || opts.Pass != scene.PassColor {
		return nil
	}
	bounds, ok := r.Bounds()
	if !ok {
		l.shadowReady = false
		return nil
	}

	if l.target == nil {
		res := l.ShadowResolution
		if res <= 0 {
			res = shadow.DefaultResolution
		}
		t, err := r.NewTarget(gpu.TargetDesc{
			Name:   "sun-shadow",
			Kind:   gpu.Texture2D,
			Depth:  true,
			Width:  res,
			Height: res,
		})
		if err != nil {
			return fmt.Errorf("creating shadow map: %w", err)
		}
		l.target = t
		l.shadowCam = camera.New("sun-shadow")
		l.shadowCam.ClearColor = false
		l.shadowCam.Ortho = true
		l.shadowCam.Aspect = 1
	}

	frame := shadow.DirectionalLightFrame(l.Direction.Normalize(), bounds)
	cam := l.shadowCam
	cam.Eye, cam.Target, cam.Up = frame.Eye, frame.Center, frame.Up
	cam.OrthoSize = frame.HalfSize
	cam.Near, cam.Far = frame.Near, frame.Far
	cam.Layers = l.LayerMask

	if err := r.RenderToTexture(cam, l.target, opts.WithPass(scene.PassShadow)); err != nil {
		return fmt.Errorf("rendering shadow map: %w", err)
	}
	l.shadowMatrix = shadow.BiasMatrix().Mul(cam.ViewProjection())
	l.shadowReady = true
	return nil
}
