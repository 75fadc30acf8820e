// Package gputest provides a recording gpu.Device and shader compiler for
// exercising the pipeline without a graphics context.
package gputest

import (
	"fmt"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
)

// Texture is an in-memory texture.
type Texture struct {
	desc   gpu.TextureDesc
	Params gpu.SamplerParams
}

// Desc implements gpu.Texture.
func (t *Texture) Desc() gpu.TextureDesc { return t.desc }

// NewTexture returns a named 2D texture.
func NewTexture(name string, w, h int) *Texture {
	return &Texture{desc: gpu.TextureDesc{Name: name, Kind: gpu.Texture2D, Width: w, Height: h}}
}

// Target is an in-memory render target.
type Target struct {
	desc gpu.TargetDesc
	tex  *Texture
}

// Desc implements gpu.Target.
func (t *Target) Desc() gpu.TargetDesc { return t.desc }

// Texture implements gpu.Target.
func (t *Target) Texture() gpu.Texture { return t.tex }

// NewTarget returns a target without going through a device.
func NewTarget(desc gpu.TargetDesc) *Target {
	format := gpu.RGBA8
	if desc.Depth {
		format = gpu.Depth24
	}
	return &Target{
		desc: desc,
		tex:  &Texture{desc: gpu.TextureDesc{Name: desc.Name, Kind: desc.Kind, Format: format, Width: desc.Width, Height: desc.Height}},
	}
}

// Program is a recorded shader variant.
type Program struct {
	name      string
	macros    shader.Macros
	multipass bool
	uniforms  map[string]any
}

// Name implements gpu.Program.
func (p *Program) Name() string { return p.name }

// Multipass implements gpu.Program.
func (p *Program) Multipass() bool { return p.multipass }

// SetUniform implements gpu.Program.
func (p *Program) SetUniform(name string, value any) { p.uniforms[name] = value }

// Macros returns the macro set the variant was compiled with.
func (p *Program) Macros() shader.Macros { return p.macros }

// Compiler builds Programs. Multipass decides the flag per variant; nil
// means every variant supports multipass.
type Compiler struct {
	Multipass func(name string, macros shader.Macros) bool
	// Known restricts the accepted base names when non-empty.
	Known    []string
	Compiled []*Program
}

// Compile implements shader.Compiler.
func (c *Compiler) Compile(name string, macros shader.Macros) (gpu.Program, error) {
	if len(c.Known) > 0 {
		found := false
		for _, k := range c.Known {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", shader.ErrUnknownShader, name)
		}
	}
	multi := true
	if c.Multipass != nil {
		multi = c.Multipass(name, macros)
	}
	p := &Program{name: name, macros: macros, multipass: multi, uniforms: make(map[string]any)}
	c.Compiled = append(c.Compiled, p)
	return p, nil
}

// DrawCall is a snapshot of everything bound when Draw was issued.
type DrawCall struct {
	Program   *Program
	Mesh      *gpu.Mesh
	State     gpu.State
	Uniforms  map[string]any
	Textures  map[int]gpu.Texture
	Target    gpu.Target
	Face      int
	Viewport  gpu.Rect
	PointSize float32
}

// HasMacro reports whether the draw's program was compiled with the macro.
func (d DrawCall) HasMacro(name string) bool {
	return d.Program != nil && d.Program.macros.Has(name)
}

// ClearCall records a Clear.
type ClearCall struct {
	Mask      gpu.ClearMask
	Color     gpu.Color
	Scissor   gpu.Rect
	ScissorOn bool
	Target    gpu.Target
	Face      int
}

// TargetBind records a BindTarget.
type TargetBind struct {
	Target gpu.Target
	Face   int
}

// Device records calls and tracks state like a real context would.
type Device struct {
	Width, Height int

	Draws       []DrawCall
	Clears      []ClearCall
	Viewports   []gpu.Rect
	TargetBinds []TargetBind
	Textures    []*Texture
	Targets     []*Target

	state      gpu.State
	scissorOn  bool
	scissor    gpu.Rect
	viewport   gpu.Rect
	clearColor gpu.Color
	pointSize  float32
	program    *Program
	target     gpu.Target
	face       int
	bound      map[int]gpu.Texture
}

// NewDevice returns a device with the given canvas size in baseline state.
func NewDevice(w, h int) *Device {
	return &Device{
		Width:     w,
		Height:    h,
		state:     gpu.Baseline(),
		viewport:  gpu.Rect{W: w, H: h},
		pointSize: 1,
		bound:     make(map[int]gpu.Texture),
	}
}

// State returns the current fixed-function state.
func (d *Device) State() gpu.State { return d.state }

// ScissorEnabled reports whether the scissor test is on.
func (d *Device) ScissorEnabled() bool { return d.scissorOn }

// CurrentViewport returns the current viewport.
func (d *Device) CurrentViewport() gpu.Rect { return d.viewport }

// CurrentTarget returns the bound target and face.
func (d *Device) CurrentTarget() (gpu.Target, int) { return d.target, d.face }

// Reset clears recorded calls but keeps state.
func (d *Device) Reset() {
	d.Draws = nil
	d.Clears = nil
	d.Viewports = nil
	d.TargetBinds = nil
}

// CanvasSize implements gpu.Device.
func (d *Device) CanvasSize() (int, int) { return d.Width, d.Height }

// Enable implements gpu.Device.
func (d *Device) Enable(c gpu.Capability, on bool) {
	switch c {
	case gpu.CullFace:
		d.state.CullFace = on
	case gpu.DepthTest:
		d.state.DepthTest = on
	case gpu.Blend:
		d.state.Blend = on
	case gpu.ScissorTest:
		d.scissorOn = on
	}
}

// DepthMask implements gpu.Device.
func (d *Device) DepthMask(write bool) { d.state.DepthWrite = write }

// DepthFunc implements gpu.Device.
func (d *Device) DepthFunc(fn gpu.Compare) { d.state.DepthFunc = fn }

// BlendFunc implements gpu.Device.
func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.state.BlendSrc, d.state.BlendDst = src, dst
}

// FrontFace implements gpu.Device.
func (d *Device) FrontFace(w gpu.Winding) { d.state.FrontFace = w }

// CullFace implements gpu.Device.
func (d *Device) CullFace(f gpu.Face) { d.state.Cull = f }

// Viewport implements gpu.Device.
func (d *Device) Viewport(r gpu.Rect) {
	d.viewport = r
	d.Viewports = append(d.Viewports, r)
}

// Scissor implements gpu.Device.
func (d *Device) Scissor(r gpu.Rect) { d.scissor = r }

// ClearColor implements gpu.Device.
func (d *Device) ClearColor(c gpu.Color) { d.clearColor = c }

// Clear implements gpu.Device.
func (d *Device) Clear(mask gpu.ClearMask) {
	d.Clears = append(d.Clears, ClearCall{
		Mask:      mask,
		Color:     d.clearColor,
		Scissor:   d.scissor,
		ScissorOn: d.scissorOn,
		Target:    d.target,
		Face:      d.face,
	})
}

// PointSize implements gpu.Device.
func (d *Device) PointSize(size float32) { d.pointSize = size }

// BindTarget implements gpu.Device.
func (d *Device) BindTarget(t gpu.Target, face int) {
	d.target, d.face = t, face
	d.TargetBinds = append(d.TargetBinds, TargetBind{Target: t, Face: face})
}

// BindTexture implements gpu.Device.
func (d *Device) BindTexture(unit int, t gpu.Texture) { d.bound[unit] = t }

// SamplerParams implements gpu.Device.
func (d *Device) SamplerParams(_ int, t gpu.Texture, p gpu.SamplerParams) {
	if tex, ok := t.(*Texture); ok {
		tex.Params = p
	}
}

// UseProgram implements gpu.Device.
func (d *Device) UseProgram(p gpu.Program) {
	prog, _ := p.(*Program)
	if prog != nil {
		prog.uniforms = make(map[string]any)
	}
	d.program = prog
}

// Draw implements gpu.Device.
func (d *Device) Draw(m *gpu.Mesh) {
	call := DrawCall{
		Program:   d.program,
		Mesh:      m,
		State:     d.state,
		Textures:  make(map[int]gpu.Texture, len(d.bound)),
		Target:    d.target,
		Face:      d.face,
		Viewport:  d.viewport,
		PointSize: d.pointSize,
	}
	if d.program != nil {
		call.Uniforms = make(map[string]any, len(d.program.uniforms))
		for k, v := range d.program.uniforms {
			call.Uniforms[k] = v
		}
	}
	for k, v := range d.bound {
		call.Textures[k] = v
	}
	d.Draws = append(d.Draws, call)
}

// NewTexture implements gpu.Device.
func (d *Device) NewTexture(desc gpu.TextureDesc, _ []byte) (gpu.Texture, error) {
	t := &Texture{desc: desc}
	d.Textures = append(d.Textures, t)
	return t, nil
}

// NewTarget implements gpu.Device.
func (d *Device) NewTarget(desc gpu.TargetDesc) (gpu.Target, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", desc.Width, desc.Height)
	}
	t := NewTarget(desc)
	d.Targets = append(d.Targets, t)
	return t, nil
}

// DrawsWithProgram returns the draws whose program has the given base name.
func (d *Device) DrawsWithProgram(name string) []DrawCall {
	var out []DrawCall
	for _, c := range d.Draws {
		if c.Program != nil && c.Program.name == name {
			out = append(out, c)
		}
	}
	return out
}

// DrawsOf returns the draws that used mesh m.
func (d *Device) DrawsOf(m *gpu.Mesh) []DrawCall {
	var out []DrawCall
	for _, c := range d.Draws {
		if c.Mesh == m {
			out = append(out, c)
		}
	}
	return out
}
