// Package gpu defines the graphics device abstraction the render pipeline
// drives, plus the baseline state guard applied at pass boundaries.
package gpu

// Capability is a toggleable pipeline capability.
type Capability int

const (
	CullFace Capability = iota
	DepthTest
	Blend
	ScissorTest
)

// Compare is a depth comparison function.
type Compare int

const (
	Less Compare = iota
	LessEqual
	Equal
	Greater
	GreaterEqual
	NotEqual
	Always
	Never
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	Zero BlendFactor = iota
	One
	SrcAlpha
	OneMinusSrcAlpha
	SrcColor
	DstColor
	OneMinusSrcColor
)

// Winding is the front-face vertex winding.
type Winding int

const (
	CCW Winding = iota
	CW
)

// Face selects which faces are culled.
type Face int

const (
	Back Face = iota
	Front
	FrontAndBack
)

// ClearMask selects buffers to clear.
type ClearMask uint8

const (
	ClearColorBuffer ClearMask = 1 << iota
	ClearDepthBuffer
)

// Rect is a pixel rectangle with origin at the bottom-left.
type Rect struct {
	X, Y, W, H int
}

// Aspect returns W/H, or 1 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.W <= 0 || r.H <= 0 {
		return 1
	}
	return float32(r.W) / float32(r.H)
}

// Color is a linear RGBA color.
type Color [4]float32

// Program is a compiled shader variant.
type Program interface {
	// Name is the base shader identifier the variant was compiled from.
	Name() string
	// Multipass reports whether the variant accumulates additional lights
	// in further additive passes.
	Multipass() bool
	// SetUniform binds a value to the named uniform. Unknown names are ignored.
	SetUniform(name string, value any)
}

// Device is the process-wide graphics state the pipeline writes to.
type Device interface {
	// CanvasSize returns the size of the default framebuffer in pixels.
	CanvasSize() (width, height int)

	Enable(c Capability, on bool)
	DepthMask(write bool)
	DepthFunc(fn Compare)
	BlendFunc(src, dst BlendFactor)
	FrontFace(w Winding)
	CullFace(f Face)
	Viewport(r Rect)
	Scissor(r Rect)
	ClearColor(c Color)
	Clear(mask ClearMask)
	PointSize(size float32)

	// BindTarget makes t the current render target. A nil target selects the
	// default framebuffer. face picks the cube face for cubemap targets.
	BindTarget(t Target, face int)
	BindTexture(unit int, t Texture)
	SamplerParams(unit int, t Texture, p SamplerParams)

	UseProgram(p Program)
	Draw(m *Mesh)

	NewTexture(desc TextureDesc, pixels []byte) (Texture, error)
	NewTarget(desc TargetDesc) (Target, error)
}
