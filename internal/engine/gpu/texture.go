package gpu

// TextureKind distinguishes 2D textures from cubemaps.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
)

// Format is a texel storage format.
type Format int

const (
	RGBA8 Format = iota
	Depth24
	R32F
)

// Filter is a texture minification/magnification filter. FilterDefault
// leaves the texture's own setting untouched.
type Filter int

const (
	FilterDefault Filter = iota
	Nearest
	Linear
	LinearMipmapLinear
)

// Wrap is a texture coordinate wrap mode. WrapDefault leaves the texture's
// own setting untouched.
type Wrap int

const (
	WrapDefault Wrap = iota
	Repeat
	ClampToEdge
	MirroredRepeat
)

// SamplerParams are per-binding filter and wrap overrides.
type SamplerParams struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
}

// IsZero reports whether no override is requested.
func (p SamplerParams) IsZero() bool {
	return p == SamplerParams{}
}

// TextureDesc describes a texture.
type TextureDesc struct {
	Name   string
	Kind   TextureKind
	Format Format
	Width  int
	Height int
}

// Texture is a GPU texture.
type Texture interface {
	Desc() TextureDesc
}

// TargetDesc describes an offscreen render target.
type TargetDesc struct {
	Name string
	Kind TextureKind
	// Depth selects a depth-only target (shadow maps).
	Depth  bool
	Width  int
	Height int
}

// Target is an offscreen render target backed by a texture.
type Target interface {
	Desc() TargetDesc
	Texture() Texture
}

// IsCube reports whether the target has six faces.
func (d TargetDesc) IsCube() bool {
	return d.Kind == TextureCube
}

// Rect returns the full pixel rectangle of the target.
func (d TargetDesc) Rect() Rect {
	return Rect{W: d.Width, H: d.Height}
}
