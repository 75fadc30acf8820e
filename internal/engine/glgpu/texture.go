package glgpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
)

// ErrIncompleteTarget is returned when a framebuffer fails the completeness
// check.
var ErrIncompleteTarget = errors.New("framebuffer incomplete")

// Texture is a GL texture object.
type Texture struct {
	id   uint32
	desc gpu.TextureDesc
}

// Desc implements gpu.Texture.
func (t *Texture) Desc() gpu.TextureDesc { return t.desc }

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) glTarget() uint32 {
	if t.desc.Kind == gpu.TextureCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

// Destroy deletes the texture.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// NewTexture implements gpu.Device. pixels are tightly packed RGBA8 rows
// for 2D textures, or six consecutive faces for cubemaps; nil allocates
// uninitialized storage.
func (d *Device) NewTexture(desc gpu.TextureDesc, pixels []byte) (gpu.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", desc.Width, desc.Height)
	}
	t := &Texture{desc: desc}
	gl.GenTextures(1, &t.id)
	target := t.glTarget()
	gl.BindTexture(target, t.id)

	internal, format, typ := texelFormat(desc.Format)
	w, h := int32(desc.Width), int32(desc.Height)
	if desc.Kind == gpu.TextureCube {
		faceSize := desc.Width * desc.Height * 4
		for face := 0; face < 6; face++ {
			var ptr unsafe.Pointer
			if len(pixels) >= (face+1)*faceSize {
				ptr = gl.Ptr(pixels[face*faceSize:])
			}
			gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, internal, w, h, 0, format, typ, ptr)
		}
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	} else {
		var ptr unsafe.Pointer
		if len(pixels) > 0 {
			ptr = gl.Ptr(pixels)
		}
		gl.TexImage2D(target, 0, internal, w, h, 0, format, typ, ptr)
	}

	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if desc.Kind == gpu.TextureCube {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(target, 0)
	return t, nil
}

// Target is a framebuffer with a color or depth texture attachment.
type Target struct {
	fbo      uint32
	depthRBO uint32
	tex      *Texture
	desc     gpu.TargetDesc
}

// Desc implements gpu.Target.
func (t *Target) Desc() gpu.TargetDesc { return t.desc }

// Texture implements gpu.Target.
func (t *Target) Texture() gpu.Texture { return t.tex }

// NewTarget implements gpu.Device. 2D depth targets are shadow maps with a
// comparison sampler; cube depth targets store linear distance in an R32F
// color cube.
func (d *Device) NewTarget(desc gpu.TargetDesc) (gpu.Target, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", desc.Width, desc.Height)
	}
	t := &Target{desc: desc}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	var err error
	switch {
	case desc.Depth && !desc.IsCube():
		err = t.createShadowMap()
	case desc.IsCube():
		err = t.createCube()
	default:
		err = t.createColor()
	}

	d.restoreBinding()
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("creating target %q: %w", desc.Name, err)
	}
	return t, nil
}

func (d *Device) restoreBinding() {
	if d.target != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, d.target.fbo)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (t *Target) newTexture(kind gpu.TextureKind, format gpu.Format) {
	t.tex = &Texture{desc: gpu.TextureDesc{
		Name:   t.desc.Name,
		Kind:   kind,
		Format: format,
		Width:  t.desc.Width,
		Height: t.desc.Height,
	}}
	gl.GenTextures(1, &t.tex.id)
	gl.BindTexture(t.tex.glTarget(), t.tex.id)
}

func (t *Target) attachDepthBuffer() {
	gl.GenRenderbuffers(1, &t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(t.desc.Width), int32(t.desc.Height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)
}

func (t *Target) createColor() error {
	t.newTexture(gpu.Texture2D, gpu.RGBA8)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.desc.Width), int32(t.desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.tex.id, 0)
	t.attachDepthBuffer()
	return checkComplete()
}

func (t *Target) createShadowMap() error {
	t.newTexture(gpu.Texture2D, gpu.Depth24)
	w, h := int32(t.desc.Width), int32(t.desc.Height)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, w, h, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Outside the light frustum reads as fully lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, t.tex.id, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	return checkComplete()
}

func (t *Target) createCube() error {
	format := gpu.RGBA8
	if t.desc.Depth {
		format = gpu.R32F
	}
	t.newTexture(gpu.TextureCube, format)
	internal, pixFormat, typ := texelFormat(format)
	w, h := int32(t.desc.Width), int32(t.desc.Height)
	for face := uint32(0); face < 6; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, internal, w, h, 0, pixFormat, typ, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	t.attachFace(0)
	t.attachDepthBuffer()
	return checkComplete()
}

func (t *Target) attachFace(face int) {
	if face < 0 || face > 5 {
		face = 0
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), t.tex.id, 0)
}

func checkComplete() error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: 0x%x", ErrIncompleteTarget, status)
	}
	return nil
}

// Destroy releases the framebuffer and its attachments.
func (t *Target) Destroy() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
	if t.tex != nil {
		t.tex.Destroy()
	}
}

func texelFormat(f gpu.Format) (internal int32, format, typ uint32) {
	switch f {
	case gpu.Depth24:
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.FLOAT
	case gpu.R32F:
		return gl.R32F, gl.RED, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}
