// Package glgpu implements gpu.Device on an OpenGL 4.1 core context.
package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/logger"
)

// SizeFunc reports the drawable size of the default framebuffer.
type SizeFunc func() (width, height int)

// Device drives the current OpenGL context. It must be used from the
// thread that owns the context.
type Device struct {
	size    SizeFunc
	log     *zap.Logger
	meshes  map[*gpu.Mesh]*meshBuffers
	program *Program
	target  *Target
	face    int

	pointSize float32
}

// New loads the GL entry points and returns a device in baseline state.
func New(size SizeFunc) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	d := &Device{
		size:   size,
		log:    logger.With(zap.String("component", "glgpu")),
		meshes: make(map[*gpu.Mesh]*meshBuffers),

		pointSize: 1,
	}
	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gpu.Reset(d)
	return d, nil
}

// CanvasSize implements gpu.Device.
func (d *Device) CanvasSize() (int, int) {
	return d.size()
}

// Enable implements gpu.Device.
func (d *Device) Enable(c gpu.Capability, on bool) {
	var capability uint32
	switch c {
	case gpu.CullFace:
		capability = gl.CULL_FACE
	case gpu.DepthTest:
		capability = gl.DEPTH_TEST
	case gpu.Blend:
		capability = gl.BLEND
	case gpu.ScissorTest:
		capability = gl.SCISSOR_TEST
	default:
		return
	}
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// DepthMask implements gpu.Device.
func (d *Device) DepthMask(write bool) { gl.DepthMask(write) }

// DepthFunc implements gpu.Device.
func (d *Device) DepthFunc(fn gpu.Compare) { gl.DepthFunc(compareFunc(fn)) }

// BlendFunc implements gpu.Device.
func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

// FrontFace implements gpu.Device.
func (d *Device) FrontFace(w gpu.Winding) {
	if w == gpu.CW {
		gl.FrontFace(gl.CW)
		return
	}
	gl.FrontFace(gl.CCW)
}

// CullFace implements gpu.Device.
func (d *Device) CullFace(f gpu.Face) {
	switch f {
	case gpu.Front:
		gl.CullFace(gl.FRONT)
	case gpu.FrontAndBack:
		gl.CullFace(gl.FRONT_AND_BACK)
	default:
		gl.CullFace(gl.BACK)
	}
}

// Viewport implements gpu.Device.
func (d *Device) Viewport(r gpu.Rect) {
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))
}

// Scissor implements gpu.Device.
func (d *Device) Scissor(r gpu.Rect) {
	gl.Scissor(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))
}

// ClearColor implements gpu.Device.
func (d *Device) ClearColor(c gpu.Color) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

// Clear implements gpu.Device.
func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

// PointSize implements gpu.Device.
func (d *Device) PointSize(size float32) {
	d.pointSize = size
	gl.PointSize(size)
	if d.program != nil {
		d.program.SetUniform("u_pointSize", size)
	}
}

// BindTarget implements gpu.Device. Cubemap faces are attached on bind.
func (d *Device) BindTarget(t gpu.Target, face int) {
	if t == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		d.target, d.face = nil, 0
		return
	}
	tgt, ok := t.(*Target)
	if !ok {
		d.log.Error("foreign render target", zap.String("target", t.Desc().Name))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, tgt.fbo)
	if tgt.desc.IsCube() {
		tgt.attachFace(face)
	}
	d.target, d.face = tgt, face
}

// BindTexture implements gpu.Device.
func (d *Device) BindTexture(unit int, t gpu.Texture) {
	tex, ok := t.(*Texture)
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(tex.glTarget(), tex.id)
}

// SamplerParams implements gpu.Device. The texture must be bound to unit.
func (d *Device) SamplerParams(unit int, t gpu.Texture, p gpu.SamplerParams) {
	tex, ok := t.(*Texture)
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	target := tex.glTarget()
	if p.MinFilter != gpu.FilterDefault {
		gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, filter(p.MinFilter))
	}
	if p.MagFilter != gpu.FilterDefault {
		mag := p.MagFilter
		if mag == gpu.LinearMipmapLinear {
			mag = gpu.Linear
		}
		gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, filter(mag))
	}
	if p.WrapS != gpu.WrapDefault {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap(p.WrapS))
	}
	if p.WrapT != gpu.WrapDefault {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap(p.WrapT))
	}
}

// UseProgram implements gpu.Device.
func (d *Device) UseProgram(p gpu.Program) {
	prog, ok := p.(*Program)
	if !ok {
		gl.UseProgram(0)
		d.program = nil
		return
	}
	gl.UseProgram(prog.id)
	prog.SetUniform("u_pointSize", d.pointSize)
	d.program = prog
}

// Draw implements gpu.Device. Meshes are uploaded on first draw and again
// whenever their Version changes.
func (d *Device) Draw(m *gpu.Mesh) {
	if m == nil || m.VertexCount() == 0 {
		return
	}
	buf := d.meshes[m]
	if buf == nil || buf.version != m.Version {
		if buf != nil {
			buf.destroy()
		}
		buf = uploadMesh(m)
		d.meshes[m] = buf
	}

	gl.BindVertexArray(buf.vao)
	mode := primitive(m.Mode)
	if buf.indexCount > 0 {
		gl.DrawElementsWithOffset(mode, buf.indexCount, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(mode, 0, buf.vertexCount)
	}
	gl.BindVertexArray(0)
}

// Release frees the GPU buffers of m, if any.
func (d *Device) Release(m *gpu.Mesh) {
	if buf, ok := d.meshes[m]; ok {
		buf.destroy()
		delete(d.meshes, m)
	}
}

// ReadPixels reads the RGBA pixels of r from the bound target. Rows are
// bottom-up as OpenGL returns them.
func (d *Device) ReadPixels(r gpu.Rect) []byte {
	pixels := make([]byte, r.W*r.H*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Close releases every cached mesh.
func (d *Device) Close() {
	for m, buf := range d.meshes {
		buf.destroy()
		delete(d.meshes, m)
	}
}
