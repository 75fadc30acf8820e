package glgpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
)

// Vertex attribute locations shared with the embedded shaders.
const (
	attribPosition = iota
	attribNormal
	attribUV
	attribUV2
	attribColor
	attribTangent
)

// meshBuffers is the uploaded form of a gpu.Mesh: one VBO per stream.
type meshBuffers struct {
	vao         uint32
	vbos        []uint32
	ebo         uint32
	vertexCount int32
	indexCount  int32
	version     uint64
}

func uploadMesh(m *gpu.Mesh) *meshBuffers {
	buf := &meshBuffers{
		vertexCount: int32(m.VertexCount()),
		version:     m.Version,
	}
	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	buf.stream(attribPosition, 3, m.Positions)
	buf.stream(attribNormal, 3, m.Normals)
	buf.stream(attribUV, 2, m.UVs)
	buf.stream(attribUV2, 2, m.UV2s)
	buf.stream(attribColor, 4, m.Colors)
	buf.stream(attribTangent, 4, m.Tangents)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		buf.indexCount = int32(len(m.Indices))
	}

	gl.BindVertexArray(0)
	return buf
}

func (b *meshBuffers) stream(loc uint32, size int32, data []float32) {
	if len(data) == 0 {
		gl.DisableVertexAttribArray(loc)
		return
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	b.vbos = append(b.vbos, vbo)
}

func (b *meshBuffers) destroy() {
	if len(b.vbos) > 0 {
		gl.DeleteBuffers(int32(len(b.vbos)), &b.vbos[0])
		b.vbos = nil
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}
