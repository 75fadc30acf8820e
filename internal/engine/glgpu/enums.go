package glgpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
)

func compareFunc(fn gpu.Compare) uint32 {
	switch fn {
	case gpu.LessEqual:
		return gl.LEQUAL
	case gpu.Equal:
		return gl.EQUAL
	case gpu.Greater:
		return gl.GREATER
	case gpu.GreaterEqual:
		return gl.GEQUAL
	case gpu.NotEqual:
		return gl.NOTEQUAL
	case gpu.Always:
		return gl.ALWAYS
	case gpu.Never:
		return gl.NEVER
	default:
		return gl.LESS
	}
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.Zero:
		return gl.ZERO
	case gpu.One:
		return gl.ONE
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.SrcColor:
		return gl.SRC_COLOR
	case gpu.DstColor:
		return gl.DST_COLOR
	case gpu.OneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	default:
		return gl.ONE_MINUS_SRC_ALPHA
	}
}

func filter(f gpu.Filter) int32 {
	switch f {
	case gpu.Nearest:
		return gl.NEAREST
	case gpu.LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func wrap(w gpu.Wrap) int32 {
	switch w {
	case gpu.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.MirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
