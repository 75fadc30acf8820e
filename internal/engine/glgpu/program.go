package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/pkg/math"
)

// Program is a linked shader variant with a uniform location cache.
type Program struct {
	id        uint32
	name      string
	multipass bool
	locations map[string]int32
	log       *zap.Logger
}

// Name implements gpu.Program.
func (p *Program) Name() string { return p.name }

// Multipass implements gpu.Program.
func (p *Program) Multipass() bool { return p.multipass }

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetUniform implements gpu.Program. The program must be in use. Names the
// linker optimized away are ignored.
func (p *Program) SetUniform(name string, value any) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case int:
		gl.Uniform1i(loc, int32(v))
	case uint32:
		gl.Uniform1i(loc, int32(v))
	case bool:
		var b int32
		if v {
			b = 1
		}
		gl.Uniform1i(loc, b)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case math.Vec2:
		gl.Uniform2f(loc, v.X, v.Y)
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case math.Vec3:
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case math.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case gpu.Color:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case math.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		p.log.Debug("unsupported uniform type",
			zap.String("program", p.name),
			zap.String("uniform", name),
			zap.String("type", fmt.Sprintf("%T", value)),
		)
	}
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// linkProgram compiles vertex and fragment sources and links them.
func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileStage(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}
	return program, nil
}

func compileStage(source string, stage uint32, name string) (uint32, error) {
	sh := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(sh, logLen, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return sh, nil
}
