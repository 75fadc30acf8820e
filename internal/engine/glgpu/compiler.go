package glgpu

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/engine/shader"
	"github.com/Faultbox/midgard-render/internal/logger"
)

//go:embed shaders/*.vert shaders/*.frag
var sources embed.FS

// multipassShaders accumulate lights in additive passes.
var multipassShaders = map[string]bool{
	shader.Standard: true,
}

// Compiler builds program variants from the embedded GLSL sources.
type Compiler struct {
	log *zap.Logger
}

// NewCompiler returns a compiler for the embedded shaders.
func NewCompiler() *Compiler {
	return &Compiler{log: logger.With(zap.String("component", "shader-compiler"))}
}

// Compile implements shader.Compiler.
func (c *Compiler) Compile(name string, macros shader.Macros) (gpu.Program, error) {
	vert, frag, err := Source(name)
	if err != nil {
		return nil, err
	}
	preamble := macros.Preamble()
	id, err := linkProgram(inject(vert, preamble), inject(frag, preamble))
	if err != nil {
		return nil, fmt.Errorf("compiling %s [%s]: %w", name, macros.Key(), err)
	}
	c.log.Debug("program linked", zap.String("shader", name), zap.String("macros", macros.Key()))
	return &Program{
		id:        id,
		name:      name,
		multipass: multipassShaders[name],
		locations: make(map[string]int32),
		log:       c.log,
	}, nil
}

// Source returns the vertex and fragment sources of a base shader.
func Source(name string) (vert, frag string, err error) {
	v, err := sources.ReadFile("shaders/" + name + ".vert")
	if err != nil {
		return "", "", sourceError(name, err)
	}
	f, err := sources.ReadFile("shaders/" + name + ".frag")
	if err != nil {
		return "", "", sourceError(name, err)
	}
	return string(v), string(f), nil
}

func sourceError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", shader.ErrUnknownShader, name)
	}
	return fmt.Errorf("reading %s: %w", name, err)
}

// inject places the #define preamble right after the #version line.
func inject(src, preamble string) string {
	if preamble == "" {
		return src
	}
	if strings.HasPrefix(src, "#version") {
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			return src[:i+1] + preamble + src[i+1:]
		}
		return src + "\n" + preamble
	}
	return preamble + src
}
