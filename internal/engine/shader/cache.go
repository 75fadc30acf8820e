package shader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/engine/gpu"
	"github.com/Faultbox/midgard-render/internal/logger"
)

// ErrUnknownShader is returned for a base shader name with no source.
var ErrUnknownShader = errors.New("unknown shader")

// Compiler builds one program for a base shader and macro set.
type Compiler interface {
	Compile(name string, macros Macros) (gpu.Program, error)
}

// Resolver returns the compiled variant for a base shader and macro set.
type Resolver interface {
	Resolve(name string, macros Macros) (gpu.Program, error)
}

// Cache is a Resolver that compiles each distinct variant once. The same
// name and macro set always resolve to the same program.
type Cache struct {
	compiler Compiler
	programs map[string]gpu.Program
}

// NewCache creates a cache over the given compiler.
func NewCache(c Compiler) *Cache {
	return &Cache{
		compiler: c,
		programs: make(map[string]gpu.Program),
	}
}

// Resolve implements Resolver.
func (c *Cache) Resolve(name string, macros Macros) (gpu.Program, error) {
	key := name + "|" + macros.Key()
	if p, ok := c.programs[key]; ok {
		return p, nil
	}

	p, err := c.compiler.Compile(name, macros)
	if err != nil {
		return nil, fmt.Errorf("compiling %s [%s]: %w", name, macros.Key(), err)
	}
	c.programs[key] = p

	logger.Debug("shader variant compiled",
		zap.String("shader", name),
		zap.String("macros", macros.Key()),
		zap.Int("variants", len(c.programs)),
	)
	return p, nil
}

// Len returns the number of cached variants.
func (c *Cache) Len() int {
	return len(c.programs)
}
