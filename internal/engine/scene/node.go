package scene

import "github.com/Faultbox/midgard-render/internal/engine/shader"

// ShaderState is one layer of shader contributions.
type ShaderState struct {
	Macros   shader.Macros
	Uniforms shader.Uniforms
	Samplers shader.Samplers
}

// Node is the scene-graph object instances belong to. Its visibility
// flags decide which passes see its instances.
type Node struct {
	ID   uint32
	Name string

	SeenByCamera      bool
	SeenByReflections bool
	SeenByPicking     bool
	Selectable        bool
	CastShadows       bool
	// AlphaTestShadows renders shadows with the alpha-tested depth variant.
	AlphaTestShadows bool

	Macros   shader.Macros
	Uniforms shader.Uniforms
	Samplers shader.Samplers
}

// NewNode returns a node visible to every pass.
func NewNode(id uint32, name string) *Node {
	return &Node{
		ID:                id,
		Name:              name,
		SeenByCamera:      true,
		SeenByReflections: true,
		SeenByPicking:     true,
		Selectable:        true,
		CastShadows:       true,
	}
}
