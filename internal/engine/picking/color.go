// Package picking provides object picking: per-node id colors for the GPU
// picking pass and ray casting for CPU-side hit tests.
package picking

import "github.com/Faultbox/midgard-render/internal/engine/gpu"

// Allocator hands out a unique color per node. Colors come from a
// monotonically increasing counter and stay stable for the node's life.
type Allocator struct {
	next   uint32
	colors map[uint32]uint32
	nodes  map[uint32]uint32
}

// NewAllocator returns an empty allocator. Id 0 is reserved for background.
func NewAllocator() *Allocator {
	return &Allocator{
		next:   1,
		colors: make(map[uint32]uint32),
		nodes:  make(map[uint32]uint32),
	}
}

// ColorFor returns the picking color of a node, allocating one on first use.
func (a *Allocator) ColorFor(nodeID uint32) gpu.Color {
	id, ok := a.colors[nodeID]
	if !ok {
		id = a.next
		a.next++
		a.colors[nodeID] = id
		a.nodes[id] = nodeID
	}
	return Encode(id)
}

// Lookup returns the node whose color was read back as rgba.
func (a *Allocator) Lookup(rgba [4]byte) (uint32, bool) {
	id := uint32(rgba[0]) | uint32(rgba[1])<<8 | uint32(rgba[2])<<16
	if id == 0 {
		return 0, false
	}
	node, ok := a.nodes[id]
	return node, ok
}

// Len returns the number of allocated colors.
func (a *Allocator) Len() int {
	return len(a.colors)
}

// Encode packs a 24-bit id into an opaque color.
func Encode(id uint32) gpu.Color {
	return gpu.Color{
		float32(id&0xFF) / 255,
		float32((id>>8)&0xFF) / 255,
		float32((id>>16)&0xFF) / 255,
		1,
	}
}
