package shader

// Uniforms maps uniform names to values: float32, int32, [N]float32 or
// math.Mat4.
type Uniforms map[string]any

// MergeUniforms combines layers left to right into a new map.
func MergeUniforms(layers ...Uniforms) Uniforms {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Uniforms, n)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}
