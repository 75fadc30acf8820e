// Package shader holds the layered shader state (macros, uniforms and
// samplers) merged per instance, and the cache that resolves a base shader
// plus a macro set to a compiled variant.
package shader

import (
	"sort"
	"strings"
)

// Macros is a set of compile-time defines selecting a shader permutation.
// A value of "" is a plain flag. Macros values are treated as immutable:
// every operation returns a fresh set.
type Macros map[string]string

// Flags builds a macro set of plain flags.
func Flags(names ...string) Macros {
	m := make(Macros, len(names))
	for _, n := range names {
		m[n] = ""
	}
	return m
}

// Merge combines layers left to right into a new set; later layers override
// earlier ones on key collision. Nil layers are skipped.
func Merge(layers ...Macros) Macros {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Macros, n)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of m with key set to value.
func (m Macros) With(key, value string) Macros {
	out := make(Macros, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

// Has reports whether the macro is defined.
func (m Macros) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Key returns a deterministic encoding of the set, used as a cache key.
func (m Macros) Key() string {
	var b strings.Builder
	for i, k := range m.sortedKeys() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		if v := m[k]; v != "" {
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

// Preamble renders the set as #define lines in key order.
func (m Macros) Preamble() string {
	var b strings.Builder
	for _, k := range m.sortedKeys() {
		b.WriteString("#define ")
		b.WriteString(k)
		if v := m[k]; v != "" {
			b.WriteByte(' ')
			b.WriteString(v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Macros) sortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Well-known macros the pipeline sets.
const (
	FirstPass            = "FIRST_PASS"
	LastPass             = "LAST_PASS"
	AmbientOnly          = "AMBIENT_ONLY"
	IgnoreLights         = "IGNORE_LIGHTS"
	UseClippingPlane     = "USE_CLIPPING_PLANE"
	IgnoreViewProjection = "IGNORE_VIEWPROJECTION"
	AlphaTest            = "ALPHA_TEST"
	LinearDepth          = "LINEAR_DEPTH"
	Picking              = "PICKING"
	Overlay2D            = "OVERLAY_2D"
	Textured             = "TEXTURED"
	Unlit                = "UNLIT"

	UseNormal      = "USE_NORMAL"
	UseTexCoord    = "USE_TEXCOORD"
	UseTexCoord2   = "USE_TEXCOORD2"
	UseVertexColor = "USE_VERTEX_COLOR"
	UseTangent     = "USE_TANGENT"
)

// Base shader names resolved by the pipeline.
const (
	Standard = "standard"
	Depth    = "depth"
	Flat     = "flat"
	Debug    = "debug"
)
