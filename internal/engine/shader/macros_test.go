package shader

import "testing"

func TestMergePrecedence(t *testing.T) {
	node := Macros{"A": "node", "B": "node"}
	material := Macros{"B": "material", "C": "material"}
	instance := Macros{"C": "instance"}

	got := Merge(node, material, instance)

	want := Macros{"A": "node", "B": "material", "C": "instance"}
	if got.Key() != want.Key() {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := Macros{"A": ""}
	merged := Merge(base, Flags("B"))
	merged["Z"] = ""

	if base.Has("B") || base.Has("Z") {
		t.Errorf("source layer mutated: %v", base)
	}
}

func TestMergeSkipsNil(t *testing.T) {
	got := Merge(nil, Flags("X"), nil)
	if len(got) != 1 || !got.Has("X") {
		t.Errorf("Merge with nil layers = %v", got)
	}
}

func TestWithCopies(t *testing.T) {
	a := Flags("A")
	b := a.With("B", "2")
	if a.Has("B") {
		t.Error("With mutated the receiver")
	}
	if b["B"] != "2" || !b.Has("A") {
		t.Errorf("With = %v", b)
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Macros{"Z": "", "A": "1", "M": ""}
	b := Macros{"M": "", "Z": "", "A": "1"}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "A=1;M;Z" {
		t.Errorf("Key = %q", a.Key())
	}
}

func TestPreamble(t *testing.T) {
	got := Macros{"LIGHT_TYPE": "POINT", "FIRST_PASS": ""}.Preamble()
	want := "#define FIRST_PASS\n#define LIGHT_TYPE POINT\n"
	if got != want {
		t.Errorf("Preamble = %q, want %q", got, want)
	}
}

func TestMergeUniforms(t *testing.T) {
	got := MergeUniforms(Uniforms{"u_a": float32(1), "u_b": float32(1)}, Uniforms{"u_b": float32(2)})
	if got["u_a"] != float32(1) || got["u_b"] != float32(2) {
		t.Errorf("MergeUniforms = %v", got)
	}
}

func TestMergeSamplersKeepsOrder(t *testing.T) {
	node := Samplers{{Name: "u_diffuse", Source: "a"}, {Name: "u_normal", Source: "b"}}
	inst := Samplers{{Name: "u_emissive", Source: "c"}, {Name: "u_diffuse", Source: "d"}}

	got := MergeSamplers(node, inst)

	names := []string{"u_diffuse", "u_normal", "u_emissive"}
	if len(got) != len(names) {
		t.Fatalf("len = %d, want %d", len(got), len(names))
	}
	for i, n := range names {
		if got[i].Name != n {
			t.Errorf("sampler %d = %s, want %s", i, got[i].Name, n)
		}
	}
	if got[0].Source != "d" {
		t.Errorf("u_diffuse source = %v, want override d", got[0].Source)
	}
}
