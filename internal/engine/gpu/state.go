package gpu

// State is a snapshot of the fixed-function flags the pipeline manages.
type State struct {
	CullFace   bool
	DepthTest  bool
	DepthWrite bool
	Blend      bool
	DepthFunc  Compare
	FrontFace  Winding
	Cull       Face
	BlendSrc   BlendFactor
	BlendDst   BlendFactor
}

// Baseline returns the state every pass starts and ends in: cull on,
// depth test on, blend off, depth func less, depth write on, CCW winding.
func Baseline() State {
	return State{
		CullFace:   true,
		DepthTest:  true,
		DepthWrite: true,
		Blend:      false,
		DepthFunc:  Less,
		FrontFace:  CCW,
		Cull:       Back,
		BlendSrc:   SrcAlpha,
		BlendDst:   OneMinusSrcAlpha,
	}
}

// Reset applies the baseline state. It is idempotent and safe to call at
// every pass boundary and after external hooks that may have touched state.
func Reset(dev Device) {
	Apply(dev, Baseline())
	dev.Enable(ScissorTest, false)
}

// Apply writes every flag of s to the device.
func Apply(dev Device, s State) {
	dev.Enable(CullFace, s.CullFace)
	dev.CullFace(s.Cull)
	dev.FrontFace(s.FrontFace)
	dev.Enable(DepthTest, s.DepthTest)
	dev.DepthMask(s.DepthWrite)
	dev.DepthFunc(s.DepthFunc)
	dev.Enable(Blend, s.Blend)
	dev.BlendFunc(s.BlendSrc, s.BlendDst)
}
