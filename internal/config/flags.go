package config

import "flag"

// Flags holds the command-line overrides. Zero values mean "not given".
type Flags struct {
	Config       string
	Debug        bool
	Windowed     bool
	Fullscreen   bool
	Width        int
	Height       int
	Wireframe    bool
	NoCulling    bool
	CollectEvery int
	SplitScreen  bool
}

// RegisterFlags defines the overrides on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging and bounding boxes")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Force wireframe rendering")
	fs.BoolVar(&f.NoCulling, "no-culling", false, "Disable frustum culling")
	fs.IntVar(&f.CollectEvery, "collect-every", 0, "Full scene collection cadence in frames")
	fs.BoolVar(&f.SplitScreen, "split", false, "Render the demo with a second camera")
	return f
}

// apply writes the given overrides into cfg. A nil receiver applies none.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Pipeline.DebugBounds = true
	}
	switch {
	case f.Fullscreen:
		cfg.Window.Fullscreen = true
	case f.Windowed:
		cfg.Window.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Wireframe {
		cfg.Pipeline.ForceWireframe = true
	}
	if f.NoCulling {
		cfg.Pipeline.FrustumCulling = false
	}
	if f.CollectEvery > 0 {
		cfg.Pipeline.CollectEvery = f.CollectEvery
	}
	if f.SplitScreen {
		cfg.Demo.SplitScreen = true
	}
}
