// Package config handles pipeline and demo configuration loading.
package config

// Config holds all settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Demo     DemoConfig     `yaml:"demo"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// PipelineConfig holds per-frame rendering settings.
type PipelineConfig struct {
	// CollectEvery is the collection cadence: the scene is fully re-collected
	// every N frames and cheaply refreshed in between. 1 collects every frame.
	CollectEvery      int     `yaml:"collect_every"`
	DistanceSort      bool    `yaml:"distance_sort"`
	PrioritySort      bool    `yaml:"priority_sort"`
	PriorityDominates bool    `yaml:"priority_dominates"`
	FrustumCulling    bool    `yaml:"frustum_culling"`
	ForceWireframe    bool    `yaml:"force_wireframe"`
	UpdateMaterials   bool    `yaml:"update_materials"`
	FullViewport      bool    `yaml:"full_viewport"`
	AspectMultiplier  float32 `yaml:"aspect_multiplier"`
	ShadowResolution  int     `yaml:"shadow_resolution"`
	PickingPointSize  float32 `yaml:"picking_point_size"`
	DebugBounds       bool    `yaml:"debug_bounds"`
}

// DemoConfig holds settings for the demo scene.
type DemoConfig struct {
	Instances   int  `yaml:"instances"`
	PointLights int  `yaml:"point_lights"`
	SplitScreen bool `yaml:"split_screen"`
	Shadows     bool `yaml:"shadows"`

	// GroundTexture is an optional image file (png, jpeg, bmp or tga) for
	// the ground. Empty uses a generated checkerboard.
	GroundTexture string `yaml:"ground_texture"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Pipeline: PipelineConfig{
			CollectEvery:      1,
			DistanceSort:      true,
			PrioritySort:      true,
			PriorityDominates: true,
			FrustumCulling:    true,
			ForceWireframe:    false,
			UpdateMaterials:   true,
			FullViewport:      false,
			AspectMultiplier:  1.0,
			ShadowResolution:  2048,
			PickingPointSize:  5.0,
			DebugBounds:       false,
		},
		Demo: DemoConfig{
			Instances:   64,
			PointLights: 4,
			SplitScreen: false,
			Shadows:     true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}
