package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted for the config
// file when no -config flag is given.
const EnvConfigPath = "MIDGARD_RENDER_CONFIG"

// Load builds the configuration from defaults, then the config file, then
// the flag overrides. flags may be nil.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	if path := configFile(flags); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	flags.apply(cfg)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFile resolves the file to load: the flag, the environment, then
// the first existing standard location.
func configFile(flags *Flags) string {
	if flags != nil && flags.Config != "" {
		return flags.Config
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	for _, path := range []string{"config.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-specific per-user config directory.
func ConfigDir() string {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-render")
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-render")
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return filepath.Join(dir, "MidgardRender")
	}
	return filepath.Join(dir, "midgard-render")
}

// loadFromFile merges the YAML file at path into cfg. Unknown keys are
// rejected; an empty file changes nothing.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// normalize clamps values that would stall or break the pipeline.
func (c *Config) normalize() {
	def := Default()
	if c.Pipeline.CollectEvery < 1 {
		c.Pipeline.CollectEvery = 1
	}
	if c.Pipeline.AspectMultiplier <= 0 {
		c.Pipeline.AspectMultiplier = 1
	}
	if c.Pipeline.ShadowResolution <= 0 {
		c.Pipeline.ShadowResolution = def.Pipeline.ShadowResolution
	}
	if c.Pipeline.PickingPointSize <= 0 {
		c.Pipeline.PickingPointSize = def.Pipeline.PickingPointSize
	}
	if c.Demo.Instances < 0 {
		c.Demo.Instances = 0
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// Validate reports settings that cannot be clamped into something usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Pipeline.ShadowResolution&(c.Pipeline.ShadowResolution-1) != 0 {
		errs = append(errs, fmt.Errorf("shadow_resolution %d is not a power of two", c.Pipeline.ShadowResolution))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
