// Package config loads the runtime configuration from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"ember/gfx"
)

var ErrInvalid = errors.New("invalid config")

// Config is the ember.toml / ember.yaml configuration file.
type Config struct {
	// Requires is the minimum build version ("v0.3.0") the file is written
	// for. Empty accepts any build.
	Requires string  `toml:"requires" yaml:"requires"`
	Display  Display `toml:"display" yaml:"display"`
	Loop     Loop    `toml:"loop" yaml:"loop"`
	Theme    Theme   `toml:"theme" yaml:"theme"`
	// Scene is a YAML widget tree. Empty selects the built-in demo.
	Scene   string `toml:"scene" yaml:"scene"`
	Verbose bool   `toml:"verbose" yaml:"verbose"`
}

type Display struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
	// Layers is 1 (draw in place) or 2 (double buffered).
	Layers int `toml:"layers" yaml:"layers"`
	// RefreshHz paces the simulated vertical sync.
	RefreshHz int `toml:"refresh_hz" yaml:"refresh_hz"`
	Scale     int `toml:"scale" yaml:"scale"`
}

type Loop struct {
	Hz         int `toml:"hz" yaml:"hz"`
	TouchQueue int `toml:"touch_queue" yaml:"touch_queue"`
	KeyQueue   int `toml:"key_queue" yaml:"key_queue"`
	MaxWidgets int `toml:"max_widgets" yaml:"max_widgets"`
	MaxTimers  int `toml:"max_timers" yaml:"max_timers"`
}

// Theme colors are SVG names or #rgb / #rrggbb.
type Theme struct {
	Background string `toml:"background" yaml:"background"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Accent     string `toml:"accent" yaml:"accent"`
	Focus      string `toml:"focus" yaml:"focus"`
	Console    string `toml:"console" yaml:"console"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Display: Display{
			Width:     320,
			Height:    240,
			Layers:    2,
			RefreshHz: 60,
			Scale:     2,
		},
		Loop: Loop{
			Hz:         60,
			TouchQueue: 32,
			KeyQueue:   32,
			MaxWidgets: 64,
			MaxTimers:  16,
		},
	}
}

// Load reads path on top of Default. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(filepath.Ext(path), data)
}

// Parse decodes data in the format named by ext on top of Default.
func Parse(ext string, data []byte) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q: %w", ext, ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and colors.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalid)...))
		}
	}

	check(c.Requires == "" || semver.IsValid(c.Requires), "requires %q is not a semantic version", c.Requires)
	check(c.Display.Width > 0 && c.Display.Width <= 4096, "display.width %d out of range", c.Display.Width)
	check(c.Display.Height > 0 && c.Display.Height <= 4096, "display.height %d out of range", c.Display.Height)
	check(c.Display.Layers == 1 || c.Display.Layers == 2, "display.layers must be 1 or 2, got %d", c.Display.Layers)
	check(c.Display.RefreshHz > 0, "display.refresh_hz must be positive")
	check(c.Display.Scale > 0 && c.Display.Scale <= 8, "display.scale %d out of range", c.Display.Scale)
	check(c.Loop.Hz > 0 && c.Loop.Hz <= 1000, "loop.hz %d out of range", c.Loop.Hz)
	check(c.Loop.TouchQueue > 0, "loop.touch_queue must be positive")
	check(c.Loop.KeyQueue > 0, "loop.key_queue must be positive")
	check(c.Loop.MaxWidgets > 0, "loop.max_widgets must be positive")
	check(c.Loop.MaxTimers > 0, "loop.max_timers must be positive")

	for _, col := range []struct{ name, v string }{
		{"background", c.Theme.Background},
		{"foreground", c.Theme.Foreground},
		{"accent", c.Theme.Accent},
		{"focus", c.Theme.Focus},
		{"console", c.Theme.Console},
	} {
		if col.v == "" {
			continue
		}
		if _, err := gfx.ParseColor(col.v); err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", col.name, errors.Join(err, ErrInvalid)))
		}
	}
	return errors.Join(errs...)
}

// Supports reports whether a build with the given version satisfies
// Requires. Development builds ("dev" or any non-semver string) always do.
func (c Config) Supports(version string) bool {
	if c.Requires == "" || !semver.IsValid(version) {
		return true
	}
	return semver.Compare(version, c.Requires) >= 0
}
