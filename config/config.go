// Package config loads the game configuration from YAML or TOML and validates it.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Boundary policy names accepted by Physics.Boundary.
const (
	BoundaryMirrorPosition = "mirror_position"
	BoundaryMirrorAxis     = "mirror_axis"
)

// Config is the full game configuration.
type Config struct {
	Window   Window   `yaml:"window" toml:"window"`
	Renderer Renderer `yaml:"renderer" toml:"renderer"`
	Physics  Physics  `yaml:"physics" toml:"physics"`
	Profiler Profiler `yaml:"profiler" toml:"profiler"`
	Log      Log      `yaml:"log" toml:"log"`
}

// Window configures the host window.
type Window struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	MinWidth  int    `yaml:"min_width" toml:"min_width"`
	MinHeight int    `yaml:"min_height" toml:"min_height"`
}

// Renderer configures the surface and the frame clear.
type Renderer struct {
	// PresentMode is empty for the first mode the surface reports.
	PresentMode          string     `yaml:"present_mode" toml:"present_mode"`
	ClearColor           [4]float64 `yaml:"clear_color" toml:"clear_color"`
	ForceFallbackAdapter bool       `yaml:"force_fallback_adapter" toml:"force_fallback_adapter"`
}

// Physics holds the ship constants. TurnRate is in degrees per second.
type Physics struct {
	MaxVelocity  float32 `yaml:"max_velocity" toml:"max_velocity"`
	Acceleration float32 `yaml:"acceleration" toml:"acceleration"`
	TurnRate     float32 `yaml:"turn_rate" toml:"turn_rate"`
	Boundary     string  `yaml:"boundary" toml:"boundary"`
}

// Profiler configures the periodic frame statistics log.
type Profiler struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Interval string `yaml:"interval" toml:"interval"`
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "Rusteroids",
			Width:     800,
			Height:    600,
			MinWidth:  200,
			MinHeight: 200,
		},
		Physics: Physics{
			MaxVelocity:  200,
			Acceleration: 150,
			TurnRate:     180,
			Boundary:     BoundaryMirrorPosition,
		},
		Profiler: Profiler{
			Interval: "1s",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
// The format follows the extension: .yaml, .yml or .toml. An empty path returns Default().
//
// Parameters:
//   - path: the configuration file, or ""
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := Decode(path, data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format implied by name's extension.
func Decode(name string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "decode yaml %s", name)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "decode toml %s", name)
		}
	default:
		return errors.Errorf("config %s: unsupported extension %q", name, ext)
	}
	return nil
}

// Encode marshals cfg using the format implied by name's extension.
func Encode(name string, cfg Config) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	case ".toml":
		return toml.Marshal(cfg)
	default:
		return nil, errors.Errorf("config %s: unsupported extension %q", name, ext)
	}
}

// Validate reports every invalid field in one error.
func (c Config) Validate() error {
	var problems []string
	add := func(err error) {
		problems = append(problems, err.Error())
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add(errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		add(errors.Errorf("window minimum size %dx%d must not be negative", c.Window.MinWidth, c.Window.MinHeight))
	}
	if c.Renderer.PresentMode != "" {
		if _, ok := gpu.ParsePresentMode(c.Renderer.PresentMode); !ok {
			add(errors.Errorf("renderer.present_mode %q is not one of fifo, fifo_relaxed, immediate, mailbox", c.Renderer.PresentMode))
		}
	}
	if err := c.Physics.Validate(); err != nil {
		add(err)
	}
	if _, err := c.Profiler.IntervalDuration(); err != nil {
		add(err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		add(err)
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Validate checks the physics constants and boundary policy name.
func (p Physics) Validate() error {
	switch {
	case p.MaxVelocity < 0:
		return errors.Errorf("physics.max_velocity %v must not be negative", p.MaxVelocity)
	case p.Acceleration < 0:
		return errors.Errorf("physics.acceleration %v must not be negative", p.Acceleration)
	case p.Boundary != BoundaryMirrorPosition && p.Boundary != BoundaryMirrorAxis:
		return errors.Errorf("physics.boundary %q is not one of %s, %s", p.Boundary, BoundaryMirrorPosition, BoundaryMirrorAxis)
	}
	return nil
}

// IntervalDuration parses the profiler interval.
func (p Profiler) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(p.Interval)
	if err != nil {
		return 0, errors.Wrapf(err, "profiler.interval %q", p.Interval)
	}
	if d <= 0 {
		return 0, errors.Errorf("profiler.interval %q must be positive", p.Interval)
	}
	return d, nil
}

// SlogLevel maps the level name to a slog level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, errors.Wrapf(err, "log.level %q", l.Level)
	}
	return level, nil
}

// PresentModeValue returns the configured present mode, or false when the surface default should be used.
func (r Renderer) PresentModeValue() (gpu.PresentMode, bool) {
	if r.PresentMode == "" {
		return 0, false
	}
	return gpu.ParsePresentMode(r.PresentMode)
}
