// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Seed modes for the starfield.
const (
	SeedModeHashed  = "hashed"
	SeedModeSession = "session"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Seed      uint64          `yaml:"seed"`
	Screen    ScreenConfig    `yaml:"screen"`
	Clock     ClockConfig     `yaml:"clock"`
	Camera    CameraConfig    `yaml:"camera"`
	Player    PlayerConfig    `yaml:"player"`
	Particles ParticlesConfig `yaml:"particles"`
	Parallax  ParallaxConfig  `yaml:"parallax"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ClockConfig holds time settings.
type ClockConfig struct {
	SimulationSpeed float64 `yaml:"simulation_speed"` // multiplier on wall time, may be 0 or negative
	FixedDT         float64 `yaml:"fixed_dt"`         // seconds per tick in headless mode
}

// CameraConfig holds viewport settings.
type CameraConfig struct {
	DefaultZoom float64 `yaml:"default_zoom"` // pixels per world unit
	ZoomFactor  float64 `yaml:"zoom_factor"`  // zoom multiplier per scroll step
}

// PlayerConfig holds the steered entity's settings.
type PlayerConfig struct {
	BaseAcceleration float64 `yaml:"base_acceleration"`
	Spawn            bool    `yaml:"spawn"` // create the player at start
}

// ParticlesConfig holds settings for click-spawned particles.
type ParticlesConfig struct {
	MaxVelocity        float64 `yaml:"max_velocity"`
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"`
	ShapeSize          float64 `yaml:"shape_size"`
	MaxShapeDepth      int     `yaml:"max_shape_depth"`
	SpawnAtCursor      bool    `yaml:"spawn_at_cursor"`
}

// ParallaxConfig holds starfield settings.
type ParallaxConfig struct {
	Planes             int     `yaml:"planes"`
	ZoomStepsPerPlane  int     `yaml:"zoom_steps_per_plane"`
	SectorSize         float64 `yaml:"sector_size"`
	StarsPerSector     int     `yaml:"stars_per_sector"`
	StarRadius         float64 `yaml:"star_radius"`
	SeedMode           string  `yaml:"seed_mode"` // hashed or session
	Salt               uint64  `yaml:"salt"`
	MaxSectorsPerPlane int     `yaml:"max_sectors_per_plane"`
}

// TelemetryConfig holds stats and perf settings.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // ticks averaged for perf stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW, ScreenH float64
	StarScreenRadius float64 // pixels, identical on every plane
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate reports the first value the simulation cannot run with.
func (c *Config) Validate() error {
	positive := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be positive, got %v: %w", name, v, ErrInvalid)
		}
		return nil
	}

	checks := []error{
		positive("camera.default_zoom", c.Camera.DefaultZoom),
		positive("camera.zoom_factor", c.Camera.ZoomFactor),
		positive("clock.fixed_dt", c.Clock.FixedDT),
		positive("parallax.sector_size", c.Parallax.SectorSize),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if math.IsNaN(c.Clock.SimulationSpeed) || math.IsInf(c.Clock.SimulationSpeed, 0) {
		return fmt.Errorf("clock.simulation_speed must be finite: %w", ErrInvalid)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size %dx%d: %w", c.Screen.Width, c.Screen.Height, ErrInvalid)
	}
	if c.Parallax.Planes < 1 {
		return fmt.Errorf("parallax.planes must be at least 1, got %d: %w", c.Parallax.Planes, ErrInvalid)
	}
	if c.Parallax.ZoomStepsPerPlane < 0 {
		return fmt.Errorf("parallax.zoom_steps_per_plane must not be negative, got %d: %w", c.Parallax.ZoomStepsPerPlane, ErrInvalid)
	}
	if c.Parallax.StarsPerSector < 0 {
		return fmt.Errorf("parallax.stars_per_sector must not be negative, got %d: %w", c.Parallax.StarsPerSector, ErrInvalid)
	}
	if c.Parallax.MaxSectorsPerPlane < 1 {
		return fmt.Errorf("parallax.max_sectors_per_plane must be at least 1: %w", ErrInvalid)
	}
	if c.Particles.MaxShapeDepth < 1 {
		return fmt.Errorf("particles.max_shape_depth must be at least 1: %w", ErrInvalid)
	}
	switch c.Parallax.SeedMode {
	case SeedModeHashed, SeedModeSession:
	default:
		return fmt.Errorf("parallax.seed_mode %q: %w", c.Parallax.SeedMode, ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.StarScreenRadius = c.Parallax.StarRadius * c.Camera.DefaultZoom
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
