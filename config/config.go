// Package config provides configuration loading and access for the globe viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Globe     GlobeConfig     `yaml:"globe"`
	Inertia   InertiaConfig   `yaml:"inertia"`
	FlyTo     FlyToConfig     `yaml:"flyto"`
	Hit       HitConfig       `yaml:"hit"`
	Labels    LabelsConfig    `yaml:"labels"`
	Markers   MarkersConfig   `yaml:"markers"`
	Decor     DecorConfig     `yaml:"decor"`
	Belt      BeltConfig      `yaml:"belt"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Landmass  LandmassConfig  `yaml:"landmass"`
	Scenes    ScenesConfig    `yaml:"scenes"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Remote    RemoteConfig    `yaml:"remote"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// GlobeConfig holds projection scale bounds and default orientations.
type GlobeConfig struct {
	MinScale     float64 `yaml:"min_scale"`     // Projection scale (globe radius in px) at 0% zoom
	MaxScale     float64 `yaml:"max_scale"`     // Projection scale at 100% zoom
	InitialScale float64 `yaml:"initial_scale"` // Starting scale (clamped to bounds)
	DefaultYaw   float64 `yaml:"default_yaw"`   // Planet orientation when a scene has no points
	DefaultPitch float64 `yaml:"default_pitch"`
	Interactive  bool    `yaml:"interactive"` // Pointer/wheel input enabled
}

// InertiaConfig holds drag and momentum tunables.
// These differ between historical revisions of the viewer; one coherent set is kept here.
type InertiaConfig struct {
	DragSensitivity  float64 `yaml:"drag_sensitivity"`  // Degrees per pixel of pointer travel
	WheelSensitivity float64 `yaml:"wheel_sensitivity"` // Scale units per wheel delta unit
	PitchDecay       float64 `yaml:"pitch_decay"`       // Multiplicative pitch velocity decay per frame
	YawDecay         float64 `yaml:"yaw_decay"`         // Yaw velocity decay toward idle baseline per frame
	IdleYawVelocity  float64 `yaml:"idle_yaw_velocity"` // Planet-mode resting drift (degrees/frame)
	ZoomEase         float64 `yaml:"zoom_ease"`         // Fraction of remaining scale distance covered per frame
	FramePeriodMS    float64 `yaml:"frame_period_ms"`   // Nominal frame period used to convert throw speed
	MaxThrow         float64 `yaml:"max_throw"`         // Velocity cap after release (degrees/frame)
	ReleaseWindowMS  float64 `yaml:"release_window_ms"` // Pointer rest longer than this throws nothing
	ClickSlop        float64 `yaml:"click_slop"`        // Max pointer travel (px) still treated as a click
}

// FlyToConfig holds fly-to animation parameters.
type FlyToConfig struct {
	DurationMS float64 `yaml:"duration_ms"`
}

// HitConfig holds hit-testing parameters.
type HitConfig struct {
	Radius float64 `yaml:"radius"` // Pixel radius around a marker that counts as a hit
}

// LabelsConfig holds anchored label layout parameters.
type LabelsConfig struct {
	OffsetX       float64 `yaml:"offset_x"`  // Ideal anchor offset from marker
	OffsetY       float64 `yaml:"offset_y"`
	Smoothing     float64 `yaml:"smoothing"` // Fraction of remaining distance covered per frame
	Padding       float64 `yaml:"padding"`
	FontSize      int     `yaml:"font_size"`
	MetaFontSize  int     `yaml:"meta_font_size"`
	SmallFontSize int     `yaml:"small_font_size"`
	SmallLabels   bool    `yaml:"small_labels"` // Always-on labels for idle points
}

// MarkersConfig holds marker drawing parameters.
type MarkersConfig struct {
	DotRadius      float64 `yaml:"dot_radius"`
	RingRadius     float64 `yaml:"ring_radius"`
	PulseAmplitude float64 `yaml:"pulse_amplitude"`
	PulseSpeed     float64 `yaml:"pulse_speed"` // Radians per second
	BracketSize    float64 `yaml:"bracket_size"`
}

// DecorConfig holds decorative field parameters.
type DecorConfig struct {
	Seed          int64   `yaml:"seed"`
	StarCount     int     `yaml:"star_count"`
	StarParallax  float64 `yaml:"star_parallax"` // Pixels of star drift per degree of yaw
	TwinkleSpeed  float64 `yaml:"twinkle_speed"`
	AsteroidCount int     `yaml:"asteroid_count"`
}

// BeltConfig holds belt-mode parameters.
type BeltConfig struct {
	Spread        float64  `yaml:"spread"`         // Radial exaggeration from screen center
	LatitudeBand  float64  `yaml:"latitude_band"`  // Asteroids are scattered within +/- this latitude
	BackfaceAlpha float64  `yaml:"backface_alpha"` // Opacity multiplier for back-facing items
	DefaultYaw    float64  `yaml:"default_yaw"`    // Fixed oblique default orientation
	DefaultPitch  float64  `yaml:"default_pitch"`
	Identifiers   []string `yaml:"identifiers"` // Configuration IDs rendered in belt mode
}

// SurfaceConfig holds 3D surface parameters.
type SurfaceConfig struct {
	Enable3D       bool    `yaml:"enable_3d"`
	Rings          int     `yaml:"rings"`
	Slices         int     `yaml:"slices"`
	BaseDistance   float64 `yaml:"base_distance"`    // Camera distance at BaseScale (sphere radius 1)
	BaseScale      float64 `yaml:"base_scale"`       // Projection scale matching BaseDistance
	TextureYawBias float64 `yaml:"texture_yaw_bias"` // Degrees added to yaw to align texture seam
}

// LandmassConfig holds geometry fetch parameters.
type LandmassConfig struct {
	TimeoutSec float64 `yaml:"timeout_sec"`
	RetryMax   int     `yaml:"retry_max"`
}

// ScenesConfig holds scene catalog parameters.
type ScenesConfig struct {
	File    string `yaml:"file"`    // Scene catalog YAML (empty = embedded catalog)
	Initial string `yaml:"initial"` // Scene ID shown at startup (empty = first)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow     int     `yaml:"perf_window"`      // Frames per perf window
	LogIntervalSec float64 `yaml:"log_interval_sec"` // Seconds between perf log lines (0 = off)
}

// RemoteConfig holds remote control server parameters.
type RemoteConfig struct {
	Addr         string  `yaml:"addr"`         // Listen address (empty = disabled)
	CommandRate  float64 `yaml:"command_rate"` // Commands per second per connection
	CommandBurst int     `yaml:"command_burst"`
	QueueSize    int     `yaml:"queue_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32       float32         // Screen.Width as float32
	ScreenH32       float32         // Screen.Height as float32
	FlyToDurationMS float64         // FlyTo.DurationMS, at least one frame period
	BeltIDs         map[string]bool // Belt.Identifiers as a set
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects combinations the engine cannot run with.
func (c *Config) validate() error {
	if c.Globe.MinScale <= 0 || c.Globe.MaxScale <= c.Globe.MinScale {
		return fmt.Errorf("globe: scale bounds [%g, %g] are invalid", c.Globe.MinScale, c.Globe.MaxScale)
	}
	if c.Inertia.PitchDecay < 0 || c.Inertia.PitchDecay >= 1 {
		return fmt.Errorf("inertia: pitch_decay %g must be in [0, 1)", c.Inertia.PitchDecay)
	}
	if c.Inertia.YawDecay < 0 || c.Inertia.YawDecay >= 1 {
		return fmt.Errorf("inertia: yaw_decay %g must be in [0, 1)", c.Inertia.YawDecay)
	}
	if c.Inertia.ZoomEase <= 0 || c.Inertia.ZoomEase > 1 {
		return fmt.Errorf("inertia: zoom_ease %g must be in (0, 1]", c.Inertia.ZoomEase)
	}
	if c.Labels.Smoothing <= 0 || c.Labels.Smoothing > 1 {
		return fmt.Errorf("labels: smoothing %g must be in (0, 1]", c.Labels.Smoothing)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.FlyToDurationMS = c.FlyTo.DurationMS
	if c.Derived.FlyToDurationMS < c.Inertia.FramePeriodMS {
		c.Derived.FlyToDurationMS = c.Inertia.FramePeriodMS
	}

	c.Derived.BeltIDs = make(map[string]bool, len(c.Belt.Identifiers))
	for _, id := range c.Belt.Identifiers {
		c.Derived.BeltIDs[id] = true
	}
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
