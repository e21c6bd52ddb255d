// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Scene        SceneConfig        `yaml:"scene"`
	Distribution DistributionConfig `yaml:"distribution"`
	Tree         TreeConfig         `yaml:"tree"`
	Focus        FocusConfig        `yaml:"focus"`
	Integrator   IntegratorConfig   `yaml:"integrator"`
	Gesture      GestureConfig      `yaml:"gesture"`
	Camera       CameraConfig       `yaml:"camera"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig holds population parameters.
type SceneConfig struct {
	DecorCount    int     `yaml:"decor_count"`
	DustCount     int     `yaml:"dust_count"`
	PhotoCapacity int     `yaml:"photo_capacity"` // Nominal photo count used for scatter anchors
	SpawnDepth    float64 `yaml:"spawn_depth"`    // New photos start this far below the origin
}

// Band is a radial shell [Inner, Outer].
type Band struct {
	Inner float64 `yaml:"inner"`
	Outer float64 `yaml:"outer"`
}

// DistributionConfig holds the scatter shell per kind.
type DistributionConfig struct {
	Decor Band `yaml:"decor"`
	Dust  Band `yaml:"dust"`
	Photo Band `yaml:"photo"`
}

// TreeConfig holds the helix and orbit layout for TREE mode.
type TreeConfig struct {
	Radius float64 `yaml:"radius"` // R0, base radius of the helix
	Height float64 `yaml:"height"` // H, total height
	Turns  float64 `yaml:"turns"`  // K, angle = t*K*pi
	Drift  float64 `yaml:"drift"`  // Radians per second added to the helix angle

	DustHaloOffset    float64 `yaml:"dust_halo_offset"`    // Extra radius of the dust halo
	DustHaloAmplitude float64 `yaml:"dust_halo_amplitude"` // Relative sparkle amplitude
	DustHaloFrequency float64 `yaml:"dust_halo_frequency"` // Sparkle speed (rad/s)

	PhotoRadius     float64 `yaml:"photo_radius"`      // Innermost orbit radius
	PhotoRadiusStep float64 `yaml:"photo_radius_step"` // Spacing between orbit lanes
	PhotoLanes      int     `yaml:"photo_lanes"`
	PhotoHeightMin  float64 `yaml:"photo_height_min"`
	PhotoHeightMax  float64 `yaml:"photo_height_max"`
	PhotoSpeed      float64 `yaml:"photo_speed"` // Orbit angular speed (rad/s)
}

// FocusConfig holds FOCUS mode presentation parameters.
type FocusConfig struct {
	// Presentation slot in camera space, measured from the origin: x right, y up,
	// z toward the eye. Follows the camera as it orbits.
	SlotX           float64 `yaml:"slot_x"`
	SlotY           float64 `yaml:"slot_y"`
	SlotZ           float64 `yaml:"slot_z"`
	Scale           float64 `yaml:"scale"`            // Uniform scale of the focus subject
	PushOut         float64 `yaml:"push_out"`         // Anchor multiplier for everything else
	BackgroundScale float64 `yaml:"background_scale"` // Scale multiplier for everything else
}

// IntegratorConfig holds interpolation parameters.
type IntegratorConfig struct {
	Alpha   float64 `yaml:"alpha"`    // Blend factor per step
	Blend   string  `yaml:"blend"`    // "fixed" or "exp"
	ExpRate float64 `yaml:"exp_rate"` // Rate for "exp" blend (1/s)
	MaxSpin float64 `yaml:"max_spin"` // Max idle spin per axis (rad/frame)
}

// GestureConfig holds classifier thresholds.
type GestureConfig struct {
	Pinch    float64 `yaml:"pinch"`
	Fist     float64 `yaml:"fist"`
	Open     float64 `yaml:"open"`
	UseDepth bool    `yaml:"use_depth"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Height    float64 `yaml:"height"`
	MaxYaw    float64 `yaml:"max_yaw"`    // Yaw at the frame edge (radians)
	MaxPitch  float64 `yaml:"max_pitch"`  // Pitch at the frame edge (radians)
	Follow    float64 `yaml:"follow"`     // Blend factor toward the palm-driven angles
	IdleDrift float64 `yaml:"idle_drift"` // Yaw drift per second with no hand
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT           float64 // Seconds per tick at the target frame rate
	StatsWindowT int32   // Ticks per stats window
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

// validate rejects values the per-frame pipeline cannot run with.
func (c *Config) validate() error {
	if c.Integrator.Alpha <= 0 || c.Integrator.Alpha >= 1 {
		return fmt.Errorf("integrator.alpha must be in (0,1), got %v", c.Integrator.Alpha)
	}
	switch c.Integrator.Blend {
	case "", "fixed", "exp":
	default:
		return fmt.Errorf("integrator.blend must be fixed or exp, got %q", c.Integrator.Blend)
	}
	if c.Gesture.Fist >= c.Gesture.Open {
		return fmt.Errorf("gesture.fist (%v) must be below gesture.open (%v)", c.Gesture.Fist, c.Gesture.Open)
	}
	if c.Focus.SlotZ <= 0 || c.Focus.SlotZ >= c.Camera.Distance {
		return fmt.Errorf("focus.slot_z must be in (0, camera.distance=%v), got %v", c.Camera.Distance, c.Focus.SlotZ)
	}
	if c.Scene.DecorCount < 0 || c.Scene.DustCount < 0 {
		return fmt.Errorf("scene counts must not be negative")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)
	c.Derived.StatsWindowT = int32(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.StatsWindowT < 1 {
		c.Derived.StatsWindowT = 1
	}
	if c.Tree.PhotoLanes < 1 {
		c.Tree.PhotoLanes = 1
	}
	if c.Scene.PhotoCapacity < 1 {
		c.Scene.PhotoCapacity = 1
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
