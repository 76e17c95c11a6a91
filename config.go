package reach

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Distances are in scene units (centimetres for hand-tracked content).
const (
	defaultHandDragThreshold   = 3.0
	defaultMouseDragThreshold  = 1.0
	defaultMobileDragThreshold = 1.0

	defaultRayMaxDistance = 500.0

	defaultDirectEnterRadius = 1.0
	defaultDirectExitRadius  = 1.5

	defaultPokeRadius       = 0.6
	defaultPokeHistorySize  = 5
	defaultPokeMinTravel    = 0.05
	defaultPokeAlignmentCos = 0.5

	defaultPinchPress   = 0.8
	defaultPinchRelease = 0.6
)

// Config holds every tunable of the interaction core.
type Config struct {
	Drag   DragConfig   `yaml:"drag"`
	Ray    RayConfig    `yaml:"ray"`
	Direct DirectConfig `yaml:"direct"`
	Poke   PokeConfig   `yaml:"poke"`
	Pinch  PinchConfig  `yaml:"pinch"`
	Debug  bool         `yaml:"debug"`
}

// DragConfig sets the drag threshold per interactor family.
type DragConfig struct {
	HandThreshold   float64 `yaml:"hand_threshold"`
	MouseThreshold  float64 `yaml:"mouse_threshold"`
	MobileThreshold float64 `yaml:"mobile_threshold"`
}

// RayConfig configures indirect (ray) targeting.
type RayConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	// SphereCastEnabled retries a missed ray with growing spheres.
	SphereCastEnabled bool `yaml:"sphere_cast_enabled"`
	// SphereCastRadii and SphereCastOffsets are paired, smallest first.
	SphereCastRadii   []float64 `yaml:"sphere_cast_radii"`
	SphereCastOffsets []float64 `yaml:"sphere_cast_offsets"`
}

// DirectConfig configures the proximity probe.
type DirectConfig struct {
	EnterRadius float64 `yaml:"enter_radius"`
	ExitRadius  float64 `yaml:"exit_radius"`
}

// PokeConfig configures fingertip sweeps.
type PokeConfig struct {
	Radius float64 `yaml:"radius"`
	// HistorySize is the number of past tip positions kept for the
	// travel-direction check.
	HistorySize int `yaml:"history_size"`
	// MinTravel is the tip travel below which new targets are rejected.
	MinTravel float64 `yaml:"min_travel"`
	// AlignmentCos is the minimum cosine between the travel direction and
	// the direction to the candidate hit.
	AlignmentCos float64 `yaml:"alignment_cos"`
}

// PinchConfig sets pinch strength press / release thresholds.
type PinchConfig struct {
	Press   float64 `yaml:"press"`
	Release float64 `yaml:"release"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Drag: DragConfig{
			HandThreshold:   defaultHandDragThreshold,
			MouseThreshold:  defaultMouseDragThreshold,
			MobileThreshold: defaultMobileDragThreshold,
		},
		Ray: RayConfig{
			MaxDistance:       defaultRayMaxDistance,
			SphereCastEnabled: true,
			SphereCastRadii:   []float64{0.5, 2.0, 4.0},
			SphereCastOffsets: []float64{0, 30, 50},
		},
		Direct: DirectConfig{
			EnterRadius: defaultDirectEnterRadius,
			ExitRadius:  defaultDirectExitRadius,
		},
		Poke: PokeConfig{
			Radius:       defaultPokeRadius,
			HistorySize:  defaultPokeHistorySize,
			MinTravel:    defaultPokeMinTravel,
			AlignmentCos: defaultPokeAlignmentCos,
		},
		Pinch: PinchConfig{
			Press:   defaultPinchPress,
			Release: defaultPinchRelease,
		},
	}
}

// LoadConfig parses YAML (or JSON) over the defaults and validates the result.
// Omitted keys keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Drag.HandThreshold < 0 {
		return configError("drag.hand_threshold", "must be >= 0")
	}
	if c.Drag.MouseThreshold < 0 {
		return configError("drag.mouse_threshold", "must be >= 0")
	}
	if c.Drag.MobileThreshold < 0 {
		return configError("drag.mobile_threshold", "must be >= 0")
	}
	if err := c.Ray.Validate(); err != nil {
		return err
	}
	if err := c.Direct.Validate(); err != nil {
		return err
	}
	if err := c.Poke.Validate(); err != nil {
		return err
	}
	return c.Pinch.Validate()
}

// Validate checks the ray settings.
func (c RayConfig) Validate() error {
	if c.MaxDistance <= 0 {
		return configError("ray.max_distance", "must be > 0")
	}
	if len(c.SphereCastRadii) != len(c.SphereCastOffsets) {
		return configError("ray.sphere_cast_radii",
			fmt.Sprintf("has %d entries but sphere_cast_offsets has %d", len(c.SphereCastRadii), len(c.SphereCastOffsets)))
	}
	for i, r := range c.SphereCastRadii {
		if r <= 0 {
			return configError("ray.sphere_cast_radii", "entries must be > 0")
		}
		if i > 0 && r < c.SphereCastRadii[i-1] {
			return configError("ray.sphere_cast_radii", "must be ordered smallest first")
		}
	}
	for _, o := range c.SphereCastOffsets {
		if o < 0 || o >= c.MaxDistance {
			return configError("ray.sphere_cast_offsets", "entries must be in [0, max_distance)")
		}
	}
	return nil
}

// Validate checks the direct probe radii.
func (c DirectConfig) Validate() error {
	if c.EnterRadius <= 0 {
		return configError("direct.enter_radius", "must be > 0")
	}
	if c.EnterRadius >= c.ExitRadius {
		return configError("direct.enter_radius", "must be less than direct.exit_radius")
	}
	return nil
}

// Validate checks the poke settings.
func (c PokeConfig) Validate() error {
	if c.Radius <= 0 {
		return configError("poke.radius", "must be > 0")
	}
	if c.HistorySize < 2 {
		return configError("poke.history_size", "must be >= 2")
	}
	if c.MinTravel < 0 {
		return configError("poke.min_travel", "must be >= 0")
	}
	if c.AlignmentCos < -1 || c.AlignmentCos > 1 {
		return configError("poke.alignment_cos", "must be in [-1, 1]")
	}
	return nil
}

// Validate checks the pinch thresholds.
func (c PinchConfig) Validate() error {
	if c.Press <= 0 || c.Press > 1 {
		return configError("pinch.press", "must be in (0, 1]")
	}
	if c.Release < 0 || c.Release > c.Press {
		return configError("pinch.release", "must be in [0, pinch.press]")
	}
	return nil
}
