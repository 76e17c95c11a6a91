package reach

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	data := []byte(`
drag:
  hand_threshold: 2.5
ray:
  max_distance: 200
  sphere_cast_radii: [1, 2]
  sphere_cast_offsets: [0, 20]
pinch:
  press: 0.9
debug: true
`)
	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Drag.HandThreshold != 2.5 {
		t.Errorf("Drag.HandThreshold = %v, want 2.5", cfg.Drag.HandThreshold)
	}
	if cfg.Drag.MouseThreshold != defaultMouseDragThreshold {
		t.Errorf("Drag.MouseThreshold = %v, want default %v", cfg.Drag.MouseThreshold, defaultMouseDragThreshold)
	}
	if cfg.Ray.MaxDistance != 200 || len(cfg.Ray.SphereCastRadii) != 2 {
		t.Errorf("Ray = %+v, want overridden", cfg.Ray)
	}
	if !cfg.Ray.SphereCastEnabled {
		t.Error("omitted sphere_cast_enabled should keep its default")
	}
	if cfg.Pinch.Press != 0.9 || cfg.Pinch.Release != defaultPinchRelease {
		t.Errorf("Pinch = %+v, want press 0.9 and default release", cfg.Pinch)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadConfigJSON(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"direct": {"enter_radius": 2, "exit_radius": 3}}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Direct.EnterRadius != 2 || cfg.Direct.ExitRadius != 3 {
		t.Errorf("Direct = %+v, want 2/3", cfg.Direct)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	_, err := LoadConfig([]byte("drag: [unterminated"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("parse errors should not be reported as validation errors")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Config)
	}{
		{"negative hand threshold", "drag.hand_threshold", func(c *Config) { c.Drag.HandThreshold = -1 }},
		{"negative mouse threshold", "drag.mouse_threshold", func(c *Config) { c.Drag.MouseThreshold = -1 }},
		{"negative mobile threshold", "drag.mobile_threshold", func(c *Config) { c.Drag.MobileThreshold = -1 }},
		{"mismatched sphere casts", "ray.sphere_cast_radii", func(c *Config) { c.Ray.SphereCastRadii = nil }},
		{"enter not below exit", "direct.enter_radius", func(c *Config) { c.Direct.EnterRadius = c.Direct.ExitRadius }},
		{"short poke history", "poke.history_size", func(c *Config) { c.Poke.HistorySize = 1 }},
		{"poke alignment", "poke.alignment_cos", func(c *Config) { c.Poke.AlignmentCos = 2 }},
		{"zero poke radius", "poke.radius", func(c *Config) { c.Poke.Radius = 0 }},
		{"pinch press", "pinch.press", func(c *Config) { c.Pinch.Press = 1.5 }},
		{"pinch release above press", "pinch.release", func(c *Config) { c.Pinch.Release = 0.95 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %T, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestLoadConfigValidates(t *testing.T) {
	_, err := LoadConfig([]byte("poke:\n  history_size: 0\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewInteractionManagerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direct.ExitRadius = 0.5
	if _, err := NewInteractionManager(NewScene(), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewInteractionManager(nil, DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil physics: err = %v, want ErrInvalidConfig", err)
	}
}
