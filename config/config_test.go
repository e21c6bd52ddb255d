package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.Scene.DecorCount != 1500 || cfg.Scene.DustCount != 2500 {
		t.Errorf("unexpected scene counts: %+v", cfg.Scene)
	}
	if cfg.Integrator.Alpha != 0.08 {
		t.Errorf("expected alpha 0.08, got %v", cfg.Integrator.Alpha)
	}
	if cfg.Gesture.Pinch != 0.05 || cfg.Gesture.Fist != 0.22 || cfg.Gesture.Open != 0.38 {
		t.Errorf("unexpected gesture thresholds: %+v", cfg.Gesture)
	}
	if cfg.Derived.DT != 1.0/60 {
		t.Errorf("expected dt 1/60, got %v", cfg.Derived.DT)
	}
	if cfg.Derived.StatsWindowT != 120 {
		t.Errorf("expected 120 ticks per stats window, got %d", cfg.Derived.StatsWindowT)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeConfig(t, "integrator:\n  alpha: 0.2\nscene:\n  decor_count: 10\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Integrator.Alpha != 0.2 || cfg.Scene.DecorCount != 10 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Integrator, cfg.Scene)
	}
	if cfg.Scene.DustCount != 2500 || cfg.Tree.Radius != 8 {
		t.Error("fields absent from the file should keep their defaults")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"alpha zero", "integrator:\n  alpha: 0\n", "alpha"},
		{"alpha one", "integrator:\n  alpha: 1\n", "alpha"},
		{"unknown blend", "integrator:\n  blend: cubic\n", "blend"},
		{"fist above open", "gesture:\n  fist: 0.5\n  open: 0.4\n", "gesture.fist"},
		{"negative count", "scene:\n  dust_count: -1\n", "negative"},
		{"focus slot behind the eye", "focus:\n  slot_z: 60\ncamera:\n  distance: 45\n", "focus.slot_z"},
		{"focus slot behind the tree", "focus:\n  slot_z: -5\n", "focus.slot_z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDerivedClamps(t *testing.T) {
	path := writeConfig(t, "tree:\n  photo_lanes: 0\nscene:\n  photo_capacity: 0\nscreen:\n  target_fps: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Tree.PhotoLanes != 1 || cfg.Scene.PhotoCapacity != 1 {
		t.Errorf("expected lanes and capacity clamped to 1, got %d and %d", cfg.Tree.PhotoLanes, cfg.Scene.PhotoCapacity)
	}
	if cfg.Derived.DT != 1.0/60 {
		t.Errorf("expected fallback dt 1/60, got %v", cfg.Derived.DT)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Focus.Scale = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Focus.Scale != 7 || back.Tree != cfg.Tree {
		t.Errorf("round trip lost values: %+v", back.Focus)
	}
}

func TestGlobal(t *testing.T) {
	defer func() { global = nil }()
	if err := Init(""); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Cfg().Scene.DecorCount != 1500 {
		t.Error("global config not initialized from defaults")
	}
}
