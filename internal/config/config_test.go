package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Plane.Name != "trainer" {
		t.Errorf("expected trainer plane, got %s", cfg.Plane.Name)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset("dart")
	if !ok {
		t.Fatal("expected dart preset")
	}
	if p.Lift >= Presets["trainer"].Lift {
		t.Error("dart should trade lift for low drag")
	}

	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset for unknown name")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	found := false
	for _, n := range names {
		if n == "crooked" {
			found = true
		}
	}
	if !found {
		t.Error("expected crooked in preset list")
	}
}

func TestCrookedIsUnbalanced(t *testing.T) {
	p, ok := GetPreset("crooked")
	if !ok {
		t.Fatal("expected crooked preset")
	}
	if !p.Unbalanced {
		t.Error("crooked design should be structurally unbalanced")
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Plane = Presets["brick"]
	cfg.Seed = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Plane.Name != "brick" {
		t.Errorf("expected brick, got %s", loaded.Plane.Name)
	}
	if loaded.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", loaded.Seed)
	}
	if loaded.Plane.Mass != cfg.Plane.Mass {
		t.Errorf("mass changed in roundtrip: %f vs %f", loaded.Plane.Mass, cfg.Plane.Mass)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("plane:\n  mass: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative mass")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
