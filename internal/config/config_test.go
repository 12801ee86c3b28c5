package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default = %+v\nexpected %+v", cfg, DefaultConfig())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("projection:\n  fov_degrees: 90\ncolors:\n  wall: bright-cyan\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Projection.FOVDegrees != 90 {
		t.Errorf("fov = %v, expected 90", cfg.Projection.FOVDegrees)
	}
	if cfg.Projection.CellSize != 64 {
		t.Errorf("cell size = %v, expected default 64", cfg.Projection.CellSize)
	}
	if cfg.Colors.Wall != core.ColorBrightCyan {
		t.Errorf("wall color = %v, expected bright_cyan", cfg.Colors.Wall)
	}
	if cfg.Colors.Floor != core.ColorDarkGray {
		t.Errorf("floor color = %v, expected default dark_gray", cfg.Colors.Floor)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown color", "colors:\n  wall: ultraviolet\n"},
		{"fov too wide", "projection:\n  fov_degrees: 180\n"},
		{"zero cell size", "projection:\n  cell_size: 0\n"},
		{"negative screen", "screen:\n  width: -1\n"},
		{"radius too big", "player:\n  radius: 40\n"},
		{"zero minimap scale", "minimap:\n  cell_chars: 0\n"},
		{"not yaml", "screen: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("screen:\n  width: 120\n  height: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Screen.Width != 120 || cfg.Screen.Height != 40 {
		t.Errorf("screen = %+v, expected 120x40", cfg.Screen)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(\"\") = %+v, expected defaults", cfg)
	}
}

func TestLoadSkipsInvalidLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("projection:\n  fov_degrees: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Projection.FOVDegrees != 60 {
		t.Errorf("fov = %v, invalid local file should be skipped", cfg.Projection.FOVDegrees)
	}
}

func TestToRaycast(t *testing.T) {
	cfg := DefaultConfig()

	rc, err := cfg.ToRaycast(100, 30)
	if err != nil {
		t.Fatalf("ToRaycast error: %v", err)
	}
	if rc.ScreenWidth != 100 || rc.ScreenHeight != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", rc.ScreenWidth, rc.ScreenHeight)
	}
	if math.Abs(rc.FOV-math.Pi/3) > 1e-12 {
		t.Errorf("fov = %v, expected π/3", rc.FOV)
	}
	if rc.Colors != raycast.DefaultPalette() {
		t.Errorf("palette = %+v, expected the default palette", rc.Colors)
	}

	rc, err = cfg.ToRaycast(0, 0)
	if err != nil {
		t.Fatalf("ToRaycast(0, 0) error: %v", err)
	}
	if rc.ScreenWidth != 80 || rc.ScreenHeight != 24 {
		t.Errorf("zero size should use the screen section, got %dx%d", rc.ScreenWidth, rc.ScreenHeight)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyPreset(&cfg, PresetClassic); err != nil {
		t.Fatal(err)
	}
	if cfg.Projection.WallScale != raycast.ReferenceWallScale {
		t.Errorf("classic wall scale = %v", cfg.Projection.WallScale)
	}
	for _, p := range Presets() {
		c := DefaultConfig()
		if err := ApplyPreset(&c, p); err != nil {
			t.Errorf("preset %s: %v", p, err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("preset %s gives invalid config: %v", p, err)
		}
	}
	if err := ApplyPreset(&cfg, "turbo"); err == nil || !strings.Contains(err.Error(), "turbo") {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestMarshalRoundTripsColors(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "floor: dark_gray") {
		t.Errorf("marshaled config should name colors:\n%s", data)
	}
}
