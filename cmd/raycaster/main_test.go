package main

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
)

func TestRenderFrame(t *testing.T) {
	m, err := maps.Get("arena")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Minimap.Enabled = false

	nan := math.NaN()
	out, err := renderFrame(m, cfg, 40, 12, nan, nan, nan)
	if err != nil {
		t.Fatalf("renderFrame: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Errorf("line %d has %d runes, want 40", i, n)
		}
	}
	if !strings.ContainsAny(out, "█▓") {
		t.Errorf("no wall glyphs in frame:\n%s", out)
	}
	if !strings.Contains(lines[11], ".") {
		t.Errorf("bottom row %q has no floor", lines[11])
	}
}

func TestRenderFrameRejectsWallPose(t *testing.T) {
	m, err := maps.Get("arena")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := renderFrame(m, config.DefaultConfig(), 20, 10, 0.5, 0.5, 0); err == nil {
		t.Error("expected an error for a pose inside the outer wall")
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23235", "23235"},
		{"localhost:2222", "2222"},
		{"[::1]:8080", "8080"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := portOf(tt.addr); got != tt.want {
				t.Errorf("portOf(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}
