package config

import (
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// Preset represents a named projection setup.
type Preset string

const (
	PresetTerminal Preset = "terminal" // wall scale tuned for character cells
	PresetClassic  Preset = "classic"  // wall scale of the pixel renderer
	PresetWide     Preset = "wide"
	PresetNarrow   Preset = "narrow"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetTerminal, PresetClassic, PresetWide, PresetNarrow}
}

// ApplyPreset modifies the projection section for a preset.
func ApplyPreset(cfg *RaycasterConfig, preset Preset) error {
	switch preset {
	case PresetTerminal:
		cfg.Projection.FOVDegrees = 60
		cfg.Projection.WallScale = 16
	case PresetClassic:
		cfg.Projection.FOVDegrees = 60
		cfg.Projection.WallScale = raycast.ReferenceWallScale
	case PresetWide:
		cfg.Projection.FOVDegrees = 90
	case PresetNarrow:
		cfg.Projection.FOVDegrees = 40
	default:
		return fmt.Errorf("config: unknown preset %q", preset)
	}
	return nil
}
