package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

//go:embed defaults/raycaster.yaml
var defaultRaycasterYAML []byte

// DefaultConfig returns the hard-coded configuration used when no YAML
// can be read, including the embedded default.
func DefaultConfig() RaycasterConfig {
	return RaycasterConfig{
		Screen: ScreenConfig{
			Width:  80,
			Height: 24,
		},
		Projection: ProjectionConfig{
			CellSize:   64,
			FOVDegrees: 60,
			WallScale:  16,
		},
		Colors: ColorConfig{
			Wall:     core.ColorWhite,
			WallDark: core.ColorGray,
			Floor:    core.ColorDarkGray,
			Ceiling:  core.ColorDefault,
			Rays:     core.ColorBrightYellow,
			Grid:     core.ColorGray,
			Player:   core.ColorBrightBlue,
		},
		Minimap: MinimapConfig{
			Enabled:   true,
			CellChars: 1,
			OriginX:   1,
			OriginY:   1,
		},
		Player: PlayerConfig{
			MoveSpeed:        6,
			TurnSpeedDegrees: 5,
			Radius:           12,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRaycasterYAML
}
