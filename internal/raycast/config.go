package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// ReferenceWallScale is the wall-height calibration constant of the
// reference renderer. Pixel-for-pixel parity with it needs this value.
const ReferenceWallScale = 5 * 277

// Palette holds the colors the projector and minimap draw with.
type Palette struct {
	Wall     core.Color
	WallDark core.Color // walls hit on a vertical grid line
	Floor    core.Color
	Ceiling  core.Color
	Rays     core.Color
	Grid     core.Color // minimap wall cells
	Player   core.Color // minimap marker and heading
}

// DefaultPalette returns the standard terminal palette.
func DefaultPalette() Palette {
	return Palette{
		Wall:     core.ColorWhite,
		WallDark: core.ColorGray,
		Floor:    core.ColorDarkGray,
		Ceiling:  core.ColorDefault,
		Rays:     core.ColorBrightYellow,
		Grid:     core.ColorGray,
		Player:   core.ColorBrightBlue,
	}
}

// Config describes the projection.
type Config struct {
	ScreenWidth  int     // columns, one ray each
	ScreenHeight int     // rows
	CellSize     float64 // world units per cell edge
	FOV          float64 // radians
	WallScale    float64 // wall height = CellSize*WallScale/distance
	Colors       Palette
}

// DefaultConfig returns a projection tuned for an 80x24 terminal.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  80,
		ScreenHeight: 24,
		CellSize:     64,
		FOV:          math.Pi / 3,
		WallScale:    16,
		Colors:       DefaultPalette(),
	}
}

// ErrInvalidConfig wraps every configuration rejection.
var ErrInvalidConfig = errors.New("raycast: invalid config")

// Validate rejects non-positive or non-finite dimensions.
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case !positiveFinite(c.CellSize):
		return fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidConfig, c.CellSize)
	case !positiveFinite(c.FOV) || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov must be in (0, π), got %v", ErrInvalidConfig, c.FOV)
	case !positiveFinite(c.WallScale):
		return fmt.Errorf("%w: wall scale must be positive, got %v", ErrInvalidConfig, c.WallScale)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
