// Package config provides YAML-based configuration loading for the
// raycaster: projection, colors, minimap and player movement.
package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// RaycasterConfig contains all configuration for a raycaster session.
type RaycasterConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Projection ProjectionConfig `yaml:"projection"`
	Colors     ColorConfig      `yaml:"colors"`
	Minimap    MinimapConfig    `yaml:"minimap"`
	Player     PlayerConfig     `yaml:"player"`
}

// ScreenConfig sets the viewport. Zero means "use the terminal size".
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ProjectionConfig defines how the world is projected onto the screen.
type ProjectionConfig struct {
	CellSize   float64 `yaml:"cell_size"`   // world units per grid cell
	FOVDegrees float64 `yaml:"fov_degrees"` // horizontal field of view
	WallScale  float64 `yaml:"wall_scale"`  // 1385 reproduces the reference renderer
}

// ColorConfig holds color names for every drawable role.
type ColorConfig struct {
	Wall     core.Color `yaml:"wall"`
	WallDark core.Color `yaml:"wall_dark"`
	Floor    core.Color `yaml:"floor"`
	Ceiling  core.Color `yaml:"ceiling"`
	Rays     core.Color `yaml:"rays"`
	Grid     core.Color `yaml:"grid"`
	Player   core.Color `yaml:"player"`
}

// MinimapConfig places the top-down overlay.
type MinimapConfig struct {
	Enabled   bool    `yaml:"enabled"`
	CellChars float64 `yaml:"cell_chars"` // screen cells per map cell
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

// PlayerConfig defines movement parameters, in world units and degrees
// per tick.
type PlayerConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	TurnSpeedDegrees float64 `yaml:"turn_speed_degrees"`
	Radius           float64 `yaml:"radius"`
}

// Palette converts the color section.
func (c ColorConfig) Palette() raycast.Palette {
	return raycast.Palette{
		Wall:     c.Wall,
		WallDark: c.WallDark,
		Floor:    c.Floor,
		Ceiling:  c.Ceiling,
		Rays:     c.Rays,
		Grid:     c.Grid,
		Player:   c.Player,
	}
}

// ToRaycast builds the projection config for a width x height viewport.
// Non-positive sizes fall back to the screen section.
func (c RaycasterConfig) ToRaycast(width, height int) (raycast.Config, error) {
	if width <= 0 {
		width = c.Screen.Width
	}
	if height <= 0 {
		height = c.Screen.Height
	}
	rc := raycast.Config{
		ScreenWidth:  width,
		ScreenHeight: height,
		CellSize:     c.Projection.CellSize,
		FOV:          raycast.Radians(c.Projection.FOVDegrees),
		WallScale:    c.Projection.WallScale,
		Colors:       c.Colors.Palette(),
	}
	if err := rc.Validate(); err != nil {
		return raycast.Config{}, err
	}
	return rc, nil
}

// Validate checks the sections that ToRaycast does not.
func (c RaycasterConfig) Validate() error {
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("config: screen size must not be negative, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if !(c.Minimap.CellChars > 0) || math.IsInf(c.Minimap.CellChars, 0) {
		return fmt.Errorf("config: minimap cell_chars must be positive, got %v", c.Minimap.CellChars)
	}
	if c.Player.MoveSpeed < 0 || c.Player.TurnSpeedDegrees < 0 || c.Player.Radius < 0 {
		return fmt.Errorf("config: player speeds and radius must not be negative")
	}
	if c.Player.Radius*2 >= c.Projection.CellSize {
		return fmt.Errorf("config: player radius %v does not fit a cell of %v", c.Player.Radius, c.Projection.CellSize)
	}
	_, err := c.ToRaycast(max(c.Screen.Width, 1), max(c.Screen.Height, 1))
	return err
}
