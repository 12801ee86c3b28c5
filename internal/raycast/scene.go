package raycast

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Bands is the vertical split of one screen column, in rows from the top.
// The three heights are non-negative and sum to the screen height.
type Bands struct {
	Ceiling int
	Wall    int
	Floor   int
}

// WallHeight returns the projected slice height for a corrected distance.
func (c Config) WallHeight(corrected float64) float64 {
	return c.CellSize * c.WallScale / corrected
}

// Column projects one ray into ceiling, wall and floor bands.
// A wall taller than the screen fills the column; a ray with no positive
// corrected distance (the player touching a wall) does the same.
func (c Config) Column(ray Ray, playerAngle float64) Bands {
	h := float64(c.ScreenHeight)
	wall := h
	if d := FixFishEye(ray.Distance, ray.Angle, playerAngle); d > 0 {
		wall = c.WallHeight(d)
	}

	top := core.RoundInt(core.ClampF(h/2-wall/2, 0, h))
	bottom := core.RoundInt(core.ClampF(h/2+wall/2, 0, h))
	bottom = max(bottom, top)

	return Bands{
		Ceiling: top,
		Wall:    bottom - top,
		Floor:   c.ScreenHeight - bottom,
	}
}

// RenderScene projects a ray field into per-column draw commands: a
// ceiling band, a wall slice and a floor band, top to bottom. Empty bands
// are omitted.
func RenderScene(field RayField, pose Pose, cfg Config) []DrawCommand {
	return AppendScene(make([]DrawCommand, 0, 3*len(field)), field, pose, cfg)
}

// AppendScene is RenderScene writing into dst, so a caller can reuse one
// buffer across frames.
func AppendScene(dst []DrawCommand, field RayField, pose Pose, cfg Config) []DrawCommand {
	if len(field) == 0 {
		return dst
	}
	colW := float64(cfg.ScreenWidth) / float64(len(field))
	pal := cfg.Colors

	for i, ray := range field {
		x := float64(i) * colW
		b := cfg.Column(ray, pose.Angle)

		wallColor := pal.Wall
		if ray.Orientation == Vertical {
			wallColor = pal.WallDark
		}

		if b.Ceiling > 0 {
			dst = append(dst, FilledRect(x, 0, colW, float64(b.Ceiling), pal.Ceiling))
		}
		if b.Wall > 0 {
			dst = append(dst, FilledRect(x, float64(b.Ceiling), colW, float64(b.Wall), wallColor))
		}
		if b.Floor > 0 {
			dst = append(dst, FilledRect(x, float64(b.Ceiling+b.Wall), colW, float64(b.Floor), pal.Floor))
		}
	}
	return dst
}
