// Package raster draws raycast draw commands onto a terminal cell buffer.
// It is the rendering surface: the raycast core decides what to draw and
// this package decides which characters represent it.
package raster

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// Glyphs maps a command color to the rune drawn for it.
type Glyphs map[core.Color]rune

// Default glyphs used when a color has no entry.
const (
	DefaultFill = '█'
	DefaultLine = '·'
)

// GlyphsFor builds glyphs that keep the palette roles readable without
// color: shaded blocks for walls, dots for the floor, blank ceiling.
func GlyphsFor(p raycast.Palette) Glyphs {
	g := Glyphs{}
	// Later entries win when roles share a color.
	g[p.Floor] = '.'
	g[p.WallDark] = '▓'
	g[p.Wall] = '█'
	g[p.Ceiling] = ' '
	return g
}

// Rasterizer draws commands with a fixed glyph table.
type Rasterizer struct {
	glyphs Glyphs
}

// New creates a rasterizer. A nil table uses the default glyphs.
func New(glyphs Glyphs) *Rasterizer {
	return &Rasterizer{glyphs: glyphs}
}

// Draw applies commands in order; later commands paint over earlier ones.
// Anything outside the screen is clipped.
func (r *Rasterizer) Draw(dst *core.Screen, cmds []raycast.DrawCommand) {
	for _, c := range cmds {
		switch c.Op {
		case raycast.OpFillRect:
			rect := core.RectFromFloat(c.X, c.Y, c.W, c.H)
			if rect.Empty() {
				// Sub-cell rectangles still mark the cell they sit in.
				rect = core.NewRect(core.RoundInt(c.X), core.RoundInt(c.Y), 1, 1)
			}
			dst.FillRect(rect, core.Cell{Rune: r.glyph(c.Color, DefaultFill), Color: c.Color})
		case raycast.OpStrokeLine:
			cell := core.Cell{Rune: DefaultLine, Color: c.Color}
			if g, ok := r.glyphs[c.Color]; ok && g != ' ' && g != DefaultFill {
				cell.Rune = g
			}
			x0, y0, x1, y1, ok := clipLine(c.X, c.Y, c.X2, c.Y2, float64(dst.Width()), float64(dst.Height()))
			if !ok {
				continue
			}
			Line(dst, core.RoundInt(x0), core.RoundInt(y0), core.RoundInt(x1), core.RoundInt(y1), cell)
		}
	}
}

func (r *Rasterizer) glyph(c core.Color, fallback rune) rune {
	if g, ok := r.glyphs[c]; ok {
		return g
	}
	return fallback
}

// Line plots a segment with Bresenham's algorithm. Points off screen are
// skipped, so long rays are clipped for free.
func Line(dst *core.Screen, x0, y0, x1, y1 int, cell core.Cell) {
	dx := core.Abs(x1 - x0)
	dy := -core.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	// A segment can never need more plots than its longer axis.
	for n := max(dx, -dy); n >= 0; n-- {
		dst.SetCell(x0, y0, cell)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine trims a segment to the box [-0.5, w-0.5] x [-0.5, h-0.5] using
// Liang-Barsky, so the integer walk in Line stays short for segments that
// run far off screen.
func clipLine(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 + 0.5},
		{dx, w - 0.5 - x0},
		{-dy, y0 + 0.5},
		{dy, h - 0.5 - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, 0, 0, 0, false
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// ASCII draws commands onto a fresh width x height screen and returns
// its plain text.
func ASCII(cmds []raycast.DrawCommand, width, height int, glyphs Glyphs) string {
	s := core.NewScreen(width, height)
	New(glyphs).Draw(s, cmds)
	return s.String()
}
