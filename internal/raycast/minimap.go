package raycast

import "math"

// RenderMinimap draws a top-down view of the grid at (originX, originY),
// with world units multiplied by scale: every solid cell, the player
// marker, a heading line and one segment per ray ending at its hit.
func RenderMinimap(originX, originY, scale float64, field RayField, g *Grid, pose Pose, pal Palette) []DrawCommand {
	n := len(field) + 2
	for _, c := range g.cells {
		if c.Solid() {
			n++
		}
	}
	return AppendMinimap(make([]DrawCommand, 0, n), originX, originY, scale, field, g, pose, pal)
}

// AppendMinimap is RenderMinimap writing into dst.
func AppendMinimap(dst []DrawCommand, originX, originY, scale float64, field RayField, g *Grid, pose Pose, pal Palette) []DrawCommand {
	cell := scale * g.cellSize
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x].Solid() {
				dst = append(dst, FilledRect(originX+float64(x)*cell, originY+float64(y)*cell, cell, cell, pal.Grid))
			}
		}
	}

	px := originX + pose.X*scale
	py := originY + pose.Y*scale

	marker := math.Max(1, cell/4)
	dst = append(dst, FilledRect(px-marker/2, py-marker/2, marker, marker, pal.Player))

	dx, dy := pose.Direction()
	heading := g.cellSize / 2
	dst = append(dst, StrokedLine(px, py, px+dx*heading*scale, py+dy*heading*scale, pal.Player))

	for _, ray := range field {
		dst = append(dst, StrokedLine(px, py, originX+ray.HitX*scale, originY+ray.HitY*scale, pal.Rays))
	}
	return dst
}

// MinimapSize returns the on-screen extent of the minimap at scale.
func MinimapSize(g *Grid, scale float64) (w, h float64) {
	cell := scale * g.cellSize
	return float64(g.width) * cell, float64(g.height) * cell
}
