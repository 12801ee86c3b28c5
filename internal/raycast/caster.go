package raycast

import "math"

// Orientation records which family of grid lines produced a hit.
type Orientation uint8

const (
	// Vertical hits lie on a cell-column boundary (a line of constant x).
	Vertical Orientation = iota
	// Horizontal hits lie on a cell-row boundary (a line of constant y).
	Horizontal
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Ray is the result of casting one angle from a pose.
type Ray struct {
	Angle       float64     `json:"angle"`
	Distance    float64     `json:"distance"` // raw, before fish-eye correction
	Orientation Orientation `json:"orientation"`
	HitX        float64     `json:"hit_x"`
	HitY        float64     `json:"hit_y"`
	Wall        Cell        `json:"wall"` // 0 when the ray left the map
}

// singularEpsilon bounds |sin| and |cos| below which a direction is treated
// as axis-aligned.
const singularEpsilon = 1e-9

// hit is one traversal candidate.
type hit struct {
	ok       bool // false when the traversal cannot cross its line family
	x, y     float64
	distance float64
	wall     Cell
	steps    int // cells probed, including the terminating probe
}

// CastRay finds the nearest wall along angle from pose. Both line families
// are traversed and the closer hit wins; ties go to the vertical hit.
// A ray that leaves the map stops at the first point outside it.
func CastRay(angle float64, pose Pose, g *Grid) Ray {
	sin, cos := math.Sincos(angle)
	v := verticalCollision(angle, sin, cos, pose, g)
	h := horizontalCollision(angle, sin, cos, pose, g)

	switch {
	case v.ok && (!h.ok || h.distance >= v.distance):
		return Ray{Angle: angle, Distance: v.distance, Orientation: Vertical, HitX: v.x, HitY: v.y, Wall: v.wall}
	case h.ok:
		return Ray{Angle: angle, Distance: h.distance, Orientation: Horizontal, HitX: h.x, HitY: h.y, Wall: h.wall}
	default:
		// Unreachable for finite angles since sin and cos cannot both vanish.
		return Ray{Angle: angle, Orientation: Vertical, HitX: pose.X, HitY: pose.Y}
	}
}

// verticalCollision steps along the lines x = k*cellSize.
func verticalCollision(angle, sin, cos float64, pose Pose, g *Grid) hit {
	if math.Abs(cos) < singularEpsilon {
		return hit{}
	}
	cs := g.cellSize
	right := isOdd(math.Floor((angle - math.Pi/2) / math.Pi))

	slope := sin / cos
	if math.Abs(sin) < singularEpsilon {
		slope = 0
	}

	firstX := math.Floor(pose.X/cs) * cs
	if right {
		firstX += cs
	}
	firstY := pose.Y + (firstX-pose.X)*slope

	xStep := cs
	if !right {
		xStep = -cs
	}
	yStep := xStep * slope

	return traverse(pose, g, firstX, firstY, xStep, yStep, func(x, y float64) (int, int, bool) {
		cellX, okX := cellIndex(x, cs)
		cellY, okY := cellIndex(y, cs)
		if !right {
			// x sits on the boundary; the cell being entered is to the left.
			cellX--
		}
		return cellX, cellY, okX && okY
	})
}

// horizontalCollision steps along the lines y = k*cellSize.
func horizontalCollision(angle, sin, cos float64, pose Pose, g *Grid) hit {
	if math.Abs(sin) < singularEpsilon {
		return hit{}
	}
	cs := g.cellSize
	up := isOdd(math.Floor(angle / math.Pi))

	invSlope := cos / sin
	if math.Abs(cos) < singularEpsilon {
		invSlope = 0
	}

	firstY := math.Floor(pose.Y/cs) * cs
	if !up {
		firstY += cs
	}
	firstX := pose.X + (firstY-pose.Y)*invSlope

	yStep := cs
	if up {
		yStep = -cs
	}
	xStep := yStep * invSlope

	return traverse(pose, g, firstX, firstY, xStep, yStep, func(x, y float64) (int, int, bool) {
		cellX, okX := cellIndex(x, cs)
		cellY, okY := cellIndex(y, cs)
		if up {
			cellY--
		}
		return cellX, cellY, okX && okY
	})
}

// traverse advances the candidate point one grid line at a time until probe
// names a solid cell or a cell outside the map.
func traverse(pose Pose, g *Grid, x, y, xStep, yStep float64, probe func(x, y float64) (int, int, bool)) hit {
	h := hit{ok: true}
	limit := stepLimit(g)
	for {
		h.steps++
		cellX, cellY, ok := probe(x, y)
		if !ok || OutOfMapBounds(cellX, cellY, g) {
			break
		}
		if w := g.cells[cellY*g.width+cellX]; w.Solid() {
			h.wall = w
			break
		}
		if h.steps >= limit {
			break
		}
		x += xStep
		y += yStep
	}
	h.x, h.y = x, y
	h.distance = Distance(pose.X, pose.Y, x, y)
	return h
}

// stepLimit is the most grid lines a ray can cross inside the map.
func stepLimit(g *Grid) int {
	return int(math.Ceil(g.Diagonal()/g.cellSize)) + 1
}

func isOdd(f float64) bool {
	return math.Mod(f, 2) != 0
}
