package raycast

import "math"

// Pose is the player's position in world units and facing angle in radians.
// The angle does not need to be normalized.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Direction returns the unit vector the pose faces.
func (p Pose) Direction() (dx, dy float64) {
	dy, dx = math.Sincos(p.Angle)
	return dx, dy
}

// Cell returns the grid cell containing the pose.
func (p Pose) Cell(g *Grid) (x, y int) {
	x, _ = cellIndex(p.X, g.cellSize)
	y, _ = cellIndex(p.Y, g.cellSize)
	return x, y
}

// Normalized returns the pose with its angle mapped into [0, 2π).
func (p Pose) Normalized() Pose {
	p.Angle = NormalizeAngle(p.Angle)
	return p
}
