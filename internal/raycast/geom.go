package raycast

import "math"

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// OutOfMapBounds reports whether a cell index lies outside the grid.
// Every cell lookup goes through this check first.
func OutOfMapBounds(cellX, cellY int, g *Grid) bool {
	return cellX < 0 || cellX >= g.width || cellY < 0 || cellY >= g.height
}

// FixFishEye converts the radial distance of a hit into the perpendicular
// distance from the projection plane.
func FixFishEye(rawDistance, rayAngle, playerAngle float64) float64 {
	return rawDistance * math.Cos(rayAngle-playerAngle)
}

// NormalizeAngle maps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// Mod of a value just below 0 can round up to exactly 2π.
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
