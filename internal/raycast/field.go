package raycast

// RayField is one frame's rays ordered left to right, one per screen column.
type RayField []Ray

// AngleStep returns the angle between adjacent rays.
func AngleStep(fov float64, width int) float64 {
	if width <= 0 {
		return 0
	}
	return fov / float64(width)
}

// Rays sweeps fov radians centered on the pose angle into width rays.
// The first ray is at pose.Angle - fov/2; the sweep is deterministic for
// identical inputs.
func Rays(pose Pose, g *Grid, fov float64, width int) RayField {
	if width <= 0 {
		return RayField{}
	}
	field := make(RayField, width)
	initial := pose.Angle - fov/2
	step := AngleStep(fov, width)
	for i := range field {
		field[i] = CastRay(initial+float64(i)*step, pose, g)
	}
	return field
}

// Nearest returns the shortest raw distance in the field, or 0 when empty.
func (f RayField) Nearest() float64 {
	if len(f) == 0 {
		return 0
	}
	best := f[0].Distance
	for _, r := range f[1:] {
		if r.Distance < best {
			best = r.Distance
		}
	}
	return best
}

// Center returns the ray in the middle column, the one the player looks along.
func (f RayField) Center() (Ray, bool) {
	if len(f) == 0 {
		return Ray{}, false
	}
	return f[len(f)/2], true
}
