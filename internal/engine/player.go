package engine

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// Movement holds per-tick movement parameters in world units and radians.
type Movement struct {
	MoveSpeed float64
	TurnSpeed float64
	Radius    float64 // half the side of the collision box
}

// MovementFrom converts the player config section.
func MovementFrom(pc config.PlayerConfig) Movement {
	return Movement{
		MoveSpeed: pc.MoveSpeed,
		TurnSpeed: raycast.Radians(pc.TurnSpeedDegrees),
		Radius:    pc.Radius,
	}
}

// Player is a pose that moves through a grid without entering walls.
type Player struct {
	Pose raycast.Pose
	Movement
}

// Step applies one tick of input. Turning happens before moving, and
// each axis of the move is checked separately so the player slides
// along walls. Reports whether the pose changed.
func (p *Player) Step(in core.InputFrame, g *raycast.Grid) bool {
	before := p.Pose

	if in.Has(core.ActionTurnLeft) {
		p.Pose.Angle -= p.TurnSpeed
	}
	if in.Has(core.ActionTurnRight) {
		p.Pose.Angle += p.TurnSpeed
	}
	p.Pose.Angle = raycast.NormalizeAngle(p.Pose.Angle)

	dx, dy := p.Pose.Direction()
	var mx, my float64
	if in.Has(core.ActionForward) {
		mx += dx
		my += dy
	}
	if in.Has(core.ActionBackward) {
		mx -= dx
		my -= dy
	}
	// Screen y grows downward, so left of (dx, dy) is (dy, -dx).
	if in.Has(core.ActionStrafeLeft) {
		mx += dy
		my -= dx
	}
	if in.Has(core.ActionStrafeRight) {
		mx -= dy
		my += dx
	}

	if l := math.Hypot(mx, my); l > 0 {
		mx, my = mx/l*p.MoveSpeed, my/l*p.MoveSpeed
		if nx := p.Pose.X + mx; !p.blocked(nx, p.Pose.Y, g) {
			p.Pose.X = nx
		}
		if ny := p.Pose.Y + my; !p.blocked(p.Pose.X, ny, g) {
			p.Pose.Y = ny
		}
	}

	return p.Pose != before
}

// blocked reports whether the collision box centered at (x, y) touches a
// solid cell or leaves the grid.
func (p *Player) blocked(x, y float64, g *raycast.Grid) bool {
	r := p.Radius
	return g.SolidAt(x-r, y-r) || g.SolidAt(x+r, y-r) ||
		g.SolidAt(x-r, y+r) || g.SolidAt(x+r, y+r)
}
