package raycast

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Op identifies the kind of a draw command.
type Op uint8

const (
	OpFillRect Op = iota + 1
	OpStrokeLine
)

// String returns the wire name of the op.
func (o Op) String() string {
	switch o {
	case OpFillRect:
		return "rect"
	case OpStrokeLine:
		return "line"
	default:
		return "unknown"
	}
}

// MarshalText encodes the op by name.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// DrawCommand is one primitive for a rendering surface. A rect uses
// X, Y, W, H; a line runs from (X, Y) to (X2, Y2).
type DrawCommand struct {
	Op    Op         `json:"op"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	W     float64    `json:"w"`
	H     float64    `json:"h"`
	X2    float64    `json:"x2"`
	Y2    float64    `json:"y2"`
	Color core.Color `json:"color"`
}

// FilledRect returns a rectangle fill command.
func FilledRect(x, y, w, h float64, c core.Color) DrawCommand {
	return DrawCommand{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c}
}

// StrokedLine returns a line stroke command.
func StrokedLine(x1, y1, x2, y2 float64, c core.Color) DrawCommand {
	return DrawCommand{Op: OpStrokeLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: c}
}
