package raycast

import (
	"math"
	"testing"
)

func TestRenderMinimapContents(t *testing.T) {
	g := gridFromRows(t, cs,
		"####",
		"#..#",
		"####",
	)
	pose := Pose{X: 1.5 * cs, Y: 1.5 * cs, Angle: 0}
	field := Rays(pose, g, math.Pi/3, 5)
	pal := DefaultPalette()
	scale := 0.125
	ox, oy := 2.0, 1.0

	cmds := RenderMinimap(ox, oy, scale, field, g, pose, pal)

	solid := 10
	if want := solid + 2 + len(field); len(cmds) != want {
		t.Fatalf("got %d commands, expected %d", len(cmds), want)
	}

	cell := scale * cs
	first := cmds[0]
	if first.Op != OpFillRect || first.X != ox || first.Y != oy || first.W != cell || first.H != cell || first.Color != pal.Grid {
		t.Errorf("first wall square = %+v", first)
	}

	marker := cmds[solid]
	if marker.Op != OpFillRect || marker.Color != pal.Player {
		t.Errorf("player marker = %+v", marker)
	}
	if cx := marker.X + marker.W/2; !approx(cx, ox+pose.X*scale, 1e-12) {
		t.Errorf("marker centered at x=%v, expected %v", cx, ox+pose.X*scale)
	}

	heading := cmds[solid+1]
	if heading.Op != OpStrokeLine || heading.X2 <= heading.X || !approx(heading.Y2, heading.Y, 1e-12) {
		t.Errorf("heading should point east, got %+v", heading)
	}

	for i, ray := range field {
		seg := cmds[solid+2+i]
		if seg.Op != OpStrokeLine || seg.Color != pal.Rays {
			t.Fatalf("ray segment %d = %+v", i, seg)
		}
		if seg.X2 != ox+ray.HitX*scale || seg.Y2 != oy+ray.HitY*scale {
			t.Errorf("ray segment %d ends at (%v, %v), expected hit (%v, %v)",
				i, seg.X2, seg.Y2, ox+ray.HitX*scale, oy+ray.HitY*scale)
		}
	}
}

func TestMinimapSize(t *testing.T) {
	g := gridFromRows(t, cs, "....", "....")
	w, h := MinimapSize(g, 0.25)
	if w != 64 || h != 32 {
		t.Errorf("MinimapSize() = (%v, %v), expected (64, 32)", w, h)
	}
}
