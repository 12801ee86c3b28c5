package raycast

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
)

func testRoom(t *testing.T) *Grid {
	return gridFromRows(t, cs,
		"##########",
		"#........#",
		"#..##....#",
		"#........#",
		"#....3...#",
		"##########",
	)
}

func TestRaysCardinalityAndOrdering(t *testing.T) {
	g := testRoom(t)
	pose := Pose{X: 2.5 * cs, Y: 3.5 * cs, Angle: 0.4}
	fov := math.Pi / 3
	width := 80

	field := Rays(pose, g, fov, width)

	if len(field) != width {
		t.Fatalf("len(field) = %d, expected %d", len(field), width)
	}
	if field[0].Angle != pose.Angle-fov/2 {
		t.Errorf("first angle = %v, expected %v", field[0].Angle, pose.Angle-fov/2)
	}
	step := AngleStep(fov, width)
	last := pose.Angle + fov/2 - step
	if !approx(field[width-1].Angle, last, 1e-12) {
		t.Errorf("last angle = %v, expected %v", field[width-1].Angle, last)
	}
	for i := 1; i < width; i++ {
		if field[i].Angle <= field[i-1].Angle {
			t.Fatalf("angles not increasing at column %d", i)
		}
	}
}

func TestRaysDeterministic(t *testing.T) {
	g := testRoom(t)
	pose := Pose{X: 5.2 * cs, Y: 1.7 * cs, Angle: -2.2}

	a, err := json.Marshal(Rays(pose, g, math.Pi/3, 120))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	b, err := json.Marshal(Rays(pose, g, math.Pi/3, 120))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different ray fields")
	}
}

func TestRaysZeroWidth(t *testing.T) {
	g := testRoom(t)
	if field := Rays(Pose{X: 100, Y: 100}, g, 1, 0); len(field) != 0 {
		t.Errorf("expected empty field, got %d rays", len(field))
	}
	if AngleStep(1, 0) != 0 {
		t.Error("AngleStep with zero width should be 0")
	}
}

func TestRayFieldNearestAndCenter(t *testing.T) {
	g := borderedRoom(t)
	pose := Pose{X: 1.5 * cs, Y: 1.5 * cs, Angle: 0}
	fov := math.Pi / 3
	field := Rays(pose, g, fov, 9)

	center, ok := field.Center()
	if !ok {
		t.Fatal("Center() should succeed on a non-empty field")
	}
	if center.Angle != pose.Angle-fov/2+4*AngleStep(fov, 9) {
		t.Errorf("center angle = %v", center.Angle)
	}
	// The closest hit is the east wall, slightly off-axis for the center ray.
	want := 0.5 * cs / math.Cos(center.Angle)
	if !approx(field.Nearest(), want, 1e-9) {
		t.Errorf("Nearest() = %v, expected %v", field.Nearest(), want)
	}

	if _, ok := (RayField{}).Center(); ok {
		t.Error("Center() on empty field should report false")
	}
}
