package core

import (
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		empty    bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:  "non-overlapping horizontal",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(15, 0, 10, 10),
			empty: true,
		},
		{
			name:  "adjacent vertical (no overlap)",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(0, 10, 10, 10),
			empty: true,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "negative origin clipped",
			a:        NewRect(-3, -2, 6, 6),
			b:        NewRect(0, 0, 80, 24),
			expected: NewRect(0, 0, 3, 4),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersect(tc.b)
			if tc.empty {
				if !result.Empty() {
					t.Errorf("Intersect() = %+v, expected empty", result)
				}
				return
			}
			if result != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", result, tc.expected)
			}
			// Also test symmetry
			if reverse := tc.b.Intersect(tc.a); reverse != tc.expected {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", reverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectFromFloatSharesEdges(t *testing.T) {
	// Three stacked bands of a column must tile it exactly.
	top := RectFromFloat(3, 0, 1, 7.4)
	mid := RectFromFloat(3, 7.4, 1, 9.2)
	bottom := RectFromFloat(3, 16.6, 1, 7.4)

	if top.Bottom() != mid.Y {
		t.Errorf("top.Bottom() = %d, mid.Y = %d", top.Bottom(), mid.Y)
	}
	if mid.Bottom() != bottom.Y {
		t.Errorf("mid.Bottom() = %d, bottom.Y = %d", mid.Bottom(), bottom.Y)
	}
	if bottom.Bottom() != 24 {
		t.Errorf("bottom.Bottom() = %d, expected 24", bottom.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{math.Inf(1), 0.0, 24.0, 24.0},
		{math.NaN(), 0.0, 24.0, 0.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRoundInt(t *testing.T) {
	if RoundInt(2.5) != 3 {
		t.Errorf("RoundInt(2.5) = %d, expected 3", RoundInt(2.5))
	}
	if RoundInt(-2.5) != -3 {
		t.Errorf("RoundInt(-2.5) = %d, expected -3", RoundInt(-2.5))
	}
	if RoundInt(math.Inf(1)) != math.MaxInt32 {
		t.Error("RoundInt(+Inf) should saturate")
	}
	if RoundInt(math.NaN()) != 0 {
		t.Error("RoundInt(NaN) should be 0")
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
