package raycast

import (
	"math"
	"testing"
)

// gridFromRows builds a grid where '#' is a wall (value 1), digits are
// walls of that id and anything else is empty.
func gridFromRows(t *testing.T, cellSize float64, rows ...string) *Grid {
	t.Helper()
	cells := make([][]Cell, len(rows))
	for y, row := range rows {
		cells[y] = make([]Cell, 0, len(row))
		for _, r := range row {
			switch {
			case r == '#':
				cells[y] = append(cells[y], 1)
			case r >= '1' && r <= '9':
				cells[y] = append(cells[y], Cell(r-'0'))
			default:
				cells[y] = append(cells[y], 0)
			}
		}
	}
	g, err := NewGrid(cells, cellSize)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
